package working_dir

import (
	"os"
	"path/filepath"

	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
)

const tempDirName = "tmp"

type WorkingDir struct {
	root string
}

func NewWorkingDir(dir string) (WorkingDir, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return WorkingDir{}, cerr.Field("dir", dir).
			Wrap(err).Error("Failed to convert working dir to absolute format")
	}

	workingDir := WorkingDir{root: absDir}
	if err := os.MkdirAll(workingDir.TempDir(), os.ModePerm); err != nil {
		return WorkingDir{}, cerr.Field("dir", absDir).
			Wrap(err).Error("Failed to create working dir")
	}

	return workingDir, nil
}

func (w WorkingDir) Root() string {
	return w.root
}

func (w WorkingDir) TempDir() string {
	return filepath.Join(w.root, tempDirName)
}

// MakeTempDir creates a fresh directory under TempDir and a func that removes it
func (w WorkingDir) MakeTempDir(pattern string) (string, func(), error) {
	tempDir, err := os.MkdirTemp(w.TempDir(), pattern)
	if err != nil {
		return "", nil, cerr.Field("temp_dir", w.TempDir()).
			Wrap(err).Error("Failed to create temp dir")
	}

	return tempDir, func() { _ = os.RemoveAll(tempDir) }, nil
}

func (w WorkingDir) String() string {
	return w.root
}
