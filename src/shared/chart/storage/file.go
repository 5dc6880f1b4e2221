package chartstorage

import (
	"context"
	"encoding/json"
	"os"

	chartentity "github.com/veedubyou/vocal-split/src/shared/chart/entity"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
)

var _ chartentity.Loader = FileLoader{}

// FileLoader reads a JSON array of charts written by the conversion pipeline
type FileLoader struct {
	Path string
}

func NewFileLoader(path string) FileLoader {
	return FileLoader{Path: path}
}

func (f FileLoader) LoadCharts(ctx context.Context) ([]chartentity.Chart, error) {
	errctx := cerr.Field("path", f.Path)

	contents, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, errctx.Wrap(mark.Wrap(err, ReadMark, "Failed to read chart registry file")).
			Error("Failed to load charts")
	}

	charts := []chartentity.Chart{}
	if err := json.Unmarshal(contents, &charts); err != nil {
		return nil, errctx.Wrap(mark.Wrap(err, UnmarshalMark, "Chart registry file is not a chart array")).
			Error("Failed to load charts")
	}

	return charts, nil
}

// WriteFile saves charts in the format FileLoader reads
func WriteFile(path string, charts []chartentity.Chart) error {
	contents, err := json.MarshalIndent(charts, "", "  ")
	if err != nil {
		return mark.Wrap(err, MarshalMark, "Failed to marshal charts")
	}

	if err := os.WriteFile(path, contents, 0644); err != nil {
		return cerr.Field("path", path).Wrap(err).Error("Failed to write chart registry file")
	}

	return nil
}
