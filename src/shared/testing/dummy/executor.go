package dummy

import (
	"context"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/veedubyou/vocal-split/src/shared/executor"
)

var ExecFailure = errors.New("dummy exec failure")

var _ executor.Executor = &FFmpegExecutor{}

// FFmpegExecutor answers ffprobe with ProbeOutput, answers decodes with
// DecodedPCM, and "encodes" by copying the raw input to the destination
type FFmpegExecutor struct {
	FFmpegBinPath  string
	FFprobeBinPath string

	ProbeOutput string
	DecodedPCM  []byte

	FailProbe  bool
	FailDecode bool
	FailEncode bool

	mutex    sync.Mutex
	Commands [][]string
	Dirs     []string
}

func NewDummyFFmpegExecutor() *FFmpegExecutor {
	return &FFmpegExecutor{
		FFmpegBinPath:  "/bin/ffmpeg",
		FFprobeBinPath: "/bin/ffprobe",
	}
}

func (f *FFmpegExecutor) CommandContext(ctx context.Context, name string, args ...string) executor.Command {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.Commands = append(f.Commands, append([]string{name}, args...))

	return &ffmpegCommand{
		executor: f,
		name:     name,
		args:     args,
	}
}

func (f *FFmpegExecutor) recordDir(dir string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.Dirs = append(f.Dirs, dir)
}

type ffmpegCommand struct {
	executor *FFmpegExecutor
	name     string
	args     []string
}

func (c *ffmpegCommand) SetDir(dir string) {
	c.executor.recordDir(dir)
}

func (c *ffmpegCommand) Output() ([]byte, error) {
	switch c.name {
	case c.executor.FFprobeBinPath:
		if c.executor.FailProbe {
			return nil, ExecFailure
		}

		return []byte(c.executor.ProbeOutput), nil

	case c.executor.FFmpegBinPath:
		if c.executor.FailDecode {
			return nil, ExecFailure
		}

		return c.executor.DecodedPCM, nil

	default:
		return nil, errors.Newf("unexpected binary %s", c.name)
	}
}

func (c *ffmpegCommand) CombinedOutput() ([]byte, error) {
	if c.name != c.executor.FFmpegBinPath {
		return nil, errors.Newf("unexpected binary %s", c.name)
	}

	if c.executor.FailEncode {
		return []byte("encoder exploded"), ExecFailure
	}

	input := argAfter(c.args, "-i")
	output := c.args[len(c.args)-1]

	contents, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}

	return nil, os.WriteFile(output, contents, 0644)
}

func argAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}

	return ""
}
