package executor

import (
	"context"
	"os/exec"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

//counterfeiter:generate . Command
type Command interface {
	SetDir(dir string)
	Output() ([]byte, error)
	CombinedOutput() ([]byte, error)
}

//counterfeiter:generate . Executor
type Executor interface {
	CommandContext(ctx context.Context, name string, args ...string) Command
}

var _ Executor = BinaryFileExecutor{}

type BinaryFileExecutor struct{}

func (BinaryFileExecutor) CommandContext(ctx context.Context, name string, args ...string) Command {
	return &binaryCommand{cmd: exec.CommandContext(ctx, name, args...)}
}

type binaryCommand struct {
	cmd *exec.Cmd
}

func (b *binaryCommand) SetDir(dir string) {
	b.cmd.Dir = dir
}

func (b *binaryCommand) Output() ([]byte, error) {
	return b.cmd.Output()
}

func (b *binaryCommand) CombinedOutput() ([]byte, error) {
	return b.cmd.CombinedOutput()
}
