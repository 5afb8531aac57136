package instrument

import (
	"context"
	"io"
	"os/exec"
	"strings"
)

type Command struct {
	Dir  string
	Name string
	Args []string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

type Runner interface {
	Run(ctx context.Context, c Command, stdout, stderr io.Writer) error
}

// ExecRunner starts real processes. Cancelling ctx interrupts the child
// instead of killing it outright so the tool can clean up.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, c Command, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Cancel = func() error {
		return interrupt(cmd)
	}
	return cmd.Run()
}
