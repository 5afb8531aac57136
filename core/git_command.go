package core

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// GitCommand answers repository queries by running the git client. It is
// the default backend.
type GitCommand struct {
	Executable string
}

func (g GitCommand) executable() string {
	if strings.TrimSpace(g.Executable) == "" {
		return "git"
	}
	return g.Executable
}

func (g GitCommand) output(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.executable(), args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", pkgerrors.Wrapf(err, "git %s", strings.Join(args, " "))
		}
		return "", pkgerrors.Wrapf(err, "git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

func (g GitCommand) TopLevel(ctx context.Context, dir string) (string, error) {
	out, err := g.output(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		var execErr *exec.ExitError
		if pkgerrors.As(err, &execErr) {
			return "", pkgerrors.WithMessage(ErrNotRepository, err.Error())
		}
		return "", err
	}
	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\n")
	root := strings.TrimSpace(lines[0])
	if root == "" {
		return "", ErrNotRepository
	}
	return root, nil
}

func (g GitCommand) Status(ctx context.Context, root string) (string, error) {
	return g.output(ctx, root, "status", "--porcelain")
}

func (g GitCommand) Describe(ctx context.Context, root string) (string, error) {
	out, err := g.output(ctx, root, "describe", "--tags", "--exact-match", "HEAD")
	if err != nil {
		var execErr *exec.ExitError
		if pkgerrors.As(err, &execErr) {
			// HEAD is not tagged
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(out), nil
}
