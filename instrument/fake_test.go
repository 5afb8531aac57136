package instrument

import (
	"context"
	"io"
	"sync"
)

// recorder is a Runner that remembers every command and fails on demand.
type recorder struct {
	mu       sync.Mutex
	commands []Command
	failAt   int
	err      error
	output   string
}

func (r *recorder) Run(ctx context.Context, c Command, stdout, stderr io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = append(r.commands, c)
	if r.output != "" {
		_, _ = io.WriteString(stdout, r.output)
	}
	if r.err != nil && len(r.commands) == r.failAt {
		return r.err
	}
	return nil
}

type exitErr int

func (e exitErr) Error() string { return "exit status " + string(rune('0'+int(e))) }
func (e exitErr) ExitCode() int { return int(e) }
