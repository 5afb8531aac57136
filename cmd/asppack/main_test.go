package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/aspkit/asppack"
	"github.com/stretchr/testify/assert"
)

func TestReportError(t *testing.T) {
	cause := errors.New("exit status 2")
	tests := []struct {
		name       string
		err        error
		verbose    bool
		wantCode   int
		wantOutput []string
		notOutput  []string
	}{
		{name: "success", err: nil, wantCode: 0},
		{
			name:       "environment",
			err:        &asppack.Error{Kind: asppack.KindEnvironment, Phase: "locate", Message: "Execute this from an Asp Git repository", ExitCode: 1},
			wantCode:   1,
			wantOutput: []string{"Execute this from an Asp Git repository"},
		},
		{
			name:       "declined",
			err:        &asppack.Error{Kind: asppack.KindDeclined, Phase: "workspace", Message: "Bailing", ExitCode: 1},
			wantCode:   1,
			wantOutput: []string{"Bailing"},
		},
		{
			name:       "tool exit status passes through",
			err:        &asppack.Error{Kind: asppack.KindToolFailure, Phase: "package", Message: "Configuring failed", Err: cause, ExitCode: 2},
			wantCode:   2,
			wantOutput: []string{"Configuring failed"},
			notOutput:  []string{"exit status 2"},
		},
		{
			name:       "cause shown when verbose",
			err:        &asppack.Error{Kind: asppack.KindToolFailure, Phase: "package", Message: "Building failed", Err: cause, ExitCode: 127},
			verbose:    true,
			wantCode:   127,
			wantOutput: []string{"Building failed", "[package] exit status 2"},
		},
		{
			name:     "wrapped run error",
			err:      fmt.Errorf("run: %w", &asppack.Error{Kind: asppack.KindToolFailure, Message: "Packaging source failed", ExitCode: 3}),
			wantCode: 3,
		},
		{
			name:     "missing exit status",
			err:      &asppack.Error{Kind: asppack.KindEnvironment, Message: "Invalid configuration"},
			wantCode: 1,
		},
		{
			name:       "foreign error",
			err:        errors.New("unexpected argument"),
			wantCode:   1,
			wantOutput: []string{"unexpected argument"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.wantCode, reportError(&out, tt.err, tt.verbose))
			for _, s := range tt.wantOutput {
				assert.Contains(t, out.String(), s)
			}
			for _, s := range tt.notOutput {
				assert.NotContains(t, out.String(), s)
			}
			if tt.err == nil {
				assert.Empty(t, out.String())
			}
		})
	}
}
