package instrument

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// ToolError reports the step whose tool invocation failed.
type ToolError struct {
	Step string
	Response
}

func (e *ToolError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s failed", e.Step)
	}
	return fmt.Sprintf("%s failed: %v", e.Step, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Dispatch runs the steps of plan in order, announcing each on out, and
// stops at the first one that does not succeed.
func Dispatch(ctx context.Context, plan Plan, t Toolchain, out io.Writer, log logrus.FieldLogger) error {
	_, _ = fmt.Fprintln(out, plan.Title)
	for i, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return &ToolError{Step: step.Label, Response: ResponseError(err)}
		}
		_, _ = fmt.Fprintln(out, step.Label)
		if log != nil {
			log.WithField("step", i+1).Debugf("%s: %s", plan.Platform, step.Label)
		}
		resp := step.Run(ctx, t)
		if !resp.Success {
			if resp.Err == nil {
				resp.Err = fmt.Errorf("tool reported failure")
			}
			return &ToolError{Step: step.Label, Response: resp}
		}
	}
	return nil
}
