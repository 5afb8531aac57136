package instrument

import (
	"errors"
)

// Response is the outcome of one external tool invocation. ErrStack holds
// whatever the tool printed, for reporting a failure.
type Response struct {
	Success  bool
	ErrStack string
	Err      error
}

func ResponseSuccess() Response {
	return Response{
		Success: true,
		Err:     nil,
	}
}

func ResponseError(err error) Response {
	return Response{
		Success: false,
		Err:     err,
	}
}

func ResponseErrorWithStack(err error, stack string) Response {
	return Response{
		Success:  false,
		ErrStack: stack,
		Err:      err,
	}
}

// ExitCode returns the exit status reported by the tool, or 0 when the
// failure did not come with one.
func (r Response) ExitCode() int {
	if r.Err == nil {
		return 0
	}
	var coded interface{ ExitCode() int }
	if errors.As(r.Err, &coded) {
		if code := coded.ExitCode(); code > 0 {
			return code
		}
	}
	return 0
}
