package asppack

import (
	"fmt"
)

type Kind int

const (
	// KindEnvironment is a precondition the operator has to fix.
	KindEnvironment Kind = iota + 1
	// KindDeclined means the operator answered no.
	KindDeclined
	// KindToolFailure is a non-zero exit of an external tool.
	KindToolFailure
)

func (k Kind) String() string {
	switch k {
	case KindEnvironment:
		return "environment"
	case KindDeclined:
		return "declined"
	case KindToolFailure:
		return "tool failure"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

const (
	PhaseLocate    = "locate"
	PhaseConfig    = "config"
	PhaseValidate  = "validate"
	PhaseWorkspace = "workspace"
	PhasePackage   = "package"
	PhaseChecksum  = "checksum"
	PhasePublish   = "publish"
)

const (
	msgNotRepository = "Execute this from an Asp Git repository"
	msgNotProject    = "This doesn't look like an Asp repository"
	msgBailing       = "Bailing"
	msgNotDirectory  = "'%s' exists and is not a directory; remove and try again"
	msgDirtyPublish  = "Refusing to publish packages built from a dirty repository"
)

// Error terminates a run. Message is meant for the operator; Err keeps the
// underlying cause for verbose output.
type Error struct {
	Kind     Kind
	Phase    string
	Message  string
	Err      error
	ExitCode int
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func environmentError(phase, message string, err error) *Error {
	return &Error{
		Kind:     KindEnvironment,
		Phase:    phase,
		Message:  message,
		Err:      err,
		ExitCode: 1,
	}
}

func declinedError(err error) *Error {
	return &Error{
		Kind:     KindDeclined,
		Phase:    PhaseWorkspace,
		Message:  msgBailing,
		Err:      err,
		ExitCode: 1,
	}
}

// toolError carries the tool's own exit status, falling back to 1 when the
// tool never reported one.
func toolError(step string, code int, err error) *Error {
	if code <= 0 {
		code = 1
	}
	return &Error{
		Kind:     KindToolFailure,
		Phase:    PhasePackage,
		Message:  fmt.Sprintf("%s failed", step),
		Err:      err,
		ExitCode: code,
	}
}
