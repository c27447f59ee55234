package installer

import (
	"errors"
	"fmt"

	"github.com/crafted-tech/pkgexec/platform"
)

// ErrorKind classifies why an invocation attempt failed. The empty kind
// means the process started and ran to exit.
type ErrorKind string

const (
	FileNotFound      ErrorKind = "file_not_found"
	NoProcessCreated  ErrorKind = "no_process_created"
	AccessDenied      ErrorKind = "access_denied"
	RequiresElevation ErrorKind = "requires_elevation"
	NotExecutable     ErrorKind = "not_executable"
	HarnessDied       ErrorKind = "harness_died"
	Unknown           ErrorKind = "unknown"
)

// Retryable reports whether a failure of this kind is worth one more attempt
// through the shell-execute path.
func (k ErrorKind) Retryable() bool {
	return k == RequiresElevation || k == NotExecutable
}

// KindError lets a Launcher state the kind of a start failure directly
// instead of relying on OS error codes.
type KindError struct {
	Kind ErrorKind
	Err  error
}

func (e *KindError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *KindError) Unwrap() error {
	return e.Err
}

// Classify maps a process start error onto an ErrorKind.
func Classify(err error) ErrorKind {
	var kindErr *KindError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &kindErr):
		return kindErr.Kind
	case errors.Is(err, platform.ErrNoProcess):
		return NoProcessCreated
	case isElevationRequired(err):
		return RequiresElevation
	case isNotExecutable(err):
		return NotExecutable
	case isAccessDenied(err):
		return AccessDenied
	default:
		return Unknown
	}
}
