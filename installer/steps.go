package installer

import (
	"errors"
	"fmt"
	"slices"
)

// ErrVersionNotSatisfied is returned by StepRequireVersion when the system
// version parses but falls outside the constraint.
var ErrVersionNotSatisfied = errors.New("installed version does not satisfy constraint")

// ErrVersionQuery wraps a failure of the SystemVersionFunc itself. It is kept
// apart from *ParseError: the version could not be read, not misread.
var ErrVersionQuery = errors.New("query installed version")

// LaunchError reports an invocation that never ran to exit.
type LaunchError struct {
	Kind   ErrorKind
	Result *Result
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %s", e.Result.Executable, e.Kind)
}

// ExitCodeError reports a process that exited with a code the caller did
// not accept.
type ExitCodeError struct {
	Code     int
	Accepted []int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d (accepted %v)", e.Code, e.Accepted)
}

// SystemVersionFunc returns the currently installed version of a component.
type SystemVersionFunc func() (string, error)

// CheckVersion evaluates pattern against the version reported by system.
// A non-nil error is either a *ParseError (the outcome is Unparseable) or
// wraps ErrVersionQuery when system failed or is nil.
func CheckVersion(pattern string, system SystemVersionFunc) (Outcome, error) {
	if system == nil {
		return Unparseable, fmt.Errorf("%w: no version source", ErrVersionQuery)
	}
	installed, err := system()
	if err != nil {
		return Unparseable, fmt.Errorf("%w: %w", ErrVersionQuery, err)
	}
	return evaluate(pattern, installed)
}

// StepRequireVersion creates a Step that fails unless the installed version
// satisfies pattern. A malformed pattern or version fails with the
// *ParseError rather than ErrVersionNotSatisfied.
func StepRequireVersion(component, pattern string, system SystemVersionFunc) Step {
	return Step{
		Name: fmt.Sprintf("Check %s version", component),
		Action: func() StepResult {
			outcome, err := CheckVersion(pattern, system)
			switch outcome {
			case Satisfied:
				return Success(fmt.Sprintf("matches %s", pattern))
			case NotSatisfied:
				return Failed(fmt.Errorf("%s %s: %w", component, pattern, ErrVersionNotSatisfied))
			default:
				return Failed(err)
			}
		},
	}
}

// StepRunCommand creates a Step that runs commandLine through the runner.
// The step fails when the process cannot be launched or exits with a code not
// in acceptCodes (default: 0).
func StepRunCommand(runner *Runner, workingDir, commandLine string, acceptCodes ...int) Step {
	if len(acceptCodes) == 0 {
		acceptCodes = []int{0}
	}
	return Step{
		Name: fmt.Sprintf("Run %s", commandLine),
		Action: func() StepResult {
			res := runner.Run(workingDir, commandLine, false)
			if !res.Succeeded() {
				return StepResult{Err: &LaunchError{Kind: res.Failure, Result: res}, Invocation: res}
			}
			if !slices.Contains(acceptCodes, res.ExitCode) {
				return StepResult{Err: &ExitCodeError{Code: res.ExitCode, Accepted: acceptCodes}, Invocation: res}
			}
			return StepResult{Info: res.String(), Invocation: res}
		},
	}
}
