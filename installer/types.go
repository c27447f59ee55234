package installer

import "errors"

// ErrCancelled is returned by RunSteps when the progress callback asks to stop.
var ErrCancelled = errors.New("operation cancelled")

// StepResult is what a Step reports back to RunSteps.
type StepResult struct {
	// Skip marks a step that had nothing to do. It counts as success, and
	// Info says why.
	Skip bool

	// Info is an optional message logged when the step completes.
	Info string

	// Err fails the step and stops the sequence.
	Err error

	// Invocation is set by steps that ran a process, whether or not the
	// step itself succeeded.
	Invocation *Result
}

// Success returns a passing StepResult.
func Success(info string) StepResult {
	return StepResult{Info: info}
}

// Skipped returns a StepResult for a step that had nothing to do.
func Skipped(reason string) StepResult {
	return StepResult{Skip: true, Info: reason}
}

// Failed returns a failing StepResult.
func Failed(err error) StepResult {
	return StepResult{Err: err}
}

// Step is one named action in a check, install and verify sequence.
type Step struct {
	Name   string
	Action func() StepResult
}

// SimpleStep adapts a function returning only an error into a Step.
//
//	installer.SimpleStep("Stage driver files", func() error {
//	    return os.MkdirAll(stagingDir, 0o755)
//	})
func SimpleStep(name string, action func() error) Step {
	return Step{
		Name: name,
		Action: func() StepResult {
			if err := action(); err != nil {
				return Failed(err)
			}
			return Success("")
		},
	}
}
