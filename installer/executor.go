package installer

// ProgressFunc receives progress updates from RunSteps. It returns false to
// stop before the next step.
type ProgressFunc func(percent float64, stepName string) bool

// StepReport pairs a step with its result.
type StepReport struct {
	Name   string
	Result StepResult
}

// RunSteps executes steps sequentially and stops at the first failure.
// Returns the per-step results of every step that ran and the first error,
// or ErrCancelled if progress asked to stop. log and progress may be nil.
//
// Example:
//
//	steps := []installer.Step{
//	    installer.StepRequireVersion("Firmware", "1.0^", currentFirmware),
//	    installer.StepRunCommand(runner, pkgDir, `%PackageRoot%\setup.exe /s`, 0),
//	}
//	reports, err := installer.RunSteps(log, steps, nil)
func RunSteps(log *Logger, steps []Step, progress ProgressFunc) ([]StepReport, error) {
	reports := make([]StepReport, 0, len(steps))
	total := len(steps)

	for i, step := range steps {
		if progress != nil && !progress(float64(i)/float64(total)*100, step.Name) {
			log.Warn("Installation cancelled before '%s'", step.Name)
			return reports, ErrCancelled
		}

		log.Step("Starting: %s", step.Name)
		result := step.Action()
		reports = append(reports, StepReport{Name: step.Name, Result: result})

		if result.Err != nil {
			log.Error("Step '%s' failed: %v", step.Name, result.Err)
			return reports, result.Err
		}

		switch {
		case result.Skip && result.Info != "":
			log.Info("Step '%s' skipped: %s", step.Name, result.Info)
		case result.Skip:
			log.Info("Step '%s' skipped", step.Name)
		case result.Info != "":
			log.Info("Step '%s' completed: %s", step.Name, result.Info)
		default:
			log.Info("Step '%s' completed", step.Name)
		}
	}

	if progress != nil {
		progress(100, "Complete")
	}
	log.Info("All steps completed successfully")
	return reports, nil
}
