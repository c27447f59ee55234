// Package installer runs vendor driver and firmware installers and decides
// whether an installed version satisfies a vendor constraint.
//
// The package offers reusable components that an installer orchestrator can
// pick from:
//   - Version matching: Evaluate a "lower^upper" or exact constraint in
//     decimal or hex against a system version
//   - Process running: Runner resolves a command line, captures output,
//     classifies launch failures and retries once through the shell
//   - Hang monitoring: HangMonitor logs advisory observations about a long
//     running process tree
//   - Logger: leveled logging with rotating file output and an in-memory buffer
//   - Steps: Step/StepResult with RunSteps for sequencing checks and installs
//
// # Version Constraints
//
// A constraint is either exact ("1.2.3", "1f") or an inclusive range with
// '^' separating the bounds; either side may be empty:
//
//	installer.Evaluate("1.2^2.0", "1.10")   // Satisfied
//	installer.Evaluate("ff^", "100")        // NotSatisfied (100 < 0xff)
//	installer.Evaluate("1.2.x", "1.2.3")    // Unparseable
//
// Unparseable and NotSatisfied are different answers: the first means the
// input could not be read, the second that the installed version is wrong.
//
// # Running Installers
//
//	runner := installer.NewRunner(installer.RunnerOptions{Logger: log})
//	res := runner.Run(pkgDir, `"%PackageRoot%\setup.exe" /quiet`, false)
//	if !res.Succeeded() {
//	    return fmt.Errorf("install failed: %s", res.Failure)
//	}
//	fmt.Println(res.ExitCode, res.Stdout)
//
// Run has no timeout or cancellation. It returns when the process exits.
package installer
