package pkgexec

import (
	"errors"

	"github.com/crafted-tech/pkgexec/installer"
	"github.com/crafted-tech/pkgexec/platform"
)

// Executor runs version checks and installer invocations with a shared
// configuration.
type Executor struct {
	cfg    Config
	runner *installer.Runner
}

// New creates an Executor.
func New(opts ...Option) *Executor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	inspector := cfg.Inspector
	if inspector == nil {
		inspector = platform.NewInspector()
	}
	resolver := cfg.Resolver
	if resolver == nil {
		resolver = installer.NewVariableResolver(cfg.Variables)
	}

	return &Executor{
		cfg: cfg,
		runner: installer.NewRunner(installer.RunnerOptions{
			Resolver: resolver,
			Launcher: cfg.Launcher,
			Monitor:  installer.NewHangMonitor(inspector, cfg.Monitor, cfg.Logger),
			Logger:   cfg.Logger,
		}),
	}
}

// Check evaluates a vendor constraint against a system version.
func (e *Executor) Check(pattern, systemVersion string) installer.Outcome {
	return installer.Evaluate(pattern, systemVersion)
}

// Run runs a vendor command line in dir. Unless allowShellExecute is set,
// output is captured and a launch that needs elevation or a file association
// is retried once through the shell.
func (e *Executor) Run(dir, commandLine string, allowShellExecute bool) *installer.Result {
	return e.runner.Run(dir, commandLine, allowShellExecute)
}

// Package describes one installable component.
type Package struct {
	Name        string
	Dir         string
	CommandLine string

	// Constraint is the vendor version constraint. Empty means always install
	// and skip verification.
	Constraint string

	// SystemVersion reports the installed version. Required when Constraint
	// is set.
	SystemVersion installer.SystemVersionFunc

	// AcceptCodes lists exit codes counted as success (default: 0).
	AcceptCodes []int
}

// Status summarizes what Apply did.
type Status string

const (
	StatusUpToDate          Status = "up_to_date"         // constraint already satisfied; nothing ran
	StatusInstalled         Status = "installed"          // installer ran and the constraint now holds
	StatusInvalidConstraint Status = "invalid_constraint" // constraint or system version unparseable
	StatusFailed            Status = "failed"             // installer failed to launch or exited badly
	StatusUnverified        Status = "unverified"         // installer ran but the constraint still fails
	StatusQueryFailed       Status = "query_failed"       // the installed version could not be read
)

// ErrNoVersionSource is reported when a Package has a Constraint but no
// SystemVersion.
var ErrNoVersionSource = errors.New("constraint set without a system version source")

// Report is the outcome of Apply.
type Report struct {
	Package    string
	Status     Status
	Before     installer.Outcome
	Invocation *installer.Result
	Err        error
}

// Apply checks whether pkg is needed, runs its installer and verifies the
// installed version afterwards.
func (e *Executor) Apply(pkg Package) Report {
	log := e.cfg.Logger
	report := Report{Package: pkg.Name}

	if pkg.Constraint != "" && pkg.SystemVersion == nil {
		log.Error("%s: %v", pkg.Name, ErrNoVersionSource)
		report.Status = StatusFailed
		report.Err = ErrNoVersionSource
		return report
	}

	if pkg.Constraint != "" {
		before, err := installer.CheckVersion(pkg.Constraint, pkg.SystemVersion)
		report.Before = before
		switch {
		case errors.Is(err, installer.ErrVersionQuery):
			log.Error("%s: %v", pkg.Name, err)
			report.Status = StatusQueryFailed
			report.Err = err
			return report
		case before == installer.Satisfied:
			log.Info("%s already satisfies %s", pkg.Name, pkg.Constraint)
			report.Status = StatusUpToDate
			return report
		case before == installer.Unparseable:
			log.Error("%s: cannot evaluate constraint %q: %v", pkg.Name, pkg.Constraint, err)
			report.Status = StatusInvalidConstraint
			report.Err = err
			return report
		}
	}

	steps := []installer.Step{
		installer.StepRunCommand(e.runner, pkg.Dir, pkg.CommandLine, pkg.AcceptCodes...),
	}
	if pkg.Constraint != "" {
		steps = append(steps, installer.StepRequireVersion(pkg.Name, pkg.Constraint, pkg.SystemVersion))
	}

	reports, err := installer.RunSteps(log, steps, nil)
	if len(reports) > 0 {
		report.Invocation = reports[0].Result.Invocation
	}

	switch {
	case err == nil:
		report.Status = StatusInstalled
	case len(reports) > 1:
		// The installer step passed; verification did not.
		report.Status = StatusUnverified
		var parseErr *installer.ParseError
		switch {
		case errors.As(err, &parseErr):
			report.Status = StatusInvalidConstraint
		case errors.Is(err, installer.ErrVersionQuery):
			report.Status = StatusQueryFailed
		}
	default:
		report.Status = StatusFailed
	}
	report.Err = err
	return report
}
