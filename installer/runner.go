package installer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crafted-tech/pkgexec/platform"
)

// Result is the outcome of one invocation attempt. Failure is empty when the
// process started and exited on its own; in that case the exit code, runtime
// and captured output are set. A retry produces a new Result.
type Result struct {
	AttemptID        string        `json:"attempt_id" yaml:"attempt_id"`
	Failure          ErrorKind     `json:"failure,omitempty" yaml:"failure,omitempty"`
	Error            string        `json:"error,omitempty" yaml:"error,omitempty"`
	ExitCode         int           `json:"exit_code" yaml:"exit_code"`
	Runtime          time.Duration `json:"runtime" yaml:"runtime"`
	Stdout           []string      `json:"stdout" yaml:"stdout"`
	Stderr           []string      `json:"stderr" yaml:"stderr"`
	Executable       string        `json:"executable" yaml:"executable"`
	Arguments        string        `json:"arguments" yaml:"arguments"`
	WorkingDirectory string        `json:"working_directory" yaml:"working_directory"`
	ShellExecute     bool          `json:"shell_execute" yaml:"shell_execute"`
}

// Succeeded reports whether the process ran to exit. It says nothing about
// the exit code.
func (r *Result) Succeeded() bool {
	return r != nil && r.Failure == ""
}

// RunnerOptions configures a Runner. Zero values select the defaults.
type RunnerOptions struct {
	Resolver Resolver            // default: NewVariableResolver(nil)
	Launcher Launcher            // default: ExecLauncher{}
	Monitor  *HangMonitor        // default: native inspector with DefaultMonitorConfig
	Logger   *Logger             // optional
	Escapes  func(string) string // default: StripEscapes
}

// Runner spawns vendor installer command lines and reports how they ended.
//
// Run blocks until the process exits on its own. There is no cancellation or
// timeout: an installer that never exits blocks Run forever. Callers that
// need a bound must enforce it outside the Runner.
type Runner struct {
	resolver Resolver
	launcher Launcher
	monitor  *HangMonitor
	log      *Logger
	escapes  func(string) string
}

// NewRunner creates a Runner.
func NewRunner(opts RunnerOptions) *Runner {
	r := &Runner{
		resolver: opts.Resolver,
		launcher: opts.Launcher,
		monitor:  opts.Monitor,
		log:      opts.Logger,
		escapes:  opts.Escapes,
	}
	if r.resolver == nil {
		r.resolver = NewVariableResolver(nil)
	}
	if r.launcher == nil {
		r.launcher = ExecLauncher{}
	}
	if r.monitor == nil {
		r.monitor = NewHangMonitor(platform.NewInspector(), DefaultMonitorConfig(), opts.Logger)
	}
	if r.escapes == nil {
		r.escapes = StripEscapes
	}
	return r
}

// Run resolves commandLine in workingDir and runs it to completion.
//
// With allowShellExecute false, stdout and stderr are captured. If that
// launch fails because the target needs elevation or is not a native
// executable, Run retries exactly once through the shell, where output
// cannot be captured. Failures in shell mode are returned as they are.
func (r *Runner) Run(workingDir, commandLine string, allowShellExecute bool) *Result {
	shell := allowShellExecute
	retried := false

	for {
		res := r.attempt(workingDir, commandLine, shell)
		if res.Succeeded() || !res.Failure.Retryable() || shell || retried {
			return res
		}

		r.log.Warn("Launch of %s failed (%s); retrying through the shell. Output will not be captured",
			res.Executable, res.Failure)
		if !platform.IsElevated() {
			r.log.Warn("Current process is not elevated; an elevation prompt may appear")
		}
		shell = true
		retried = true
	}
}

// invocation is a resolved launch. Results are built from it, never mutated
// across attempts.
type invocation struct {
	dir        string
	executable string
	arguments  string
	shell      bool
}

func (inv invocation) result() *Result {
	return &Result{
		AttemptID:        uuid.NewString(),
		Executable:       inv.executable,
		Arguments:        inv.arguments,
		WorkingDirectory: inv.dir,
		ShellExecute:     inv.shell,
		ExitCode:         -1,
		Stdout:           []string{},
		Stderr:           []string{},
	}
}

func (inv invocation) failure(kind ErrorKind, err error) *Result {
	res := inv.result()
	res.Failure = kind
	if err != nil {
		res.Error = err.Error()
	}
	return res
}

func (r *Runner) attempt(workingDir, commandLine string, shell bool) *Result {
	dir := trimTrailingSeparators(workingDir)
	executable, arguments := r.resolver.Resolve(dir, commandLine)

	inv := invocation{dir: dir, executable: executable, arguments: arguments, shell: shell}
	if executable == "" {
		r.log.Warn("Command %q does not resolve to an existing file", commandLine)
		return inv.failure(FileNotFound, nil)
	}
	inv.arguments = r.escapes(arguments)

	return r.harness(inv)
}

// harness runs the spawn-and-wait lifecycle on its own goroutine. If that
// goroutine dies without delivering a result, the attempt is HarnessDied.
func (r *Runner) harness(inv invocation) *Result {
	done := make(chan *Result, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				r.log.Error("Execution harness for %s crashed: %v", inv.executable, p)
			}
			close(done)
		}()
		done <- r.execute(inv)
	}()

	res, ok := <-done
	if !ok || res == nil {
		return inv.failure(HarnessDied, nil)
	}
	return res
}

func (r *Runner) execute(inv invocation) *Result {
	mode := "redirected"
	if inv.shell {
		mode = "shell execute"
	}
	r.log.Info("Launching %s %s (dir %s, %s)", inv.executable, inv.arguments, inv.dir, mode)

	start := time.Now()
	proc, err := r.launcher.Launch(LaunchRequest{
		Dir:          inv.dir,
		Executable:   inv.executable,
		Arguments:    inv.arguments,
		ShellExecute: inv.shell,
	})
	if err == nil && proc == nil {
		err = platform.ErrNoProcess
	}
	if err != nil {
		kind := Classify(err)
		r.log.Warn("Could not start %s: %s: %v", inv.executable, kind, err)
		return inv.failure(kind, err)
	}
	defer proc.Close()

	exited := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if p := recover(); p != nil {
				r.log.Error("Hang monitor for %s stopped: %v", inv.executable, p)
			}
		}()
		r.monitor.Watch(proc.Pid(), exited)
	}()
	stopMonitor := sync.OnceFunc(func() {
		close(exited)
		wg.Wait()
	})
	defer stopMonitor()

	code, stdout, stderr, err := proc.Wait()
	runtime := time.Since(start)
	stopMonitor()

	if err != nil {
		r.log.Error("Waiting for %s failed: %v", inv.executable, err)
		return inv.failure(Unknown, err)
	}

	res := inv.result()
	res.ExitCode = code
	res.Runtime = runtime
	res.Stdout = TrimBlankLines(stdout)
	res.Stderr = TrimBlankLines(stderr)

	r.log.Info("%s exited with code %d after %s", inv.executable, code, runtime.Round(time.Millisecond))
	return res
}

// trimTrailingSeparators drops trailing path separators. Roots ("/", "C:\")
// are left alone since trimming them would change which directory is meant.
func trimTrailingSeparators(dir string) string {
	trimmed := strings.TrimRight(dir, `\/`)
	if trimmed == "" || strings.HasSuffix(trimmed, ":") {
		return dir
	}
	return trimmed
}

// String summarizes the result for logs.
func (r *Result) String() string {
	if r == nil {
		return "<nil>"
	}
	if r.Failure != "" {
		return fmt.Sprintf("%s: %s", r.Executable, r.Failure)
	}
	return fmt.Sprintf("%s: exit code %d in %s", r.Executable, r.ExitCode, r.Runtime.Round(time.Millisecond))
}
