package installer

import (
	"errors"
	"io"
	"os/exec"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/crafted-tech/pkgexec/platform"
)

// pipeCloseDelay bounds how long Wait keeps reading output after the process
// exits. Installers often leave a grandchild holding the inherited pipe
// handles; without a bound the read would last as long as that grandchild.
const pipeCloseDelay = 5 * time.Second

// LaunchRequest describes one spawn.
type LaunchRequest struct {
	Dir          string
	Executable   string
	Arguments    string
	ShellExecute bool // launch through the OS shell; output is not captured
}

// Process is a started process.
type Process interface {
	// Pid returns the OS process id.
	Pid() int

	// Wait blocks until the process exits and its captured output (if any)
	// has been drained. A non-zero exit code is not an error.
	Wait() (exitCode int, stdout, stderr []string, err error)

	// Close releases OS handles. It is safe to call after Wait.
	Close() error
}

// Launcher starts processes. The runner only talks to this interface, so
// tests can substitute failures the real OS would be hard-pressed to produce.
type Launcher interface {
	Launch(req LaunchRequest) (Process, error)
}

// ExecLauncher is the Launcher backed by os/exec and the platform shell.
type ExecLauncher struct{}

// Launch implements Launcher.
func (ExecLauncher) Launch(req LaunchRequest) (Process, error) {
	if req.ShellExecute {
		sp, err := platform.ShellExecute(req.Dir, req.Executable, req.Arguments)
		if err != nil {
			return nil, err
		}
		return &shellProcess{sp: sp}, nil
	}

	cmd := exec.Command(req.Executable)
	cmd.Dir = req.Dir
	setArguments(cmd, req.Executable, req.Arguments)

	outR, outW := io.Pipe()
	errR, errW := io.Pipe()
	cmd.Stdout = outW
	cmd.Stderr = errW
	cmd.WaitDelay = pipeCloseDelay

	if err := cmd.Start(); err != nil {
		outW.Close()
		errW.Close()
		return nil, err
	}

	return &execProcess{cmd: cmd, outR: outR, outW: outW, errR: errR, errW: errW}, nil
}

type execProcess struct {
	cmd        *exec.Cmd
	outR, errR *io.PipeReader
	outW, errW *io.PipeWriter
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

// Wait drains stdout and stderr on their own goroutines while this goroutine
// waits for exit. exec copies the OS pipes into outW/errW until the child
// closes them; closing the writers afterwards lets the drains finish.
func (p *execProcess) Wait() (int, []string, []string, error) {
	var stdout, stderr []string
	var g errgroup.Group
	g.Go(func() error {
		stdout = drainLines(p.outR)
		return nil
	})
	g.Go(func() error {
		stderr = drainLines(p.errR)
		return nil
	})

	waitErr := p.cmd.Wait()
	p.outW.Close()
	p.errW.Close()
	_ = g.Wait()

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil, errors.Is(waitErr, exec.ErrWaitDelay):
		return p.cmd.ProcessState.ExitCode(), stdout, stderr, nil
	case errors.As(waitErr, &exitErr):
		return exitErr.ExitCode(), stdout, stderr, nil
	default:
		return -1, stdout, stderr, waitErr
	}
}

func (p *execProcess) Close() error {
	p.outR.Close()
	p.errR.Close()
	return nil
}

type shellProcess struct {
	sp *platform.ShellProcess
}

func (p *shellProcess) Pid() int {
	return p.sp.PID
}

func (p *shellProcess) Wait() (int, []string, []string, error) {
	code, err := p.sp.Wait()
	return code, nil, nil, err
}

func (p *shellProcess) Close() error {
	return p.sp.Close()
}
