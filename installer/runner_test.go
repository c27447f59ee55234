package installer

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	executable string
	dirs       []string
}

func (f *fakeResolver) Resolve(workingDir, commandLine string) (string, string) {
	f.dirs = append(f.dirs, workingDir)
	if f.executable == "" {
		return "", ""
	}
	return f.executable, commandLine
}

type fakeProcess struct {
	code        int
	stdout      []string
	stderr      []string
	waitErr     error
	panicOnWait bool
	closed      bool
}

func (p *fakeProcess) Pid() int { return 4242 }

func (p *fakeProcess) Wait() (int, []string, []string, error) {
	if p.panicOnWait {
		panic("wait exploded")
	}
	return p.code, p.stdout, p.stderr, p.waitErr
}

func (p *fakeProcess) Close() error {
	p.closed = true
	return nil
}

// launchStep is what the fake launcher does on one call.
type launchStep struct {
	proc  Process
	err   error
	panic bool
}

type fakeLauncher struct {
	mu       sync.Mutex
	steps    []launchStep
	requests []LaunchRequest
}

func (f *fakeLauncher) Launch(req LaunchRequest) (Process, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	step := f.steps[min(len(f.requests), len(f.steps))-1]
	f.mu.Unlock()

	if step.panic {
		panic("launcher exploded")
	}
	return step.proc, step.err
}

func elevationErr() error {
	return &KindError{Kind: RequiresElevation, Err: assert.AnError}
}

func newTestRunner(resolver Resolver, launcher Launcher) *Runner {
	return NewRunner(RunnerOptions{
		Resolver: resolver,
		Launcher: launcher,
		Monitor:  NewHangMonitor(&fakeInspector{}, MonitorConfig{WarmUp: time.Hour}, nil),
		Logger:   NewLoggerToWriter(nil, LevelDebug),
	})
}

func TestRunner_FileNotFound(t *testing.T) {
	launcher := &fakeLauncher{}
	res := newTestRunner(&fakeResolver{}, launcher).Run("/pkg", "missing.exe /s", false)

	assert.Equal(t, FileNotFound, res.Failure)
	assert.Empty(t, launcher.requests, "nothing may be spawned")
	assert.Equal(t, -1, res.ExitCode)
	assert.NotNil(t, res.Stdout)
	assert.NotNil(t, res.Stderr)
	assert.False(t, res.Succeeded())
}

func TestRunner_Success(t *testing.T) {
	proc := &fakeProcess{
		code:   3010,
		stdout: []string{"", "", "A", "B", "", ""},
		stderr: []string{" ", ""},
	}
	launcher := &fakeLauncher{steps: []launchStep{{proc: proc}}}
	res := newTestRunner(&fakeResolver{executable: "/pkg/setup.exe"}, launcher).Run("/pkg/", "^/s", false)

	require.True(t, res.Succeeded(), res.Error)
	assert.Equal(t, 3010, res.ExitCode)
	assert.Equal(t, []string{"A", "B"}, res.Stdout)
	assert.Equal(t, []string{}, res.Stderr)
	assert.Equal(t, "/pkg", res.WorkingDirectory)
	assert.Equal(t, "/s", res.Arguments)
	assert.False(t, res.ShellExecute)
	assert.True(t, proc.closed)

	_, err := uuid.Parse(res.AttemptID)
	assert.NoError(t, err)

	require.Len(t, launcher.requests, 1)
	assert.Equal(t, LaunchRequest{Dir: "/pkg", Executable: "/pkg/setup.exe", Arguments: "/s"}, launcher.requests[0])
}

func TestRunner_ShellExecuteRetry(t *testing.T) {
	tests := []struct {
		name      string
		steps     []launchStep
		allow     bool
		launches  int
		want      ErrorKind
		wantShell bool
	}{
		{
			name:      "elevation retried once through the shell",
			steps:     []launchStep{{err: elevationErr()}, {proc: &fakeProcess{}}},
			launches:  2,
			want:      "",
			wantShell: true,
		},
		{
			name:      "second elevation failure surfaces",
			steps:     []launchStep{{err: elevationErr()}, {err: elevationErr()}},
			launches:  2,
			want:      RequiresElevation,
			wantShell: true,
		},
		{
			name:      "not executable retried",
			steps:     []launchStep{{err: &KindError{Kind: NotExecutable}}, {proc: &fakeProcess{}}},
			launches:  2,
			want:      "",
			wantShell: true,
		},
		{
			name:     "access denied not retried",
			steps:    []launchStep{{err: &KindError{Kind: AccessDenied}}},
			launches: 1,
			want:     AccessDenied,
		},
		{
			name:      "shell mode from the start is not retried",
			steps:     []launchStep{{err: elevationErr()}},
			allow:     true,
			launches:  1,
			want:      RequiresElevation,
			wantShell: true,
		},
		{
			name:     "no process created",
			steps:    []launchStep{{}},
			launches: 1,
			want:     NoProcessCreated,
		},
		{
			name:     "wait failure",
			steps:    []launchStep{{proc: &fakeProcess{waitErr: assert.AnError}}},
			launches: 1,
			want:     Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			launcher := &fakeLauncher{steps: tt.steps}
			res := newTestRunner(&fakeResolver{executable: "/pkg/setup.exe"}, launcher).Run("/pkg", "/s", tt.allow)

			assert.Equal(t, tt.want, res.Failure)
			assert.Equal(t, tt.wantShell, res.ShellExecute)
			require.Len(t, launcher.requests, tt.launches)

			assert.Equal(t, tt.allow, launcher.requests[0].ShellExecute)
			if tt.launches == 2 {
				assert.True(t, launcher.requests[1].ShellExecute)
			}
		})
	}
}

func TestRunner_HarnessDied(t *testing.T) {
	t.Run("launch panics", func(t *testing.T) {
		launcher := &fakeLauncher{steps: []launchStep{{panic: true}}}
		res := newTestRunner(&fakeResolver{executable: "/pkg/setup.exe"}, launcher).Run("/pkg", "", false)
		assert.Equal(t, HarnessDied, res.Failure)
		assert.Len(t, launcher.requests, 1)
	})

	t.Run("wait panics", func(t *testing.T) {
		proc := &fakeProcess{panicOnWait: true}
		launcher := &fakeLauncher{steps: []launchStep{{proc: proc}}}
		res := newTestRunner(&fakeResolver{executable: "/pkg/setup.exe"}, launcher).Run("/pkg", "", false)
		assert.Equal(t, HarnessDied, res.Failure)
		assert.True(t, proc.closed)
	})
}

func TestRunner_ResolverSeesTrimmedDir(t *testing.T) {
	resolver := &fakeResolver{}
	newTestRunner(resolver, &fakeLauncher{}).Run(`C:\pkg\\`, "setup.exe", false)
	assert.Equal(t, []string{`C:\pkg`}, resolver.dirs)
}

func TestTrimTrailingSeparators(t *testing.T) {
	tests := map[string]string{
		"/pkg/":        "/pkg",
		"/pkg//":       "/pkg",
		`C:\pkg\`:      `C:\pkg`,
		"/":            "/",
		`C:\`:          `C:\`,
		"relative":     "relative",
		"":             "",
		`\\srv\share\`: `\\srv\share`,
	}
	for in, want := range tests {
		assert.Equal(t, want, trimTrailingSeparators(in), "input %q", in)
	}
}

func TestResultString(t *testing.T) {
	var nilResult *Result
	assert.Equal(t, "<nil>", nilResult.String())
	assert.False(t, nilResult.Succeeded())

	res := &Result{Executable: "setup.exe", Failure: AccessDenied}
	assert.Equal(t, "setup.exe: access_denied", res.String())

	res = &Result{Executable: "setup.exe", ExitCode: 0, Runtime: 1500 * time.Millisecond}
	assert.Equal(t, "setup.exe: exit code 0 in 1.5s", res.String())
}
