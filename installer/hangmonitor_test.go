package installer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crafted-tech/pkgexec/platform"
)

type fakeInspector struct {
	procs         []platform.ProcessEntry
	threads       map[int][]platform.ThreadEntry
	mainWindows   map[int]platform.Window
	threadWindows map[int][]platform.Window
	procErr       error
	onProcesses   func()
	calls         atomic.Int32
}

func (f *fakeInspector) Processes() ([]platform.ProcessEntry, error) {
	f.calls.Add(1)
	if f.onProcesses != nil {
		f.onProcesses()
	}
	return f.procs, f.procErr
}

func (f *fakeInspector) Threads() (map[int][]platform.ThreadEntry, error) {
	return f.threads, nil
}

func (f *fakeInspector) MainWindow(pid int) (platform.Window, bool) {
	w, ok := f.mainWindows[pid]
	return w, ok
}

func (f *fakeInspector) ThreadWindows(tid int) []platform.Window {
	return f.threadWindows[tid]
}

var visibleWindow = platform.Window{Handle: 1, Visible: true, Enabled: true, Width: 400, Height: 300}

// installerTree is setup.exe (10) -> msiexec (11) -> custom action (12), plus
// unrelated processes and a self-parented idle entry.
func installerTree() []platform.ProcessEntry {
	return []platform.ProcessEntry{
		{PID: 0, ParentPID: 0, Name: "idle"},
		{PID: 4, ParentPID: 0, Name: "system"},
		{PID: 10, ParentPID: 4, Name: "setup.exe"},
		{PID: 11, ParentPID: 10, Name: "msiexec.exe"},
		{PID: 12, ParentPID: 11, Name: "rundll32.exe"},
		{PID: 20, ParentPID: 4, Name: "explorer.exe"},
	}
}

func TestProcessTree(t *testing.T) {
	t.Run("descendants in breadth-first order", func(t *testing.T) {
		assert.Equal(t, []int{10, 11, 12}, ProcessTree(10, installerTree()))
	})

	t.Run("self-parented root", func(t *testing.T) {
		assert.Equal(t, []int{0, 4, 10, 20, 11, 12}, ProcessTree(0, installerTree()))
	})

	t.Run("reused parent ids form a cycle", func(t *testing.T) {
		entries := []platform.ProcessEntry{
			{PID: 30, ParentPID: 31},
			{PID: 31, ParentPID: 30},
		}
		assert.Equal(t, []int{30, 31}, ProcessTree(30, entries))
	})

	t.Run("unknown root", func(t *testing.T) {
		assert.Equal(t, []int{99}, ProcessTree(99, installerTree()))
	})
}

func TestHangMonitor_Observe(t *testing.T) {
	waiting := map[int][]platform.ThreadEntry{
		10: {{TID: 100, Waiting: true}},
		11: {{TID: 110, Waiting: true}, {TID: 111, Waiting: true}},
		12: {{TID: 120, Waiting: true}},
		20: {{TID: 200, Waiting: false}},
	}

	t.Run("all waiting without window is suspicious", func(t *testing.T) {
		m := NewHangMonitor(&fakeInspector{procs: installerTree(), threads: waiting}, MonitorConfig{}, nil)
		obs, err := m.Observe(10)
		require.NoError(t, err)

		assert.Equal(t, []int{10, 11, 12}, obs.PIDs)
		assert.Equal(t, 4, obs.Threads)
		assert.True(t, obs.AllThreadsWaiting)
		assert.False(t, obs.HasInteractableWindow)
		assert.True(t, obs.Suspicious())
	})

	t.Run("thread window in descendant", func(t *testing.T) {
		insp := &fakeInspector{
			procs:         installerTree(),
			threads:       waiting,
			threadWindows: map[int][]platform.Window{120: {visibleWindow}},
		}
		obs, err := NewHangMonitor(insp, MonitorConfig{}, nil).Observe(10)
		require.NoError(t, err)

		assert.True(t, obs.HasInteractableWindow)
		assert.False(t, obs.Suspicious())
	})

	t.Run("hidden or zero-size windows do not count", func(t *testing.T) {
		hidden := visibleWindow
		hidden.Visible = false
		disabled := visibleWindow
		disabled.Enabled = false
		offscreen := visibleWindow
		offscreen.Width = 0

		insp := &fakeInspector{
			procs:         installerTree(),
			threads:       waiting,
			mainWindows:   map[int]platform.Window{10: hidden},
			threadWindows: map[int][]platform.Window{110: {disabled, offscreen}},
		}
		obs, err := NewHangMonitor(insp, MonitorConfig{}, nil).Observe(10)
		require.NoError(t, err)
		assert.False(t, obs.HasInteractableWindow)
	})

	t.Run("main window", func(t *testing.T) {
		insp := &fakeInspector{
			procs:       installerTree(),
			threads:     waiting,
			mainWindows: map[int]platform.Window{11: visibleWindow},
		}
		obs, err := NewHangMonitor(insp, MonitorConfig{}, nil).Observe(10)
		require.NoError(t, err)
		assert.True(t, obs.HasInteractableWindow)
	})

	t.Run("running thread", func(t *testing.T) {
		threads := map[int][]platform.ThreadEntry{
			10: {{TID: 100, Waiting: true}},
			11: {{TID: 110, Waiting: false}},
		}
		obs, err := NewHangMonitor(&fakeInspector{procs: installerTree(), threads: threads}, MonitorConfig{}, nil).Observe(10)
		require.NoError(t, err)
		assert.False(t, obs.AllThreadsWaiting)
	})

	t.Run("no thread information", func(t *testing.T) {
		obs, err := NewHangMonitor(&fakeInspector{procs: installerTree()}, MonitorConfig{}, nil).Observe(10)
		require.NoError(t, err)
		assert.Zero(t, obs.Threads)
		assert.False(t, obs.AllThreadsWaiting)
		assert.False(t, obs.Suspicious())
	})

	t.Run("snapshot error", func(t *testing.T) {
		_, err := NewHangMonitor(&fakeInspector{procErr: assert.AnError}, MonitorConfig{}, nil).Observe(10)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestHangMonitor_Watch(t *testing.T) {
	insp := &fakeInspector{
		procs:   installerTree(),
		threads: map[int][]platform.ThreadEntry{10: {{TID: 100, Waiting: true}}},
	}
	log := NewLoggerToWriter(nil, LevelDebug)
	m := NewHangMonitor(insp, MonitorConfig{WarmUp: 5 * time.Millisecond, Interval: 5 * time.Millisecond, Tick: time.Millisecond}, log)

	exited := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Watch(10, exited)
	}()

	require.Eventually(t, func() bool { return insp.calls.Load() >= 2 }, 5*time.Second, time.Millisecond)
	close(exited)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after the process exited")
	}
	assert.Contains(t, log.Content(), "Process 10 may be hung")
}

func TestHangMonitor_WatchDiscardsObservationAfterExit(t *testing.T) {
	exited := make(chan struct{})
	var once sync.Once
	insp := &fakeInspector{
		procs:   installerTree(),
		threads: map[int][]platform.ThreadEntry{10: {{TID: 100, Waiting: true}}},
		onProcesses: func() {
			once.Do(func() { close(exited) })
			time.Sleep(10 * time.Millisecond)
		},
	}
	log := NewLoggerToWriter(nil, LevelDebug)
	m := NewHangMonitor(insp, MonitorConfig{WarmUp: time.Millisecond, Interval: time.Millisecond, Tick: time.Millisecond}, log)

	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Watch(10, exited)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after the process exited")
	}
	assert.Equal(t, int32(1), insp.calls.Load())
	assert.Empty(t, log.Content(), "an observation taken during exit must not be reported")
}

func TestHangMonitor_WatchWarmUp(t *testing.T) {
	insp := &fakeInspector{procs: installerTree()}
	m := NewHangMonitor(insp, MonitorConfig{WarmUp: time.Hour, Tick: time.Millisecond}, nil)

	exited := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		m.Watch(10, exited)
	}()

	time.Sleep(20 * time.Millisecond)
	close(exited)
	<-done

	assert.Zero(t, insp.calls.Load(), "no check may run before the warm-up elapses")
}

func TestMonitorConfig_Normalize(t *testing.T) {
	assert.Equal(t, DefaultMonitorConfig(), MonitorConfig{}.Normalize())

	cfg := MonitorConfig{WarmUp: time.Second, Interval: -1}.Normalize()
	assert.Equal(t, time.Second, cfg.WarmUp)
	assert.Equal(t, 30*time.Second, cfg.Interval)
	assert.Equal(t, 200*time.Millisecond, cfg.Tick)
}
