package installer

import (
	"time"

	"github.com/crafted-tech/pkgexec/platform"
)

// MonitorConfig controls the cadence of the hang monitor.
type MonitorConfig struct {
	// WarmUp is how long the process must run before the first check.
	// Default: 1 minute.
	WarmUp time.Duration

	// Interval is the time between checks after the warm-up.
	// Default: 30 seconds.
	Interval time.Duration

	// Tick is the sleep granularity between checks. Default: 200ms.
	Tick time.Duration
}

// DefaultMonitorConfig returns the default cadence.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		WarmUp:   time.Minute,
		Interval: 30 * time.Second,
		Tick:     200 * time.Millisecond,
	}
}

// Normalize fills zero or negative fields with their defaults.
func (c MonitorConfig) Normalize() MonitorConfig {
	def := DefaultMonitorConfig()
	if c.WarmUp <= 0 {
		c.WarmUp = def.WarmUp
	}
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.Tick <= 0 {
		c.Tick = def.Tick
	}
	return c
}

// Inspector is the read-only view of processes, threads and windows the hang
// monitor needs. platform.Inspector is the native implementation.
type Inspector interface {
	Processes() ([]platform.ProcessEntry, error)
	Threads() (map[int][]platform.ThreadEntry, error)
	MainWindow(pid int) (platform.Window, bool)
	ThreadWindows(tid int) []platform.Window
}

// Observation is what a single hang check saw across a process tree.
type Observation struct {
	Root                  int
	PIDs                  []int
	Threads               int
	HasInteractableWindow bool
	AllThreadsWaiting     bool
}

// Suspicious reports the pattern the monitor flags: every thread in the tree
// is blocked and there is no window a user could answer. Typical cause is an
// installer waiting on a hidden or off-screen dialog.
func (o Observation) Suspicious() bool {
	return o.AllThreadsWaiting && !o.HasInteractableWindow
}

// HangMonitor periodically inspects a running process tree and logs what it
// sees. It never terminates, suspends or signals anything.
type HangMonitor struct {
	inspector Inspector
	cfg       MonitorConfig
	log       *Logger
}

// NewHangMonitor creates a HangMonitor. cfg is normalized.
func NewHangMonitor(inspector Inspector, cfg MonitorConfig, log *Logger) *HangMonitor {
	return &HangMonitor{inspector: inspector, cfg: cfg.Normalize(), log: log}
}

// Watch checks the tree rooted at pid once WarmUp has elapsed and then every
// Interval, until exited is closed. An observation taken while the process
// was exiting is discarded.
func (m *HangMonitor) Watch(pid int, exited <-chan struct{}) {
	ticker := time.NewTicker(m.cfg.Tick)
	defer ticker.Stop()

	next := time.Now().Add(m.cfg.WarmUp)
	for {
		select {
		case <-exited:
			return
		case now := <-ticker.C:
			if now.Before(next) {
				continue
			}

			obs, err := m.Observe(pid)

			select {
			case <-exited:
				return
			default:
			}

			if err != nil {
				m.log.Debug("Hang check for process %d failed: %v", pid, err)
			} else {
				m.report(obs)
			}
			next = time.Now().Add(m.cfg.Interval)
		}
	}
}

// Observe takes one snapshot of the process tree rooted at pid.
func (m *HangMonitor) Observe(pid int) (Observation, error) {
	entries, err := m.inspector.Processes()
	if err != nil {
		return Observation{}, err
	}
	threads, err := m.inspector.Threads()
	if err != nil {
		return Observation{}, err
	}

	obs := Observation{Root: pid, PIDs: ProcessTree(pid, entries), AllThreadsWaiting: true}
	for _, p := range obs.PIDs {
		if w, ok := m.inspector.MainWindow(p); ok && w.Interactable() {
			obs.HasInteractableWindow = true
		}
		for _, t := range threads[p] {
			obs.Threads++
			if !t.Waiting {
				obs.AllThreadsWaiting = false
			}
			if obs.HasInteractableWindow {
				continue
			}
			for _, w := range m.inspector.ThreadWindows(t.TID) {
				if w.Interactable() {
					obs.HasInteractableWindow = true
					break
				}
			}
		}
	}

	// No thread information says nothing about waiting.
	if obs.Threads == 0 {
		obs.AllThreadsWaiting = false
	}
	return obs, nil
}

func (m *HangMonitor) report(obs Observation) {
	if obs.Suspicious() {
		m.log.Warn("Process %d may be hung: %d process(es), %d thread(s) all waiting, no interactable window",
			obs.Root, len(obs.PIDs), obs.Threads)
		return
	}
	m.log.Info("Process %d still running: %d process(es), %d thread(s), interactable window: %t, all threads waiting: %t",
		obs.Root, len(obs.PIDs), obs.Threads, obs.HasInteractableWindow, obs.AllThreadsWaiting)
}

// ProcessTree returns root followed by every descendant of root found in
// entries. An entry listed as its own parent is skipped, and each pid is
// visited once, so stale or reused parent ids cannot cause a loop.
func ProcessTree(root int, entries []platform.ProcessEntry) []int {
	children := make(map[int][]int)
	for _, e := range entries {
		if e.PID == e.ParentPID {
			continue
		}
		children[e.ParentPID] = append(children[e.ParentPID], e.PID)
	}

	tree := []int{root}
	seen := map[int]bool{root: true}
	for i := 0; i < len(tree); i++ {
		for _, child := range children[tree[i]] {
			if seen[child] {
				continue
			}
			seen[child] = true
			tree = append(tree, child)
		}
	}
	return tree
}
