package platform

import "errors"

// ErrNotSupported is returned by operations that have no implementation on
// the current platform.
var ErrNotSupported = errors.New("not supported on this platform")

// ErrNoProcess indicates that a launch reported success but produced no
// process handle (for example when the shell handed the file to an already
// running application).
var ErrNoProcess = errors.New("no process was created")

// ErrLocked is returned by AcquireInstanceLock when another process holds
// the lock.
var ErrLocked = errors.New("lock is held by another process")

// ProcessEntry is one row of a system-wide process snapshot.
type ProcessEntry struct {
	PID       int
	ParentPID int
	Name      string
}

// ThreadEntry describes a single OS thread.
type ThreadEntry struct {
	TID     int
	Waiting bool // thread is blocked in a wait state
}

// Window describes a top-level or thread-owned window.
type Window struct {
	Handle  uintptr
	Visible bool
	Enabled bool
	Width   int
	Height  int
}

// Interactable reports whether a user could currently interact with the
// window: it is visible, enabled and has a non-zero area.
func (w Window) Interactable() bool {
	return w.Visible && w.Enabled && w.Width > 0 && w.Height > 0
}
