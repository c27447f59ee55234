package platform

// Inspector reads process, thread and window state from the running system.
// All methods are read-only; nothing here signals or modifies a process.
type Inspector struct{}

// NewInspector returns an Inspector backed by the native OS APIs.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Processes returns a snapshot of every process on the system.
func (i *Inspector) Processes() ([]ProcessEntry, error) {
	return Snapshot()
}

// Threads returns the threads of every process, keyed by process id.
func (i *Inspector) Threads() (map[int][]ThreadEntry, error) {
	return ThreadStates()
}

// MainWindow returns the main window of the process, if it has one.
func (i *Inspector) MainWindow(pid int) (Window, bool) {
	return MainWindow(pid)
}

// ThreadWindows returns the windows owned by the given thread.
func (i *Inspector) ThreadWindows(tid int) []Window {
	return ThreadWindows(tid)
}
