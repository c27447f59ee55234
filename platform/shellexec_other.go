//go:build !windows

package platform

// ShellProcess is a process started through the shell.
type ShellProcess struct {
	PID int
}

// ShellExecute is only available on Windows.
func ShellExecute(dir, file, args string) (*ShellProcess, error) {
	return nil, ErrNotSupported
}

// Wait is only available on Windows.
func (p *ShellProcess) Wait() (int, error) {
	return -1, ErrNotSupported
}

// Close is a no-op on non-Windows platforms.
func (p *ShellProcess) Close() error {
	return nil
}
