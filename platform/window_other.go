//go:build !windows

package platform

// MainWindow always reports no window on platforms without a window manager
// API wired in.
func MainWindow(pid int) (Window, bool) {
	return Window{}, false
}

// ThreadWindows returns nil on non-Windows platforms.
func ThreadWindows(tid int) []Window {
	return nil
}
