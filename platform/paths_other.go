//go:build !windows

package platform

// SystemDir returns the directory holding system binaries.
func SystemDir() string {
	return "/usr/bin"
}

// WindowsDir has no equivalent outside Windows and returns the filesystem root.
func WindowsDir() string {
	return "/"
}
