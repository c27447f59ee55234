//go:build windows

package platform

import (
	"os"

	"golang.org/x/sys/windows"
)

// SystemDir returns the Windows system directory.
// Example: C:\Windows\System32
func SystemDir() string {
	dir, err := windows.GetSystemDirectory()
	if err != nil {
		return os.Getenv("WINDIR") + `\System32`
	}
	return dir
}

// WindowsDir returns the Windows directory.
// Example: C:\Windows
func WindowsDir() string {
	dir, err := windows.GetWindowsDirectory()
	if err != nil {
		if env := os.Getenv("WINDIR"); env != "" {
			return env
		}
		return `C:\Windows`
	}
	return dir
}
