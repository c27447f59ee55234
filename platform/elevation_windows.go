//go:build windows

package platform

import "golang.org/x/sys/windows"

// IsElevated reports whether the current process token is elevated. A
// shell-execute launch of a target that requires elevation only raises a UAC
// prompt when this is false.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
