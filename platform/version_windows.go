//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// OSVersion returns the running Windows version as "major.minor.build",
// e.g. "10.0.22631", usable as a system version for constraint matching.
// RtlGetVersion is not subject to the compatibility shims that make
// GetVersionEx report an older version to unmanifested executables.
func OSVersion() string {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
