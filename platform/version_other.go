//go:build !windows

package platform

import (
	"os"
	"strings"
)

// OSVersion returns the kernel release when it is available from /proc, or
// an empty string.
func OSVersion() string {
	data, err := os.ReadFile("/proc/sys/kernel/osrelease")
	if err != nil {
		return ""
	}
	release := strings.TrimSpace(string(data))
	// "6.8.0-45-generic" -> "6.8.0"
	if i := strings.IndexAny(release, "-+_ "); i > 0 {
		release = release[:i]
	}
	return release
}
