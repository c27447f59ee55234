//go:build windows

package installer

import (
	"errors"

	"golang.org/x/sys/windows"
)

func isElevationRequired(err error) bool {
	return errors.Is(err, windows.ERROR_ELEVATION_REQUIRED)
}

// isNotExecutable matches files CreateProcess cannot run directly but the
// shell can open through an association (msi, cab, documents).
func isNotExecutable(err error) bool {
	return errors.Is(err, windows.ERROR_BAD_EXE_FORMAT) ||
		errors.Is(err, windows.ERROR_EXE_MACHINE_TYPE_MISMATCH) ||
		errors.Is(err, windows.ERROR_NO_ASSOCIATION)
}

func isAccessDenied(err error) bool {
	return errors.Is(err, windows.ERROR_ACCESS_DENIED)
}
