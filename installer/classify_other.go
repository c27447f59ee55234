//go:build !windows

package installer

import (
	"errors"
	"syscall"
)

// Unix has no launch-time elevation prompt.
func isElevationRequired(err error) bool {
	return false
}

func isNotExecutable(err error) bool {
	return errors.Is(err, syscall.ENOEXEC)
}

func isAccessDenied(err error) bool {
	return errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM)
}
