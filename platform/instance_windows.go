//go:build windows

package platform

import (
	"errors"

	"golang.org/x/sys/windows"
)

// AcquireInstanceLock takes a machine-wide named mutex so that only one
// holder runs at a time across all sessions. It fails with ErrLocked if
// another process already holds the name.
func AcquireInstanceLock(name string) (release func(), err error) {
	mutexName, err := windows.UTF16PtrFromString(`Global\` + name)
	if err != nil {
		return nil, err
	}

	handle, err := windows.CreateMutex(nil, false, mutexName)
	if errors.Is(err, windows.ERROR_ALREADY_EXISTS) {
		if handle != 0 {
			windows.CloseHandle(handle)
		}
		return nil, ErrLocked
	}
	if err != nil {
		return nil, err
	}

	return func() { windows.CloseHandle(handle) }, nil
}
