//go:build windows

package platform

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	shell32             = windows.NewLazySystemDLL("shell32.dll")
	procShellExecuteExW = shell32.NewProc("ShellExecuteExW")
)

const (
	seeMaskNoCloseProcess = 0x00000040
	seeMaskNoAsync        = 0x00000100
	seeMaskFlagNoUI       = 0x00000400
)

type shellExecuteInfo struct {
	Size          uint32
	Mask          uint32
	Hwnd          uintptr
	Verb          *uint16
	File          *uint16
	Parameters    *uint16
	Directory     *uint16
	Show          int32
	InstApp       uintptr
	IDList        uintptr
	Class         *uint16
	KeyClass      uintptr
	HotKey        uint32
	IconOrMonitor uintptr
	Process       windows.Handle
}

// ShellProcess is a process started through the shell. Its output cannot be
// captured; only its exit code is observable.
type ShellProcess struct {
	PID    int
	handle windows.Handle
	once   sync.Once
}

// ShellExecute launches file through the Windows shell, which applies file
// associations (msi, cab, documents) and raises the UAC prompt when the
// target's manifest requires elevation. Returns ErrNoProcess when the shell
// succeeded without handing back a process handle.
func ShellExecute(dir, file, args string) (*ShellProcess, error) {
	filePtr, err := windows.UTF16PtrFromString(file)
	if err != nil {
		return nil, err
	}
	var argsPtr, dirPtr *uint16
	if args != "" {
		if argsPtr, err = windows.UTF16PtrFromString(args); err != nil {
			return nil, err
		}
	}
	if dir != "" {
		if dirPtr, err = windows.UTF16PtrFromString(dir); err != nil {
			return nil, err
		}
	}

	info := shellExecuteInfo{
		Mask:       seeMaskNoCloseProcess | seeMaskNoAsync | seeMaskFlagNoUI,
		File:       filePtr,
		Parameters: argsPtr,
		Directory:  dirPtr,
		Show:       windows.SW_SHOWNORMAL,
	}
	info.Size = uint32(unsafe.Sizeof(info))

	ret, _, callErr := procShellExecuteExW.Call(uintptr(unsafe.Pointer(&info)))
	if ret == 0 {
		return nil, fmt.Errorf("shell execute %s: %w", file, callErr)
	}
	if info.Process == 0 {
		return nil, ErrNoProcess
	}

	pid, err := windows.GetProcessId(info.Process)
	if err != nil {
		windows.CloseHandle(info.Process)
		return nil, fmt.Errorf("get process id: %w", err)
	}

	return &ShellProcess{PID: int(pid), handle: info.Process}, nil
}

// Wait blocks until the process exits and returns its exit code.
func (p *ShellProcess) Wait() (int, error) {
	event, err := windows.WaitForSingleObject(p.handle, windows.INFINITE)
	if event == windows.WAIT_FAILED {
		return -1, fmt.Errorf("wait for process %d: %w", p.PID, err)
	}

	var code uint32
	if err := windows.GetExitCodeProcess(p.handle, &code); err != nil {
		return -1, fmt.Errorf("get exit code of process %d: %w", p.PID, err)
	}
	return int(code), nil
}

// Close releases the process handle. It is safe to call more than once.
func (p *ShellProcess) Close() error {
	var err error
	p.once.Do(func() {
		err = windows.CloseHandle(p.handle)
	})
	return err
}
