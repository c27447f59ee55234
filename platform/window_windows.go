//go:build windows

package platform

import (
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procEnumThreadWindows        = user32.NewProc("EnumThreadWindows")
	procGetWindowThreadProcessID = user32.NewProc("GetWindowThreadProcessId")
	procGetWindow                = user32.NewProc("GetWindow")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procIsWindowEnabled          = user32.NewProc("IsWindowEnabled")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
)

const gwOwner = 4

// Enumeration callbacks are a limited resource (syscall.NewCallback never
// frees them), so a single callback collects into a package-level slice.
var (
	enumMu       sync.Mutex
	enumHandles  []uintptr
	enumCallback = syscall.NewCallback(func(hwnd, _ uintptr) uintptr {
		enumHandles = append(enumHandles, hwnd)
		return 1 // continue enumeration
	})
)

// collectWindows runs an Enum*Windows call and returns every handle it
// reported as a finite slice.
func collectWindows(enum func(callback uintptr)) []uintptr {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumHandles = nil
	enum(enumCallback)
	handles := enumHandles
	enumHandles = nil
	return handles
}

// MainWindow returns the first visible, unowned top-level window belonging to
// the process. This matches how the shell picks a process's main window.
func MainWindow(pid int) (Window, bool) {
	handles := collectWindows(func(cb uintptr) {
		procEnumWindows.Call(cb, 0)
	})

	for _, hwnd := range handles {
		var owner uint32
		procGetWindowThreadProcessID.Call(hwnd, uintptr(unsafe.Pointer(&owner)))
		if int(owner) != pid {
			continue
		}
		if parent, _, _ := procGetWindow.Call(hwnd, gwOwner); parent != 0 {
			continue
		}
		w := describeWindow(hwnd)
		if w.Visible {
			return w, true
		}
	}
	return Window{}, false
}

// ThreadWindows returns every top-level window created by the thread.
func ThreadWindows(tid int) []Window {
	handles := collectWindows(func(cb uintptr) {
		procEnumThreadWindows.Call(uintptr(tid), cb, 0)
	})

	windowsList := make([]Window, 0, len(handles))
	for _, hwnd := range handles {
		windowsList = append(windowsList, describeWindow(hwnd))
	}
	return windowsList
}

func describeWindow(hwnd uintptr) Window {
	visible, _, _ := procIsWindowVisible.Call(hwnd)
	enabled, _, _ := procIsWindowEnabled.Call(hwnd)

	var rect windows.Rect
	procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rect)))

	return Window{
		Handle:  hwnd,
		Visible: visible != 0,
		Enabled: enabled != 0,
		Width:   int(rect.Right - rect.Left),
		Height:  int(rect.Bottom - rect.Top),
	}
}
