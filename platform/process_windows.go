//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                  = syscall.NewLazyDLL("kernel32.dll")
	procCreateToolhelp32Snapshot = modkernel32.NewProc("CreateToolhelp32Snapshot")
	procProcess32FirstW          = modkernel32.NewProc("Process32FirstW")
	procProcess32NextW           = modkernel32.NewProc("Process32NextW")

	modntdll                     = windows.NewLazySystemDLL("ntdll.dll")
	procNtQuerySystemInformation = modntdll.NewProc("NtQuerySystemInformation")
)

const (
	th32csSnapProcess = 0x00000002
	maxPath           = 260

	systemProcessInformation = 5
	statusInfoLengthMismatch = 0xC0000004

	// KTHREAD_STATE value for a thread blocked in a wait.
	threadStateWaiting = 5
)

type processEntry32W struct {
	Size            uint32
	Usage           uint32
	ProcessID       uint32
	DefaultHeapID   uintptr
	ModuleID        uint32
	Threads         uint32
	ParentProcessID uint32
	PriClassBase    int32
	Flags           uint32
	ExeFile         [maxPath]uint16
}

type unicodeString struct {
	Length        uint16
	MaximumLength uint16
	Buffer        *uint16
}

// systemProcessInfo mirrors SYSTEM_PROCESS_INFORMATION. It is followed
// in memory by NumberOfThreads systemThreadInformation records.
type systemProcessInfo struct {
	NextEntryOffset              uint32
	NumberOfThreads              uint32
	WorkingSetPrivateSize        int64
	HardFaultCount               uint32
	NumberOfThreadsHighWatermark uint32
	CycleTime                    uint64
	CreateTime                   int64
	UserTime                     int64
	KernelTime                   int64
	ImageName                    unicodeString
	BasePriority                 int32
	UniqueProcessID              uintptr
	InheritedFromUniqueProcessID uintptr
	HandleCount                  uint32
	SessionID                    uint32
	UniqueProcessKey             uintptr
	PeakVirtualSize              uintptr
	VirtualSize                  uintptr
	PageFaultCount               uint32
	PeakWorkingSetSize           uintptr
	WorkingSetSize               uintptr
	QuotaPeakPagedPoolUsage      uintptr
	QuotaPagedPoolUsage          uintptr
	QuotaPeakNonPagedPoolUsage   uintptr
	QuotaNonPagedPoolUsage       uintptr
	PagefileUsage                uintptr
	PeakPagefileUsage            uintptr
	PrivatePageCount             uintptr
	ReadOperationCount           int64
	WriteOperationCount          int64
	OtherOperationCount          int64
	ReadTransferCount            int64
	WriteTransferCount           int64
	OtherTransferCount           int64
}

type systemThreadInfo struct {
	KernelTime      int64
	UserTime        int64
	CreateTime      int64
	WaitTime        uint32
	StartAddress    uintptr
	UniqueProcess   uintptr
	UniqueThread    uintptr
	Priority        int32
	BasePriority    int32
	ContextSwitches uint32
	ThreadState     uint32
	WaitReason      uint32
}

// Snapshot returns every process on the system with its parent process id.
func Snapshot() ([]ProcessEntry, error) {
	snapshot, _, err := procCreateToolhelp32Snapshot.Call(th32csSnapProcess, 0)
	if snapshot == uintptr(syscall.InvalidHandle) {
		return nil, fmt.Errorf("create process snapshot: %w", err)
	}
	defer syscall.CloseHandle(syscall.Handle(snapshot))

	var entry processEntry32W
	entry.Size = uint32(unsafe.Sizeof(entry))

	ret, _, err := procProcess32FirstW.Call(snapshot, uintptr(unsafe.Pointer(&entry)))
	if ret == 0 {
		return nil, fmt.Errorf("read process snapshot: %w", err)
	}

	var entries []ProcessEntry
	for {
		entries = append(entries, ProcessEntry{
			PID:       int(entry.ProcessID),
			ParentPID: int(entry.ParentProcessID),
			Name:      syscall.UTF16ToString(entry.ExeFile[:]),
		})

		ret, _, _ = procProcess32NextW.Call(snapshot, uintptr(unsafe.Pointer(&entry)))
		if ret == 0 {
			break
		}
	}

	return entries, nil
}

// ThreadStates returns the threads of every process keyed by process id.
// Thread wait states are not exposed by the toolhelp API, so this reads the
// NT system process information block instead.
func ThreadStates() (map[int][]ThreadEntry, error) {
	buf, err := querySystemProcessInformation()
	if err != nil {
		return nil, err
	}

	threads := make(map[int][]ThreadEntry)
	procSize := unsafe.Sizeof(systemProcessInfo{})
	threadSize := unsafe.Sizeof(systemThreadInfo{})

	offset := uintptr(0)
	for {
		if offset+procSize > uintptr(len(buf)) {
			break
		}
		proc := (*systemProcessInfo)(unsafe.Pointer(&buf[offset]))
		pid := int(proc.UniqueProcessID)

		list := make([]ThreadEntry, 0, proc.NumberOfThreads)
		for i := uintptr(0); i < uintptr(proc.NumberOfThreads); i++ {
			pos := offset + procSize + i*threadSize
			if pos+threadSize > uintptr(len(buf)) {
				break
			}
			t := (*systemThreadInfo)(unsafe.Pointer(&buf[pos]))
			list = append(list, ThreadEntry{
				TID:     int(t.UniqueThread),
				Waiting: t.ThreadState == threadStateWaiting,
			})
		}
		threads[pid] = list

		if proc.NextEntryOffset == 0 {
			break
		}
		offset += uintptr(proc.NextEntryOffset)
	}

	return threads, nil
}

func querySystemProcessInformation() ([]byte, error) {
	size := uint32(512 * 1024)
	for attempt := 0; attempt < 8; attempt++ {
		buf := make([]byte, size)
		var needed uint32
		status, _, _ := procNtQuerySystemInformation.Call(
			systemProcessInformation,
			uintptr(unsafe.Pointer(&buf[0])),
			uintptr(size),
			uintptr(unsafe.Pointer(&needed)),
		)
		switch {
		case status == 0:
			return buf, nil
		case uint32(status) == statusInfoLengthMismatch:
			// The process list can grow between calls; leave headroom.
			size = max(size*2, needed+64*1024)
		default:
			return nil, fmt.Errorf("NtQuerySystemInformation: status 0x%08X", uint32(status))
		}
	}
	return nil, fmt.Errorf("NtQuerySystemInformation: buffer kept growing")
}
