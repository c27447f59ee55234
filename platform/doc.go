// Package platform provides the OS-specific pieces used to run and observe
// vendor installer processes.
//
// Windows is the primary target. Linux and other Unix systems get working
// process snapshots so the portable logic above this package can be exercised
// there; window inspection and shell-execute launches are Windows-only and
// report ErrNotSupported (or nothing) elsewhere.
//
// # Features
//
//   - Process snapshot: every process with its parent id, for tree walks
//   - Thread states: per-process thread ids and whether each is waiting
//   - Windows: main window and thread-owned windows with visibility, enabled
//     state and size
//   - Shell execute: launch through the shell with a waitable process handle
//   - Elevation: check whether the current process is elevated
//   - Paths and OS version: system directory, Windows directory, OS build
//   - Driver inventory: installed driver versions via WMI
//   - Instance lock: machine-wide lock serializing installer runs
//
// # Example Usage
//
//	insp := platform.NewInspector()
//	entries, err := insp.Processes()
//	if err != nil {
//	    return err
//	}
//	for _, e := range entries {
//	    fmt.Println(e.PID, e.ParentPID, e.Name)
//	}
//
//	drivers, err := platform.QueryDriverVersions("Intel")
//	if errors.Is(err, platform.ErrNotSupported) {
//	    // not on Windows
//	}
package platform
