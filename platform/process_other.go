//go:build !windows && !linux

package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Snapshot returns every process reported by ps with its parent process id.
func Snapshot() ([]ProcessEntry, error) {
	out, err := exec.Command("ps", "-A", "-o", "pid=,ppid=,comm=").Output()
	if err != nil {
		return nil, fmt.Errorf("ps: %w", err)
	}

	var entries []ProcessEntry
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		pid, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		ppid, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		entries = append(entries, ProcessEntry{
			PID:       pid,
			ParentPID: ppid,
			Name:      strings.Join(fields[2:], " "),
		})
	}
	return entries, scanner.Err()
}

// ThreadStates is not available without platform-specific thread APIs.
func ThreadStates() (map[int][]ThreadEntry, error) {
	return nil, ErrNotSupported
}
