//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Snapshot returns every process visible in /proc with its parent process id.
func Snapshot() ([]ProcessEntry, error) {
	dirs, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	var entries []ProcessEntry
	for _, dir := range dirs {
		pid, err := strconv.Atoi(dir.Name())
		if err != nil {
			continue
		}

		data, err := os.ReadFile(filepath.Join("/proc", dir.Name(), "stat"))
		if err != nil {
			continue // process exited
		}

		st, ok := parseStat(string(data))
		if !ok {
			continue
		}
		entries = append(entries, ProcessEntry{PID: pid, ParentPID: st.ppid, Name: st.comm})
	}

	return entries, nil
}

// ThreadStates returns the threads of every process keyed by process id. A
// thread in interruptible (S) or uninterruptible (D) sleep counts as waiting.
func ThreadStates() (map[int][]ThreadEntry, error) {
	dirs, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	threads := make(map[int][]ThreadEntry)
	for _, dir := range dirs {
		pid, err := strconv.Atoi(dir.Name())
		if err != nil {
			continue
		}

		taskDir := filepath.Join("/proc", dir.Name(), "task")
		tasks, err := os.ReadDir(taskDir)
		if err != nil {
			continue
		}

		list := make([]ThreadEntry, 0, len(tasks))
		for _, task := range tasks {
			tid, err := strconv.Atoi(task.Name())
			if err != nil {
				continue
			}
			data, err := os.ReadFile(filepath.Join(taskDir, task.Name(), "stat"))
			if err != nil {
				continue
			}
			st, ok := parseStat(string(data))
			if !ok {
				continue
			}
			list = append(list, ThreadEntry{TID: tid, Waiting: st.state == 'S' || st.state == 'D'})
		}
		threads[pid] = list
	}

	return threads, nil
}

type procStat struct {
	comm  string
	state byte
	ppid  int
}

// parseStat parses the leading fields of /proc/<pid>/stat. The comm field is
// wrapped in parentheses and may itself contain spaces or parentheses, so the
// last ')' marks its end.
func parseStat(line string) (procStat, bool) {
	open := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if open < 0 || end < open {
		return procStat{}, false
	}

	fields := strings.Fields(line[end+1:])
	if len(fields) < 2 || len(fields[0]) != 1 {
		return procStat{}, false
	}

	ppid, err := strconv.Atoi(fields[1])
	if err != nil {
		return procStat{}, false
	}

	return procStat{comm: line[open+1 : end], state: fields[0][0], ppid: ppid}, true
}
