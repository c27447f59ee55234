package installer

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// maxLineSize bounds a single captured line. Longer lines are split into
// chunks of this size.
const maxLineSize = 4 * 1024 * 1024

// scanAnyLines is a bufio.SplitFunc that ends lines on "\r\n", "\n" or a
// lone "\r", without returning the terminator.
func scanAnyLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF || len(data) >= maxLineSize {
			return i + 1, data[:i], nil
		}
		// A trailing '\r' may be the first half of "\r\n".
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}
	if len(data) >= maxLineSize {
		return maxLineSize, data[:maxLineSize], nil
	}
	return 0, nil, nil
}

// drainLines reads r to EOF and returns its lines. On a read error the rest
// of r is still consumed so the child never blocks on a full pipe.
func drainLines(r io.Reader) []string {
	lines := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	scanner.Split(scanAnyLines)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanner.Err() != nil {
		io.Copy(io.Discard, r)
	}
	return lines
}

// SplitLines splits s on any recognized line ending.
func SplitLines(s string) []string {
	return drainLines(strings.NewReader(s))
}

// TrimBlankLines drops leading and trailing lines that are empty or contain
// only whitespace. Blank lines between content lines are kept.
func TrimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	trimmed := make([]string, end-start)
	copy(trimmed, lines[start:end])
	return trimmed
}
