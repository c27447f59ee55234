package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelStep
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelStep:  "STEP",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String returns the level label used in log lines.
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel parses a level name ("debug", "info", "warn", ...). Unknown
// names fall back to LevelInfo.
func ParseLevel(s string) Level {
	for l, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return l
		}
	}
	if strings.EqualFold(strings.TrimSpace(s), "warning") {
		return LevelWarn
	}
	return LevelInfo
}

// LogOptions configures a file-backed Logger.
type LogOptions struct {
	Dir        string    // directory for the log file; defaults to the temp dir
	MaxSizeMB  int       // rotate after this many megabytes (default 10)
	MaxBackups int       // rotated files to keep (default 3)
	MaxAgeDays int       // days to keep rotated files (default 28)
	Compress   bool      // gzip rotated files
	Level      Level     // minimum level written
	Console    io.Writer // optional second sink, e.g. os.Stderr
}

// Logger provides leveled logging with a rotating file and in-memory buffering.
// It is safe for concurrent use from multiple goroutines, and every method is
// a no-op on a nil *Logger so components can take an optional logger.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	path     string
	messages []string
	level    Level
}

// NewLogger creates a Logger writing to {Dir}/{prefix}.log, rotated by size.
//
// Example:
//
//	log, err := installer.NewLogger("pkgexec", installer.LogOptions{})
//	if err != nil {
//	    return err
//	}
//	defer log.Close()
//	log.Info("Starting installation")
func NewLogger(prefix string, opts LogOptions) (*Logger, error) {
	dir := opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	logPath := filepath.Join(dir, prefix+".log")

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    orDefault(opts.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.MaxBackups, 3),
		MaxAge:     orDefault(opts.MaxAgeDays, 28),
		Compress:   opts.Compress,
	}

	var out io.Writer = rotator
	if opts.Console != nil {
		out = io.MultiWriter(rotator, opts.Console)
	}

	l := &Logger{
		out:      out,
		closer:   rotator,
		path:     logPath,
		messages: make([]string, 0, 100),
		level:    opts.Level,
	}

	l.Info("=== %s Log ===", prefix)
	l.Info("Started: %s", time.Now().Format(time.RFC3339))
	l.Info("Log file: %s", logPath)

	return l, nil
}

// NewLoggerToWriter creates a Logger that writes to w. Pass nil to keep
// messages in memory only.
func NewLoggerToWriter(w io.Writer, level Level) *Logger {
	return &Logger{
		out:      w,
		messages: make([]string, 0, 100),
		level:    level,
	}
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Close flushes and closes the log file.
func (l *Logger) Close() {
	if l == nil || l.closer == nil {
		return
	}
	l.Info("=== Log ended: %s ===", time.Now().Format(time.RFC3339))
	l.closer.Close()
}

// Path returns the path to the log file, or "" for writer-backed loggers.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Content returns the full log content as a string.
func (l *Logger) Content() string {
	if l == nil {
		return ""
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.messages, "\n")
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Step logs a major milestone/step in the process.
func (l *Logger) Step(format string, args ...any) {
	l.log(LevelStep, format, args...)
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil || level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	line := fmt.Sprintf("[%s] %s: %s", timestamp, level, msg)

	l.messages = append(l.messages, line)

	if l.out != nil {
		fmt.Fprintln(l.out, line)
	}
}
