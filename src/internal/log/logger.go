package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

const fileTimeFormat = "2006-01-02 15:04:05"

var (
	verbose     = false
	disableLogs = false
	forceStdErr = false
	logPrefixes = map[int]string{
		levelDebug: "\033[37m[DBG]\033[0m", // White
		levelInfo:  "\033[36m[INF]\033[0m", // Cyan
		levelWarn:  "\033[33m[WRN]\033[0m", // Yellow
		levelError: "\033[31m[ERR]\033[0m", // Red
	}
	fileLevelNames = map[int]string{
		levelDebug: "DEBUG",
		levelInfo:  "INFO",
		levelWarn:  "WARNING",
		levelError: "ERROR",
	}

	fileMu   sync.Mutex
	fileSink io.WriteCloser
	nowFunc  = time.Now
)

// SetVerbose sets the logging verbosity. If true, all log levels are displayed.
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verbose
}

// DisableLogs disables all logging.
func DisableLogs() {
	disableLogs = true
}

// SetForceStdErr sends every console message to stderr.
// Useful when stdout carries command output (e.g. a rendered script).
func SetForceStdErr(v bool) {
	forceStdErr = v
}

// SetLogFile mirrors all log messages into path, rotating it by size.
// The parent directory is created when missing.
func SetLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	fileMu.Lock()
	defer fileMu.Unlock()

	if fileSink != nil {
		_ = fileSink.Close()
	}
	fileSink = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    16, // MB
		MaxBackups: 5,
		MaxAge:     90, // days
		Compress:   true,
	}
	return nil
}

// CloseLogFile detaches and closes the file sink, if any.
func CloseLogFile() {
	fileMu.Lock()
	defer fileMu.Unlock()

	if fileSink != nil {
		_ = fileSink.Close()
		fileSink = nil
	}
}

// Debugf logs a debug message if verbose is true.
func Debugf(format string, args ...interface{}) {
	if verbose {
		logMessage(levelDebug, format, args...)
	}
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logMessage(levelInfo, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logMessage(levelWarn, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
}

// Fatalf logs an error message and exits the program.
func Fatalf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
	CloseLogFile()
	os.Exit(1)
}

// logMessage formats and writes a log message with the specified log level.
func logMessage(level int, format string, args ...interface{}) {
	if disableLogs {
		return
	}
	message := fmt.Sprintf(format, args...)
	output := logPrefixes[level] + " " + message + "\n"

	// Write the output to the appropriate stream
	if forceStdErr || level == levelError {
		_, _ = os.Stderr.WriteString(output)
	} else {
		_, _ = os.Stdout.WriteString(output)
	}

	writeFile(level, message)
}

func writeFile(level int, message string) {
	fileMu.Lock()
	defer fileMu.Unlock()

	if fileSink == nil {
		return
	}
	line := fmt.Sprintf("[%s][%s] %s\n", fileLevelNames[level], nowFunc().Format(fileTimeFormat), message)
	_, _ = io.WriteString(fileSink, line)
}
