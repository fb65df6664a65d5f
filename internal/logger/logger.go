// Package logger provides leveled logging for replybot.
// Debug, Info, Warn and Section output is printed to stderr only when
// verbose mode is enabled via the --verbose flag. Error output is always
// printed, since it reports failures an operator must see.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	printf(false, "[DEBUG] "+format+"\n", args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	printf(false, "\n=== %s ===\n", name)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	printf(false, "[INFO] "+format+"\n", args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	printf(false, "[WARN] "+format+"\n", args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	printf(true, "[ERROR] "+format+"\n", args...)
}

// printf holds the write lock so concurrent callers never interleave
// writes on a shared output.
func printf(always bool, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if always || verbose {
		fmt.Fprintf(output, format, args...)
	}
}
