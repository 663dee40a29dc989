// Package logger prints the per-book status lines of a download run.
// Status lines always go to the configured writer; Debug lines only when
// verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

const (
	indent     = 12
	lineLength = 79
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stdout
)

// SetVerbose enables or disables debug logging.
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

// SetOutput sets the writer for all log lines. Defaults to os.Stdout.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Output returns the current writer.
func Output() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

// Status prints msg under an upper-cased category column. Continuation
// lines of a multi-line msg are indented to the message column.
func Status(category, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	msg = strings.ReplaceAll(msg, "\n", "\n"+strings.Repeat(" ", indent))
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "%-*s%s\n", indent, strings.ToUpper(category), msg)
}

// Divider prints a horizontal rule.
func Divider() {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintln(output, strings.Repeat("-", lineLength))
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "[DEBUG] "+format+"\n", args...)
	}
}

// Warn prints a warning line regardless of verbosity.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	fmt.Fprintf(output, "[WARN] "+format+"\n", args...)
}
