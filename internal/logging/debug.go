package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
)

// DebugEnabled returns true if debug mode is enabled via KB_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("KB_DEBUG") != ""
}

// SetOutput redirects debug and warning output. Passing nil restores stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		write("debug: " + fmt.Sprintf(format, args...))
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		write("debug: " + fmt.Sprintln(args...))
	}
}

// Warnf prints a formatted warning regardless of debug mode.
// Warnings flag data anomalies that are tolerated rather than rejected.
func Warnf(format string, args ...interface{}) {
	write("warning: " + fmt.Sprintf(format, args...))
}

func write(msg string) {
	if len(msg) == 0 || msg[len(msg)-1] != '\n' {
		msg += "\n"
	}
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprint(output, msg)
}
