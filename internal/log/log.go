// Package log provides the debug log shared by the toolchain, process runner
// and command line.
package log

import (
	"fmt"
	"io"
	"sync"
)

var (
	out io.Writer
	mu  sync.Mutex
)

// SetOutput sets the log destination. Pass nil to disable logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Enabled reports whether logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return out != nil
}

func write(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		fmt.Fprintf(out, prefix+format+"\n", args...)
	}
}

// Debugf writes an unprefixed debug message.
func Debugf(format string, args ...any) {
	write("", format, args...)
}

// Toolchainf writes a message about compiler discovery or invocation.
func Toolchainf(format string, args ...any) {
	write("[toolchain] ", format, args...)
}

// Processf writes a message about running a compiled program.
func Processf(format string, args ...any) {
	write("[process] ", format, args...)
}
