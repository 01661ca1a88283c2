// Package process runs compiled programs and captures their output.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/KimNorgaard/go-lakbay/internal/log"
)

// ErrTimeout is returned by Run when the program outlives its timeout.
var ErrTimeout = errors.New("process: program timed out")

// Config controls how a program is run. A zero Timeout means ten seconds.
type Config struct {
	Timeout time.Duration
	// Dir is the working directory. Empty means the current directory.
	Dir   string
	Stdin io.Reader
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{Timeout: 10 * time.Second}
}

// Result holds the outcome of a program run. A non-zero ExitCode is not an
// error.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Run executes the program at path with args. The file is made executable
// first if it is not already.
func Run(ctx context.Context, cfg Config, path string, args ...string) (*Result, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("process: resolving %s: %w", path, err)
	}
	if err := ensureExecutable(abs); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, abs, args...)
	cmd.Dir = cfg.Dir
	cmd.Stdin = cfg.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	log.Processf("running %s", abs)
	start := time.Now()
	err = cmd.Run()
	res := &Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return res, fmt.Errorf("%w after %s", ErrTimeout, cfg.Timeout)
		}
		return res, ctxErr
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return res, fmt.Errorf("process: running %s: %w", abs, err)
	}
	log.Processf("%s exited with code %d after %s", abs, res.ExitCode, res.Duration)
	return res, nil
}

func ensureExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("process: executable not found: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("process: %s is a directory", path)
	}
	if info.Mode().Perm()&0o111 != 0 {
		return nil
	}
	if err := os.Chmod(path, info.Mode().Perm()|0o755); err != nil {
		log.Processf("could not set execute permission on %s: %v", path, err)
	}
	return nil
}
