// Package toolchain finds a C++ compiler on the host and drives it.
package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KimNorgaard/go-lakbay/internal/log"
)

// EnvCompiler names the environment variable that selects a compiler ahead
// of the built-in candidates.
const EnvCompiler = "LAKBAY_CXX"

var (
	// ErrNoCompiler is returned by Locate when no candidate answers --version.
	ErrNoCompiler = errors.New("toolchain: no C++ compiler found")
	// ErrTimeout is returned by Compile when the compiler outlives its timeout.
	ErrTimeout = errors.New("toolchain: compilation timed out")
)

// Config controls compiler discovery and invocation. Zero fields take the
// values of DefaultConfig.
type Config struct {
	// Candidates lists compilers in order of preference.
	Candidates []string
	// Standard is the language standard flag passed on every compile.
	Standard       string
	ProbeTimeout   time.Duration
	CompileTimeout time.Duration
	// Getenv looks up EnvCompiler. It defaults to os.Getenv.
	Getenv func(string) string
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Candidates:     []string{"clang++", "g++"},
		Standard:       "-std=c++11",
		ProbeTimeout:   5 * time.Second,
		CompileTimeout: 30 * time.Second,
		Getenv:         os.Getenv,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if len(c.Candidates) == 0 {
		c.Candidates = d.Candidates
	}
	if c.Standard == "" {
		c.Standard = d.Standard
	}
	if c.ProbeTimeout <= 0 {
		c.ProbeTimeout = d.ProbeTimeout
	}
	if c.CompileTimeout <= 0 {
		c.CompileTimeout = d.CompileTimeout
	}
	if c.Getenv == nil {
		c.Getenv = d.Getenv
	}
	return c
}

// candidates returns the compilers to probe, the environment override first,
// without duplicates.
func (c Config) candidates() []string {
	var out []string
	if env := strings.TrimSpace(c.Getenv(EnvCompiler)); env != "" {
		out = append(out, env)
	}
	for _, name := range c.Candidates {
		if name != "" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}

// Compiler is a located C++ compiler.
type Compiler struct {
	// Path is the command used to invoke the compiler.
	Path string
	// Version is the first line the compiler printed for --version.
	Version string

	cfg Config
}

// Result holds the outcome of a compiler run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// CompileError reports a compiler run that exited with a non-zero status.
type CompileError struct {
	Compiler string
	Result   *Result
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("toolchain: %s exited with code %d", e.Compiler, e.Result.ExitCode)
}

// Locate probes every candidate concurrently and returns the most preferred
// one that answered --version successfully.
func Locate(ctx context.Context, cfg Config) (*Compiler, error) {
	cfg = cfg.withDefaults()
	names := cfg.candidates()
	versions := make([]string, len(names))
	found := make([]bool, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			version, err := probe(gctx, name, cfg.ProbeTimeout)
			if err != nil {
				log.Toolchainf("probe %s: %v", name, err)
				return nil
			}
			log.Toolchainf("probe %s: %s", name, version)
			versions[i], found[i] = version, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, name := range names {
		if found[i] {
			return &Compiler{Path: name, Version: versions[i], cfg: cfg}, nil
		}
	}
	return nil, ErrNoCompiler
}

func probe(ctx context.Context, name string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, "--version").Output()
	if err != nil {
		return "", err
	}
	version, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(version), nil
}

// Compile translates the C++ file source into the executable output.
// A non-zero compiler exit is returned as a *CompileError carrying the
// compiler diagnostics.
func (c *Compiler) Compile(ctx context.Context, source, output string) (*Result, error) {
	cfg := c.cfg.withDefaults()
	ctx, cancel := context.WithTimeout(ctx, cfg.CompileTimeout)
	defer cancel()

	args := []string{source, "-o", output, cfg.Standard}
	log.Toolchainf("running %s %s", c.Path, strings.Join(args, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	start := time.Now()
	err := cmd.Run()
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
			return res, fmt.Errorf("%w after %s", ErrTimeout, cfg.CompileTimeout)
		}
		return res, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, &CompileError{Compiler: c.Path, Result: res}
	}
	if err != nil {
		return res, fmt.Errorf("toolchain: running %s: %w", c.Path, err)
	}
	log.Toolchainf("compiled %s in %s", output, res.Duration)
	return res, nil
}
