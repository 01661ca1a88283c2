package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/KimNorgaard/go-lakbay"
	"github.com/KimNorgaard/go-lakbay/internal/log"
)

const defaultSource = "test.lakbay"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		in:          os.Stdin,
		out:         os.Stdout,
		errOut:      os.Stderr,
		interactive: isTerminal(os.Stdin) && isTerminal(os.Stdout),
	}
	if err := a.runCLI(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

// app carries the streams a command talks to.
type app struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interactive bool
}

func (a *app) runCLI(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return a.usageError()
	}
	switch args[1] {
	case "run":
		return a.runCommand(ctx, args[2:])
	case "build":
		return a.buildCommand(ctx, args[2:])
	case "check":
		return a.checkCommand(args[2:])
	case "tokens":
		return a.tokensCommand(args[2:])
	case "help", "-h", "--help":
		a.printUsage()
		return nil
	default:
		return a.usageError()
	}
}

func (a *app) usageError() error {
	a.printUsage()
	return errors.New("invalid command")
}

func (a *app) printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(a.errOut, "Usage: %s <command> [flags] [files...]\n", prog)
	fmt.Fprintln(a.errOut, "Commands:")
	fmt.Fprintln(a.errOut, "  run [-o output.cpp] [-bin program] [-keep] [-debug] [file]")
	fmt.Fprintf(a.errOut, "    transpile, compile and run file (default %q)\n", defaultSource)
	fmt.Fprintln(a.errOut, "  build [-o dir] files...")
	fmt.Fprintln(a.errOut, "    transpile each file to <name>.cpp")
	fmt.Fprintln(a.errOut, "  check file")
	fmt.Fprintln(a.errOut, "    transpile file and report errors only")
	fmt.Fprintln(a.errOut, "  tokens file")
	fmt.Fprintln(a.errOut, "    print the token stream of file")
	fmt.Fprintf(a.errOut, "Environment:\n  LAKBAY_CXX\n    C++ compiler to try before clang++ and g++\n")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}

// translationFlags registers the options shared by every translating command.
type translationFlags struct {
	indent *int
	strict *bool
	debug  *bool
}

func addTranslationFlags(fs *flag.FlagSet) translationFlags {
	return translationFlags{
		indent: fs.Int("indent", 4, "spaces per indentation level in the generated C++"),
		strict: fs.Bool("strict", false, "reject characters outside the language"),
		debug:  fs.Bool("debug", false, "write debug logs to stderr"),
	}
}

func (a *app) apply(f translationFlags) []lakbay.Option {
	if *f.debug {
		log.SetOutput(a.errOut)
	}
	opts := []lakbay.Option{lakbay.Indent(*f.indent)}
	if *f.strict {
		opts = append(opts, lakbay.StrictLexing())
	}
	return opts
}

func (a *app) checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	tf := addTranslationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("lakbay check: exactly one source file required")
	}
	opts := a.apply(tf)

	path := fs.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	if _, err := lakbay.Transpile(src, opts...); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	presenter{a.out}.success("%s translates cleanly", path)
	return nil
}

func (a *app) tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	strict := fs.Bool("strict", false, "reject characters outside the language")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("lakbay tokens: exactly one source file required")
	}

	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	var opts []lakbay.Option
	if *strict {
		opts = append(opts, lakbay.StrictLexing())
	}
	tokens, err := lakbay.Tokenize(src, opts...)
	if err != nil {
		return err
	}
	for _, tok := range tokens {
		fmt.Fprintf(a.out, "%4d  %-8s %q\n", tok.Line, tok.Type, tok.Literal)
	}
	return nil
}

// outputName returns the C++ file name for a Lakbay source path, placed in
// dir when dir is not empty.
func outputName(dir, source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + ".cpp"
	if dir == "" {
		return filepath.Join(filepath.Dir(source), base)
	}
	return filepath.Join(dir, base)
}
