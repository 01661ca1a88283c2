package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/KimNorgaard/go-lakbay"
	"github.com/KimNorgaard/go-lakbay/internal/log"
	"github.com/KimNorgaard/go-lakbay/internal/process"
	"github.com/KimNorgaard/go-lakbay/internal/toolchain"
)

func (a *app) runCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	output := fs.String("o", "output.cpp", "path of the generated C++ file")
	binary := fs.String("bin", "program", "path of the compiled executable")
	keep := fs.Bool("keep", false, "keep generated files without asking")
	tf := addTranslationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	opts := a.apply(tf)
	p := presenter{a.out}

	p.banner()
	path := defaultSource
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	} else {
		p.info("No file specified. Using default: %s", path)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file %q not found", path)
		}
		return fmt.Errorf("read source: %w", err)
	}
	p.plain(fmt.Sprintf("Reading: %s", path))
	p.success("File loaded (%d characters)", len([]rune(string(src))))
	p.plain("")

	p.section("LAKBAY SOURCE CODE:")
	p.listing(string(src))
	p.rule()
	p.plain("")

	p.step(1, 3, "Transpiling to C++...")
	cpp, err := lakbay.Transpile(src, opts...)
	if err != nil {
		p.failure("Transpilation failed!")
		return err
	}
	p.success("Transpilation successful!")
	if err := os.WriteFile(*output, cpp, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *output, err)
	}
	p.success("Saved to: %s", *output)
	p.plain("")

	p.step(2, 3, "Compiling with C++ compiler...")
	compiler, err := toolchain.Locate(ctx, toolchain.DefaultConfig())
	if err != nil {
		if errors.Is(err, toolchain.ErrNoCompiler) {
			p.failure("No C++ compiler found!")
			p.info("Install g++ or clang++, or point %s at a compiler.", toolchain.EnvCompiler)
			p.info("Your C++ code is saved in: %s", *output)
			p.info("Compile it manually with: g++ %s -o %s", *output, *binary)
		}
		return err
	}
	p.success("Using compiler: %s", compiler.Path)
	log.Debugf("compiler version: %s", compiler.Version)

	res, err := compiler.Compile(ctx, *output, *binary)
	if err != nil {
		var compileErr *toolchain.CompileError
		if errors.As(err, &compileErr) {
			p.failure("Compilation failed!")
			p.plain(strings.TrimRight(res.Stderr, "\n"))
		}
		return err
	}
	p.success("Compilation successful!")
	p.success("Executable: %s", *binary)
	p.plain("")

	p.step(3, 3, "Running program...")
	p.section("OUTPUT:")
	run, err := process.Run(ctx, process.DefaultConfig(), *binary)
	if err != nil {
		if errors.Is(err, process.ErrTimeout) {
			p.failure("Program timed out")
		}
		return err
	}
	if run.Stdout != "" {
		p.plain(strings.TrimRight(run.Stdout, "\n"))
	} else {
		p.info("(No output)")
	}
	if run.Stderr != "" {
		p.plain("")
		p.plain("STDERR:")
		p.plain(strings.TrimRight(run.Stderr, "\n"))
	}
	p.rule()
	p.plain(fmt.Sprintf("Program exited with code: %d", run.ExitCode))
	p.plain("")
	p.success("Done!")

	return a.cleanup(p, *keep, *output, *binary)
}

// cleanup offers to delete the generated files. Without a terminal, or with
// keep set, the files stay.
func (a *app) cleanup(p presenter, keep bool, files ...string) error {
	p.plain("")
	p.plain("Temporary files created:")
	for _, f := range files {
		p.info("- %s", f)
	}
	if keep || !a.interactive {
		p.info("Files kept for inspection")
		return nil
	}

	remove, err := confirm(a.in, a.out, "Delete temporary files?")
	if err != nil {
		return fmt.Errorf("cleanup prompt: %w", err)
	}
	if !remove {
		p.info("Files kept for inspection")
		return nil
	}

	var deleted []string
	for _, f := range files {
		err := os.Remove(f)
		switch {
		case err == nil:
			deleted = append(deleted, f)
		case !errors.Is(err, os.ErrNotExist):
			p.warn("Could not delete %s: %v", f, err)
		}
	}
	if len(deleted) == 0 {
		p.info("No files to delete")
		return nil
	}
	p.success("Deleted: %s", strings.Join(deleted, ", "))
	return nil
}
