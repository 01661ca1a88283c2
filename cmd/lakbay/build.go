package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/KimNorgaard/go-lakbay"
	"github.com/KimNorgaard/go-lakbay/internal/log"
)

type translation struct {
	source string
	output string
	cpp    []byte
}

func (a *app) buildCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	outDir := fs.String("o", "", "directory for generated files (default: next to each source)")
	tf := addTranslationFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("lakbay build: at least one source file required")
	}
	opts := a.apply(tf)

	results, err := translateAll(ctx, fs.Args(), *outDir, opts)
	if err != nil {
		return err
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	p := presenter{a.out}
	for _, r := range results {
		if err := os.WriteFile(r.output, r.cpp, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", r.output, err)
		}
		p.success("%s -> %s", r.source, r.output)
	}
	return nil
}

// translateAll translates every source concurrently. Nothing is returned
// unless all of them translate.
func translateAll(ctx context.Context, sources []string, outDir string, opts []lakbay.Option) ([]translation, error) {
	results := make([]translation, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, source := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			cpp, err := lakbay.Transpile(src, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			if log.Enabled() {
				log.Debugf("translated %s: %d lines of C++", source, bytes.Count(cpp, []byte("\n"))+1)
			}
			results[i] = translation{source: source, output: outputName(outDir, source), cpp: cpp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
