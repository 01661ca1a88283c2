package lakbay

import (
	"fmt"

	"github.com/KimNorgaard/go-lakbay/internal/generator"
	"github.com/KimNorgaard/go-lakbay/internal/lexer"
	"github.com/KimNorgaard/go-lakbay/internal/parser"
)

// Option configures a translation.
type Option func(*options) error

type options struct {
	lexerOpts     []lexer.Option
	parserOpts    []parser.Option
	generatorOpts []generator.Option
}

// Indent returns an Option that sets the number of spaces used per
// indentation level in the generated C++. The default is four.
//
// The width n must not be negative.
func Indent(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("lakbay: indent must be a non-negative integer")
		}
		o.generatorOpts = append(o.generatorOpts, generator.IndentWidth(n))
		return nil
	}
}

// MaxDepth returns an Option that sets how deeply blocks and expressions may
// nest, 1000 levels by default. Deeper input fails with an *errors.DepthError
// instead of overflowing the stack.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("lakbay: max depth must be a positive integer")
		}
		o.parserOpts = append(o.parserOpts, parser.MaxDepth(n))
		return nil
	}
}

// StrictLexing returns an Option that makes characters outside the language
// an error instead of silently skipping them.
func StrictLexing() Option {
	return func(o *options) error {
		o.lexerOpts = append(o.lexerOpts, lexer.Strict())
		return nil
	}
}

func applyOptions(opts []Option) (*options, error) {
	o := &options{}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}
