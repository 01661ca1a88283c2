package lakbay

import (
	"github.com/KimNorgaard/go-lakbay/internal/generator"
	"github.com/KimNorgaard/go-lakbay/internal/lexer"
	"github.com/KimNorgaard/go-lakbay/internal/parser"
	"github.com/KimNorgaard/go-lakbay/internal/token"
)

// Token is a single lexical unit of Lakbay source.
type Token = token.Token

// Transpile translates Lakbay source into C++ source.
//
// The returned source has no trailing newline. On error no partial output is
// returned.
func Transpile(src []byte, opts ...Option) ([]byte, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	tokens, err := lexer.Tokenize(src, o.lexerOpts...)
	if err != nil {
		return nil, err
	}
	program, err := parser.New(tokens, o.parserOpts...).ParseProgram()
	if err != nil {
		return nil, err
	}
	out, err := generator.New(o.generatorOpts...).Generate(program)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// TranspileString is like Transpile but takes and returns strings.
func TranspileString(src string, opts ...Option) (string, error) {
	out, err := Transpile([]byte(src), opts...)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Tokenize returns the token stream of src, terminated by an EOF token.
// Only StrictLexing affects tokenization; other options are validated and
// otherwise ignored.
func Tokenize(src []byte, opts ...Option) ([]Token, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return lexer.Tokenize(src, o.lexerOpts...)
}
