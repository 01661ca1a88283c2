package errors

import "fmt"

// SyntaxError reports a structural mismatch found while parsing. It carries
// the line of the offending token, a description of what the grammar
// required at that point and what was actually found.
type SyntaxError struct {
	Line     int
	Expected string
	Found    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("lakbay: syntax error at line %d: expected %s, got %s", e.Line, e.Expected, e.Found)
}

// LexError reports a character that matches no lexical rule. It is only
// produced when strict lexing is enabled; by default such characters are
// dropped.
type LexError struct {
	Line int
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lakbay: illegal character %q at line %d", e.Char, e.Line)
}

// DepthError reports input nested deeper than the parser allows.
type DepthError struct {
	Line  int
	Limit int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("lakbay: nesting exceeds maximum depth of %d at line %d", e.Limit, e.Line)
}
