package token

// Type is the type of a token.
type Type string

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Line    int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unclassified character (strict lexing only)
	EOF     Type = "EOF"     // End of input

	// Words and literals
	KEYWORD Type = "KEYWORD" // class, func, int
	IDENT   Type = "IDENT"   // Point, x, _tmp
	NUMBER  Type = "NUMBER"  // 42, 3.14
	STRING  Type = "STRING"  // "hello"

	// Two-character operators
	EQ     Type = "=="
	NOT_EQ Type = "!="
	LT_EQ  Type = "<="
	GT_EQ  Type = ">="
	AND    Type = "&&"
	OR     Type = "||"
	INC    Type = "++"
	DEC    Type = "--"

	// Single-character operators
	PLUS     Type = "+"
	MINUS    Type = "-"
	ASTERISK Type = "*"
	SLASH    Type = "/"
	ASSIGN   Type = "="
	LT       Type = "<"
	GT       Type = ">"
	BANG     Type = "!"

	// Delimiters
	LPAREN    Type = "("
	RPAREN    Type = ")"
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	LBRACK    Type = "["
	RBRACK    Type = "]"
	SEMICOLON Type = ";"
	COMMA     Type = ","
	DOT       Type = "."
	COLON     Type = ":"
)

var keywords = map[string]struct{}{
	"class": {}, "extends": {}, "func": {}, "return": {},
	"if": {}, "else": {}, "while": {}, "for": {},
	"new": {}, "this": {}, "public": {}, "private": {},
	"int": {}, "float": {}, "string": {}, "bool": {}, "void": {}, "array": {},
	"print": {}, "true": {}, "false": {},
}

var typeKeywords = map[string]struct{}{
	"int": {}, "float": {}, "string": {}, "bool": {}, "void": {}, "array": {},
}

// TwoCharOperators maps two-character operator spellings to their types.
// The lexer consults it before single-character operators.
var TwoCharOperators = map[string]Type{
	"==": EQ,
	"!=": NOT_EQ,
	"<=": LT_EQ,
	">=": GT_EQ,
	"&&": AND,
	"||": OR,
	"++": INC,
	"--": DEC,
}

// SingleCharOperators maps punctuation and one-character operators to their types.
var SingleCharOperators = map[rune]Type{
	'+': PLUS,
	'-': MINUS,
	'*': ASTERISK,
	'/': SLASH,
	'=': ASSIGN,
	'<': LT,
	'>': GT,
	'!': BANG,
	'(': LPAREN,
	')': RPAREN,
	'{': LBRACE,
	'}': RBRACE,
	'[': LBRACK,
	']': RBRACK,
	';': SEMICOLON,
	',': COMMA,
	'.': DOT,
	':': COLON,
}

// LookupIdent checks the reserved word table for an identifier.
// It returns KEYWORD for reserved words and IDENT otherwise.
func LookupIdent(ident string) Type {
	if _, ok := keywords[ident]; ok {
		return KEYWORD
	}
	return IDENT
}

// IsTypeKeyword reports whether word is a reserved primitive type name.
func IsTypeKeyword(word string) bool {
	_, ok := typeKeywords[word]
	return ok
}

// Is reports whether the token has type t and, when literal is non-empty,
// the given literal text.
func (t Token) Is(typ Type, literal string) bool {
	if t.Type != typ {
		return false
	}
	return literal == "" || t.Literal == literal
}

// IsKeyword reports whether the token is the reserved word kw.
func (t Token) IsKeyword(kw string) bool {
	return t.Is(KEYWORD, kw)
}
