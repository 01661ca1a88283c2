package parser

import (
	"fmt"
	"slices"

	"github.com/KimNorgaard/go-lakbay/errors"
	"github.com/KimNorgaard/go-lakbay/internal/ast"
	"github.com/KimNorgaard/go-lakbay/internal/token"
)

// DefaultMaxDepth is the nesting limit used when MaxDepth is not given.
const DefaultMaxDepth = 1000

// Parser holds the state of the parser. The cursor only moves forward.
type Parser struct {
	tokens   []token.Token
	pos      int
	eof      token.Token
	depth    int
	maxDepth int
}

// Option configures a Parser.
type Option func(*Parser)

// MaxDepth sets how deeply blocks and expressions may nest. Input beyond the
// limit is rejected with an *errors.DepthError instead of exhausting the
// stack. Values below one are ignored.
func MaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// New creates a new parser over a token sequence. The sequence does not need
// to end with an EOF token; one is synthesized past the last token.
func New(tokens []token.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		eof:      token.Token{Type: token.EOF, Line: 1},
		maxDepth: DefaultMaxDepth,
	}
	if n := len(tokens); n > 0 {
		p.eof.Line = tokens[n-1].Line
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseProgram parses a sequence of class declarations. The first structural
// mismatch aborts parsing and is returned as an *errors.SyntaxError.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Classes: []*ast.ClassDecl{}}
	for !p.curTokenIs(token.EOF) {
		if !p.cur().IsKeyword("class") {
			return nil, p.errorf("'class'")
		}
		class, err := p.parseClass()
		if err != nil {
			return nil, err
		}
		program.Classes = append(program.Classes, class)
	}
	return program, nil
}

// The contract for all parse functions is that they are entered with cur()
// being the first token of the construct, and they must return with cur()
// pointing to the token *after* the construct.

func (p *Parser) parseClass() (*ast.ClassDecl, error) {
	class := &ast.ClassDecl{Token: p.cur(), Members: []ast.Member{}}
	p.nextToken() // consume 'class'

	name, err := p.expect(token.IDENT, "")
	if err != nil {
		return nil, err
	}
	class.Name = name.Literal

	if p.cur().IsKeyword("extends") {
		p.nextToken()
		parent, err := p.expect(token.IDENT, "")
		if err != nil {
			return nil, err
		}
		class.Parent = parent.Literal
	}

	if _, err := p.expect(token.LBRACE, ""); err != nil {
		return nil, err
	}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		member, err := p.parseMember(class.Name)
		if err != nil {
			return nil, err
		}
		class.Members = append(class.Members, member)
	}
	if _, err := p.expect(token.RBRACE, ""); err != nil {
		return nil, err
	}
	return class, nil
}

func (p *Parser) parseMember(className string) (ast.Member, error) {
	tok := p.cur()
	switch {
	case tok.IsKeyword("public"), tok.IsKeyword("private"):
		p.nextToken()
		if _, err := p.expect(token.COLON, ""); err != nil {
			return nil, err
		}
		return &ast.VisibilityLabel{Token: tok, Visibility: tok.Literal}, nil
	case tok.IsKeyword("func"):
		return p.parseMethod(className)
	case p.curIsType():
		typ, name, value, err := p.parseTypedDeclaration()
		if err != nil {
			return nil, err
		}
		return &ast.Property{Token: tok, Type: typ, Name: name, Value: value}, nil
	}
	return nil, p.errorf("class member")
}

func (p *Parser) parseMethod(className string) (*ast.Method, error) {
	method := &ast.Method{Token: p.cur(), Params: []*ast.Param{}}
	p.nextToken() // consume 'func'

	name, err := p.expect(token.IDENT, "")
	if err != nil {
		return nil, err
	}
	method.Name = name.Literal
	method.IsConstructor = method.Name == className

	if _, err := p.expect(token.LPAREN, ""); err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.RPAREN) {
		for {
			param, err := p.parseParam()
			if err != nil {
				return nil, err
			}
			method.Params = append(method.Params, param)
			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if _, err := p.expect(token.RPAREN, ""); err != nil {
		return nil, err
	}

	if p.curTokenIs(token.COLON) {
		p.nextToken()
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		// Constructors never carry a return type.
		if !method.IsConstructor {
			method.ReturnType = ret
		}
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	method.Body = body
	return method, nil
}

func (p *Parser) parseParam() (*ast.Param, error) {
	param := &ast.Param{Token: p.cur()}
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT, "")
	if err != nil {
		return nil, err
	}
	param.Type = typ
	param.Name = name.Literal
	return param, nil
}

// parseType accepts a primitive type keyword or a class name.
func (p *Parser) parseType() (string, error) {
	if !p.curIsType() {
		return "", p.errorf("type")
	}
	typ := p.cur().Literal
	p.nextToken()
	return typ, nil
}

// parseTypedDeclaration parses `TYPE IDENT [= expression] ;`, the shape shared
// by properties and local variables.
func (p *Parser) parseTypedDeclaration() (typ, name string, value ast.Expression, err error) {
	if typ, err = p.parseType(); err != nil {
		return "", "", nil, err
	}
	ident, err := p.expect(token.IDENT, "")
	if err != nil {
		return "", "", nil, err
	}
	if p.curTokenIs(token.ASSIGN) {
		p.nextToken()
		if value, err = p.parseExpression(); err != nil {
			return "", "", nil, err
		}
	}
	if _, err := p.expect(token.SEMICOLON, ""); err != nil {
		return "", "", nil, err
	}
	return typ, ident.Literal, value, nil
}

func (p *Parser) parseBlock() (*ast.BlockStatement, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave(1)

	block := &ast.BlockStatement{Token: p.cur(), Statements: []ast.Statement{}}
	if _, err := p.expect(token.LBRACE, ""); err != nil {
		return nil, err
	}
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	if _, err := p.expect(token.RBRACE, ""); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.cur()
	switch {
	case tok.IsKeyword("return"):
		return p.parseReturnStatement()
	case tok.IsKeyword("if"):
		return p.parseIfStatement()
	case tok.IsKeyword("while"):
		return p.parseWhileStatement()
	case tok.IsKeyword("for"):
		return p.parseForStatement()
	case tok.IsKeyword("print"):
		return p.parsePrintStatement()
	case tok.Type == token.KEYWORD && token.IsTypeKeyword(tok.Literal),
		tok.Type == token.IDENT && p.peekTokenIs(token.IDENT):
		typ, name, value, err := p.parseTypedDeclaration()
		if err != nil {
			return nil, err
		}
		return &ast.VarDeclaration{Token: tok, Type: typ, Name: name, Value: value}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON, ""); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	stmt := &ast.ReturnStatement{Token: p.cur()}
	p.nextToken() // consume 'return'
	if !p.curTokenIs(token.SEMICOLON) {
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.expect(token.SEMICOLON, ""); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	stmt := &ast.IfStatement{Token: p.cur()}
	p.nextToken() // consume 'if'

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond

	if stmt.Consequence, err = p.parseBlock(); err != nil {
		return nil, err
	}
	if p.cur().IsKeyword("else") {
		p.nextToken()
		if stmt.Alternative, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	stmt := &ast.WhileStatement{Token: p.cur()}
	p.nextToken() // consume 'while'

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	stmt.Condition = cond

	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseForStatement() (*ast.ForStatement, error) {
	stmt := &ast.ForStatement{Token: p.cur()}
	p.nextToken() // consume 'for'

	if _, err := p.expect(token.LPAREN, ""); err != nil {
		return nil, err
	}
	clauses := make([]ast.Expression, 3)
	for i, end := range []token.Type{token.SEMICOLON, token.SEMICOLON, token.RPAREN} {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(end, ""); err != nil {
			return nil, err
		}
		clauses[i] = expr
	}
	stmt.Init, stmt.Condition, stmt.Update = clauses[0], clauses[1], clauses[2]

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parsePrintStatement() (*ast.PrintStatement, error) {
	stmt := &ast.PrintStatement{Token: p.cur()}
	p.nextToken() // consume 'print'

	if _, err := p.expect(token.LPAREN, ""); err != nil {
		return nil, err
	}
	args, err := p.parseArguments()
	if err != nil {
		return nil, err
	}
	stmt.Arguments = args
	if _, err := p.expect(token.SEMICOLON, ""); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseCondition parses `( expression )`.
func (p *Parser) parseCondition() (ast.Expression, error) {
	if _, err := p.expect(token.LPAREN, ""); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, ""); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseArguments parses a comma separated expression list up to and
// including the closing ')'. The opening '(' must already be consumed.
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	args := []ast.Expression{}
	if !p.curTokenIs(token.RPAREN) {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.curTokenIs(token.COMMA) {
				break
			}
			p.nextToken()
		}
	}
	if _, err := p.expect(token.RPAREN, ""); err != nil {
		return nil, err
	}
	return args, nil
}

// enter records one more level of nesting. It fails once the level exceeds
// the limit; the depth is left unchanged in that case.
func (p *Parser) enter() error {
	if p.depth >= p.maxDepth {
		return &errors.DepthError{Line: p.cur().Line, Limit: p.maxDepth}
	}
	p.depth++
	return nil
}

func (p *Parser) leave(levels int) {
	p.depth -= levels
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.eof
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.eof
}

func (p *Parser) nextToken() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *Parser) curTokenIs(t token.Type) bool {
	return p.cur().Type == t
}

func (p *Parser) peekTokenIs(t token.Type) bool {
	return p.peek().Type == t
}

func (p *Parser) curTokenIn(types ...token.Type) bool {
	return slices.Contains(types, p.cur().Type)
}

func (p *Parser) curIsType() bool {
	tok := p.cur()
	return tok.Type == token.IDENT || (tok.Type == token.KEYWORD && token.IsTypeKeyword(tok.Literal))
}

// expect consumes the current token if it has type t and, when literal is
// non-empty, that literal. Otherwise it returns a syntax error.
func (p *Parser) expect(t token.Type, literal string) (token.Token, error) {
	tok := p.cur()
	if !tok.Is(t, literal) {
		if literal != "" {
			return tok, p.errorf("'%s'", literal)
		}
		return tok, p.errorf("%s", describeType(t))
	}
	p.nextToken()
	return tok, nil
}

func (p *Parser) errorf(format string, args ...any) error {
	tok := p.cur()
	return &errors.SyntaxError{
		Line:     tok.Line,
		Expected: fmt.Sprintf(format, args...),
		Found:    describeToken(tok),
	}
}

func describeType(t token.Type) string {
	switch t {
	case token.IDENT:
		return "identifier"
	case token.KEYWORD:
		return "keyword"
	case token.NUMBER:
		return "number"
	case token.STRING:
		return "string"
	case token.EOF:
		return "EOF"
	}
	return "'" + string(t) + "'"
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "EOF"
	case token.STRING:
		return fmt.Sprintf("string %q", tok.Literal)
	case token.IDENT, token.KEYWORD, token.NUMBER:
		return fmt.Sprintf("%s '%s'", describeType(tok.Type), tok.Literal)
	}
	return "'" + tok.Literal + "'"
}
