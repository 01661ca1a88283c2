package parser

import (
	"github.com/KimNorgaard/go-lakbay/internal/ast"
	"github.com/KimNorgaard/go-lakbay/internal/token"
)

// Binary operator levels, lowest precedence first. Every level is left
// associative. Each operator of a chain nests the tree one level deeper, so
// chains count against the depth limit like parentheses do.
var binaryLevels = [][]token.Type{
	{token.OR},
	{token.AND},
	{token.EQ, token.NOT_EQ},
	{token.LT, token.GT, token.LT_EQ, token.GT_EQ},
	{token.PLUS, token.MINUS},
	{token.ASTERISK, token.SLASH},
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave(1)
	return p.parseBinary(0)
}

func (p *Parser) parseBinary(level int) (ast.Expression, error) {
	if level == len(binaryLevels) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	nested := 0
	defer func() { p.leave(nested) }()
	for p.curTokenIn(binaryLevels[level]...) {
		if err := p.enter(); err != nil {
			return nil, err
		}
		nested++
		op := p.cur()
		p.nextToken()
		right, err := p.parseBinary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.InfixExpression{Token: op, Left: left, Operator: op.Literal, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.curTokenIn(token.MINUS, token.BANG) {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave(1)
		op := p.cur()
		p.nextToken()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.PrefixExpression{Token: op, Operator: op.Literal, Right: right}, nil
	}
	return p.parsePostfix()
}

// parsePostfix applies member access, calls, indexing and assignment left to
// right on a primary expression. Assignment lives here rather than at its own
// precedence level, so any postfix chain may be the target of '='.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	nested := 0
	defer func() { p.leave(nested) }()
	for {
		tok := p.cur()
		if tok.Type == token.DOT || tok.Type == token.LPAREN || tok.Type == token.LBRACK || tok.Type == token.ASSIGN {
			if err := p.enter(); err != nil {
				return nil, err
			}
			nested++
		}
		switch tok.Type {
		case token.DOT:
			p.nextToken()
			name, err := p.expect(token.IDENT, "")
			if err != nil {
				return nil, err
			}
			member := &ast.MemberExpression{Token: tok, Object: expr, Property: name.Literal}
			if p.curTokenIs(token.LPAREN) {
				p.nextToken()
				if member.Arguments, err = p.parseArguments(); err != nil {
					return nil, err
				}
				member.IsCall = true
			}
			expr = member
		case token.LPAREN:
			p.nextToken()
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpression{Token: tok, Function: expr, Arguments: args}
		case token.LBRACK:
			p.nextToken()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACK, ""); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpression{Token: tok, Left: expr, Index: index}
		case token.ASSIGN:
			p.nextToken()
			value, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			expr = &ast.AssignExpression{Token: tok, Target: expr, Value: value}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.cur()
	switch {
	case tok.Type == token.NUMBER:
		p.nextToken()
		return &ast.NumberLiteral{Token: tok, Value: tok.Literal}, nil
	case tok.Type == token.STRING:
		p.nextToken()
		return &ast.StringLiteral{Token: tok, Value: tok.Literal}, nil
	case tok.Type == token.IDENT:
		p.nextToken()
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
	case tok.IsKeyword("this"):
		p.nextToken()
		return &ast.ThisExpression{Token: tok}, nil
	case tok.IsKeyword("true"), tok.IsKeyword("false"):
		p.nextToken()
		return &ast.BooleanLiteral{Token: tok, Value: tok.Literal == "true"}, nil
	case tok.IsKeyword("new"):
		return p.parseNewExpression()
	case tok.Type == token.LPAREN:
		p.nextToken()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, ""); err != nil {
			return nil, err
		}
		return &ast.GroupedExpression{Token: tok, Inner: inner}, nil
	}
	return nil, p.errorf("expression")
}

func (p *Parser) parseNewExpression() (*ast.NewExpression, error) {
	expr := &ast.NewExpression{Token: p.cur()}
	p.nextToken() // consume 'new'

	class, err := p.expect(token.IDENT, "")
	if err != nil {
		return nil, err
	}
	expr.Class = class.Literal

	if _, err := p.expect(token.LPAREN, ""); err != nil {
		return nil, err
	}
	if expr.Arguments, err = p.parseArguments(); err != nil {
		return nil, err
	}
	return expr, nil
}
