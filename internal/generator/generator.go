package generator

import (
	"fmt"
	"strings"

	"github.com/KimNorgaard/go-lakbay/internal/ast"
	"github.com/KimNorgaard/go-lakbay/internal/typemap"
)

// EntryMessage is the line printed by the generated main function.
const EntryMessage = "Lakbay Program Running..."

var preamble = []string{
	"#include <iostream>",
	"#include <string>",
	"#include <vector>",
	"using namespace std;",
	"",
}

// Generator transforms a parsed Lakbay program into C++ source text.
type Generator struct {
	buf         *Buffer
	indentWidth int
}

// Option configures a Generator.
type Option func(*Generator)

// IndentWidth sets the number of spaces per indentation level.
func IndentWidth(n int) Option {
	return func(g *Generator) {
		g.indentWidth = n
	}
}

// New creates a new code generator.
func New(opts ...Option) *Generator {
	g := &Generator{indentWidth: defaultIndent}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces C++ source for program: a fixed preamble, one class per
// Lakbay class in source order, and a fixed main function.
func (g *Generator) Generate(program *ast.Program) (string, error) {
	g.buf = NewBuffer(g.indentWidth)

	for _, line := range preamble {
		g.buf.Line(line)
	}
	for _, class := range program.Classes {
		if err := g.generateClass(class); err != nil {
			return "", err
		}
	}
	g.generateEntryPoint()

	return g.buf.String(), nil
}

func (g *Generator) generateEntryPoint() {
	g.buf.Blank()
	g.buf.Line("int main() {")
	restore := g.buf.Indent()
	g.buf.Line(`cout << "` + EntryMessage + `" << endl;`)
	g.buf.Line("return 0;")
	restore()
	g.buf.Line("}")
}

func (g *Generator) generateClass(class *ast.ClassDecl) error {
	header := "class " + class.Name
	if class.Parent != "" {
		header += " : public " + class.Parent
	}
	g.buf.Blank()
	g.buf.Line(header + " {")
	g.buf.Line("public:")
	if err := g.generateMembers(class.Members); err != nil {
		return err
	}
	g.buf.Line("};")
	return nil
}

func (g *Generator) generateMembers(members []ast.Member) error {
	defer g.buf.Indent()()
	for _, member := range members {
		switch m := member.(type) {
		case *ast.VisibilityLabel:
			g.buf.Outdented(m.Visibility + ":")
		case *ast.Property:
			line, err := g.declaration(m.Type, m.Name, m.Value)
			if err != nil {
				return err
			}
			g.buf.Line(line)
		case *ast.Method:
			if err := g.generateMethod(m); err != nil {
				return err
			}
		default:
			return fmt.Errorf("lakbay: unsupported member type for generation: %T", m)
		}
	}
	return nil
}

func (g *Generator) generateMethod(m *ast.Method) error {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, typemap.Lookup(p.Type)+" "+p.Name)
	}
	signature := m.Name + "(" + strings.Join(params, ", ") + ")"
	if !m.IsConstructor {
		ret := "void"
		if m.ReturnType != "" {
			ret = typemap.Lookup(m.ReturnType)
		}
		signature = ret + " " + signature
	}

	g.buf.Line(signature + " {")
	if err := g.generateBlock(m.Body); err != nil {
		return err
	}
	g.buf.Line("}")
	return nil
}

// generateBlock emits the statements of block one level deeper than the
// current depth. The braces are emitted by the caller.
func (g *Generator) generateBlock(block *ast.BlockStatement) error {
	defer g.buf.Indent()()
	if block == nil {
		return nil
	}
	for _, stmt := range block.Statements {
		if err := g.generateStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) generateStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.ReturnStatement:
		if s.Value == nil {
			g.buf.Line("return;")
			return nil
		}
		value, err := g.expression(s.Value)
		if err != nil {
			return err
		}
		g.buf.Line("return " + value + ";")

	case *ast.IfStatement:
		cond, err := g.expression(s.Condition)
		if err != nil {
			return err
		}
		if err := g.generateBraced("if ("+cond+") {", s.Consequence); err != nil {
			return err
		}
		if s.Alternative != nil {
			return g.generateBraced("else {", s.Alternative)
		}

	case *ast.WhileStatement:
		cond, err := g.expression(s.Condition)
		if err != nil {
			return err
		}
		return g.generateBraced("while ("+cond+") {", s.Body)

	case *ast.ForStatement:
		clauses, err := g.expressions(s.Init, s.Condition, s.Update)
		if err != nil {
			return err
		}
		return g.generateBraced("for ("+strings.Join(clauses, "; ")+") {", s.Body)

	case *ast.PrintStatement:
		args, err := g.expressions(s.Arguments...)
		if err != nil {
			return err
		}
		var out strings.Builder
		out.WriteString("cout")
		for _, arg := range args {
			out.WriteString(" << " + arg)
		}
		out.WriteString(" << endl;")
		g.buf.Line(out.String())

	case *ast.VarDeclaration:
		line, err := g.declaration(s.Type, s.Name, s.Value)
		if err != nil {
			return err
		}
		g.buf.Line(line)

	case *ast.ExpressionStatement:
		expr, err := g.expression(s.Expression)
		if err != nil {
			return err
		}
		g.buf.Line(expr + ";")

	case *ast.BlockStatement:
		return g.generateBraced("{", s)

	default:
		return fmt.Errorf("lakbay: unsupported statement type for generation: %T", s)
	}
	return nil
}

func (g *Generator) generateBraced(open string, body *ast.BlockStatement) error {
	g.buf.Line(open)
	if err := g.generateBlock(body); err != nil {
		return err
	}
	g.buf.Line("}")
	return nil
}

func (g *Generator) declaration(typ, name string, value ast.Expression) (string, error) {
	decl := typemap.Lookup(typ) + " " + name
	if value == nil {
		return decl + ";", nil
	}
	v, err := g.expression(value)
	if err != nil {
		return "", err
	}
	return decl + " = " + v + ";", nil
}

func (g *Generator) expressions(exprs ...ast.Expression) ([]string, error) {
	out := make([]string, 0, len(exprs))
	for _, e := range exprs {
		s, err := g.expression(e)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (g *Generator) arguments(exprs []ast.Expression) (string, error) {
	args, err := g.expressions(exprs...)
	if err != nil {
		return "", err
	}
	return strings.Join(args, ", "), nil
}

// expression renders an expression as C++. Binary operations are always
// parenthesized.
func (g *Generator) expression(expr ast.Expression) (string, error) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return e.Value, nil
	case *ast.StringLiteral:
		return Quote(e.Value), nil
	case *ast.Identifier:
		return e.Value, nil
	case *ast.ThisExpression:
		return "this", nil
	case *ast.BooleanLiteral:
		if e.Value {
			return "true", nil
		}
		return "false", nil

	case *ast.NewExpression:
		args, err := g.arguments(e.Arguments)
		if err != nil {
			return "", err
		}
		return "new " + e.Class + "(" + args + ")", nil

	case *ast.GroupedExpression:
		inner, err := g.expression(e.Inner)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case *ast.InfixExpression:
		left, err := g.expression(e.Left)
		if err != nil {
			return "", err
		}
		right, err := g.expression(e.Right)
		if err != nil {
			return "", err
		}
		return "(" + left + " " + e.Operator + " " + right + ")", nil

	case *ast.PrefixExpression:
		right, err := g.expression(e.Right)
		if err != nil {
			return "", err
		}
		// "- -x" must not collapse into the decrement operator.
		if e.Operator == "-" && strings.HasPrefix(right, "-") {
			return "- " + right, nil
		}
		return e.Operator + right, nil

	case *ast.MemberExpression:
		object, err := g.expression(e.Object)
		if err != nil {
			return "", err
		}
		out := object + "." + e.Property
		if e.IsCall {
			args, err := g.arguments(e.Arguments)
			if err != nil {
				return "", err
			}
			out += "(" + args + ")"
		}
		return out, nil

	case *ast.CallExpression:
		fn, err := g.expression(e.Function)
		if err != nil {
			return "", err
		}
		args, err := g.arguments(e.Arguments)
		if err != nil {
			return "", err
		}
		return fn + "(" + args + ")", nil

	case *ast.IndexExpression:
		left, err := g.expression(e.Left)
		if err != nil {
			return "", err
		}
		index, err := g.expression(e.Index)
		if err != nil {
			return "", err
		}
		return left + "[" + index + "]", nil

	case *ast.AssignExpression:
		target, err := g.expression(e.Target)
		if err != nil {
			return "", err
		}
		value, err := g.expression(e.Value)
		if err != nil {
			return "", err
		}
		return target + " = " + value, nil
	}
	return "", fmt.Errorf("lakbay: unsupported expression type for generation: %T", expr)
}

// Quote renders s as a C++ string literal. Control characters without a
// short escape are written as three-digit octal escapes.
func Quote(s string) string {
	var out strings.Builder
	out.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\n':
			out.WriteString(`\n`)
		case '\t':
			out.WriteString(`\t`)
		case '\r':
			out.WriteString(`\r`)
		case '\\':
			out.WriteString(`\\`)
		case '"':
			out.WriteString(`\"`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&out, `\%03o`, c)
			} else {
				out.WriteByte(c)
			}
		}
	}
	out.WriteByte('"')
	return out.String()
}
