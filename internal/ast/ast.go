package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-lakbay/internal/token"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// TokenLiteral returns the literal value of the token associated with the node.
	TokenLiteral() string
	// String returns the node in Lakbay source form.
	String() string
}

// Member is a node that may appear in a class body.
type Member interface {
	Node
	memberNode()
}

// Statement is a node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of a Lakbay translation unit.
type Program struct {
	Classes []*ClassDecl
}

// TokenLiteral returns the literal value of the token associated with the node.
func (p *Program) TokenLiteral() string {
	if len(p.Classes) > 0 {
		return p.Classes[0].TokenLiteral()
	}
	return ""
}

// String returns a string representation of the node.
func (p *Program) String() string {
	classes := make([]string, 0, len(p.Classes))
	for _, c := range p.Classes {
		classes = append(classes, c.String())
	}
	return strings.Join(classes, "\n")
}

// ClassDecl represents `class Name [extends Parent] { members }`.
type ClassDecl struct {
	Token   token.Token // the 'class' token
	Name    string
	Parent  string // empty when there is no extends clause
	Members []Member
}

func (cd *ClassDecl) TokenLiteral() string { return cd.Token.Literal }
func (cd *ClassDecl) String() string {
	var out bytes.Buffer
	out.WriteString("class " + cd.Name)
	if cd.Parent != "" {
		out.WriteString(" extends " + cd.Parent)
	}
	out.WriteString(" {")
	for _, m := range cd.Members {
		out.WriteString(" " + m.String())
	}
	out.WriteString(" }")
	return out.String()
}

// VisibilityLabel represents `public:` or `private:` inside a class body.
type VisibilityLabel struct {
	Token      token.Token
	Visibility string
}

func (vl *VisibilityLabel) memberNode()          {}
func (vl *VisibilityLabel) TokenLiteral() string { return vl.Token.Literal }
func (vl *VisibilityLabel) String() string       { return vl.Visibility + ":" }

// Property represents a typed field, optionally initialized.
type Property struct {
	Token token.Token // the type token
	Type  string
	Name  string
	Value Expression // nil when there is no initializer
}

func (p *Property) memberNode()          {}
func (p *Property) TokenLiteral() string { return p.Token.Literal }
func (p *Property) String() string       { return declString(p.Type, p.Name, p.Value) }

// Param is a single typed method parameter.
type Param struct {
	Token token.Token // the type token
	Type  string
	Name  string
}

func (p *Param) TokenLiteral() string { return p.Token.Literal }
func (p *Param) String() string       { return p.Type + " " + p.Name }

// Method represents `func name(params) [: Type] { body }`. A method named
// after its class is a constructor and has no return type.
type Method struct {
	Token         token.Token // the 'func' token
	Name          string
	Params        []*Param
	ReturnType    string // empty when omitted
	IsConstructor bool
	Body          *BlockStatement
}

func (m *Method) memberNode()          {}
func (m *Method) TokenLiteral() string { return m.Token.Literal }
func (m *Method) String() string {
	params := make([]string, 0, len(m.Params))
	for _, p := range m.Params {
		params = append(params, p.String())
	}
	var out bytes.Buffer
	out.WriteString("func " + m.Name + "(" + strings.Join(params, ", ") + ")")
	if m.ReturnType != "" {
		out.WriteString(": " + m.ReturnType)
	}
	out.WriteString(" " + m.Body.String())
	return out.String()
}

// BlockStatement is a braced sequence of statements.
type BlockStatement struct {
	Token      token.Token // the '{' token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) String() string {
	if bs == nil {
		return "{ }"
	}
	var out bytes.Buffer
	out.WriteString("{")
	for _, s := range bs.Statements {
		out.WriteString(" " + s.String())
	}
	out.WriteString(" }")
	return out.String()
}

// ReturnStatement represents `return [expr];`.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

// IfStatement represents `if (cond) { } [else { }]`.
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative *BlockStatement // nil without an else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) String() string {
	s := "if (" + is.Condition.String() + ") " + is.Consequence.String()
	if is.Alternative != nil {
		s += " else " + is.Alternative.String()
	}
	return s
}

// WhileStatement represents `while (cond) { }`.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// ForStatement represents `for (init; cond; update) { }`. All three clauses
// are required expressions.
type ForStatement struct {
	Token     token.Token
	Init      Expression
	Condition Expression
	Update    Expression
	Body      *BlockStatement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) String() string {
	return "for (" + fs.Init.String() + "; " + fs.Condition.String() + "; " + fs.Update.String() + ") " + fs.Body.String()
}

// PrintStatement represents `print(args);`.
type PrintStatement struct {
	Token     token.Token
	Arguments []Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) String() string       { return "print(" + joinExpressions(ps.Arguments) + ");" }

// VarDeclaration represents a typed local variable, optionally initialized.
type VarDeclaration struct {
	Token token.Token // the type token
	Type  string
	Name  string
	Value Expression // nil when there is no initializer
}

func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclaration) String() string       { return declString(vd.Type, vd.Name, vd.Value) }

// ExpressionStatement represents a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string       { return es.Expression.String() + ";" }

// NumberLiteral holds the numeric text exactly as written.
type NumberLiteral struct {
	Token token.Token
	Value string
}

func (nl *NumberLiteral) expressionNode()      {}
func (nl *NumberLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumberLiteral) String() string       { return nl.Value }

// StringLiteral holds the unescaped contents of a string literal.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return strconv.Quote(sl.Value) }

// Identifier represents an identifier.
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// ThisExpression represents the `this` keyword.
type ThisExpression struct {
	Token token.Token
}

func (te *ThisExpression) expressionNode()      {}
func (te *ThisExpression) TokenLiteral() string { return te.Token.Literal }
func (te *ThisExpression) String() string       { return "this" }

// BooleanLiteral represents a boolean literal.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Literal }
func (b *BooleanLiteral) String() string       { return b.Token.Literal }

// NewExpression represents `new Class(args)`.
type NewExpression struct {
	Token     token.Token // the 'new' token
	Class     string
	Arguments []Expression
}

func (ne *NewExpression) expressionNode()      {}
func (ne *NewExpression) TokenLiteral() string { return ne.Token.Literal }
func (ne *NewExpression) String() string {
	return "new " + ne.Class + "(" + joinExpressions(ne.Arguments) + ")"
}

// GroupedExpression is a parenthesized sub-expression.
type GroupedExpression struct {
	Token token.Token // the '(' token
	Inner Expression
}

func (ge *GroupedExpression) expressionNode()      {}
func (ge *GroupedExpression) TokenLiteral() string { return ge.Token.Literal }
func (ge *GroupedExpression) String() string       { return "(" + ge.Inner.String() + ")" }

// InfixExpression is a binary operation.
type InfixExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *InfixExpression) String() string {
	return "(" + ie.Left.String() + " " + ie.Operator + " " + ie.Right.String() + ")"
}

// PrefixExpression is a unary `-` or `!` operation.
type PrefixExpression struct {
	Token    token.Token // the operator token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Literal }
func (pe *PrefixExpression) String() string       { return "(" + pe.Operator + pe.Right.String() + ")" }

// MemberExpression is `object.name`, or `object.name(args)` when IsCall is set.
type MemberExpression struct {
	Token     token.Token // the '.' token
	Object    Expression
	Property  string
	IsCall    bool
	Arguments []Expression
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) String() string {
	s := me.Object.String() + "." + me.Property
	if me.IsCall {
		s += "(" + joinExpressions(me.Arguments) + ")"
	}
	return s
}

// CallExpression is `function(args)`.
type CallExpression struct {
	Token     token.Token // the '(' token
	Function  Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	return ce.Function.String() + "(" + joinExpressions(ce.Arguments) + ")"
}

// IndexExpression is `left[index]`.
type IndexExpression struct {
	Token token.Token // the '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()      {}
func (ie *IndexExpression) TokenLiteral() string { return ie.Token.Literal }
func (ie *IndexExpression) String() string       { return ie.Left.String() + "[" + ie.Index.String() + "]" }

// AssignExpression is `target = value`. It is produced by the postfix chain,
// so the target can be any postfix expression, including a call.
type AssignExpression struct {
	Token  token.Token // the '=' token
	Target Expression
	Value  Expression
}

func (ae *AssignExpression) expressionNode()      {}
func (ae *AssignExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignExpression) String() string       { return ae.Target.String() + " = " + ae.Value.String() }

func joinExpressions(exprs []Expression) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

func declString(typ, name string, value Expression) string {
	if value == nil {
		return typ + " " + name + ";"
	}
	return typ + " " + name + " = " + value.String() + ";"
}
