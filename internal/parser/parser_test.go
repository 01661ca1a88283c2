package parser_test

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-lakbay/errors"
	"github.com/KimNorgaard/go-lakbay/internal/ast"
	"github.com/KimNorgaard/go-lakbay/internal/lexer"
	"github.com/KimNorgaard/go-lakbay/internal/parser"
	"github.com/KimNorgaard/go-lakbay/internal/testutil"
	"github.com/KimNorgaard/go-lakbay/internal/token"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(input))
	require.NoError(t, err)
	return parser.New(toks).ParseProgram()
}

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := parse(t, input)
	require.NoError(t, err, "parser has errors")
	return program
}

// parseStatements wraps statements in a method body and returns them.
func parseStatements(t *testing.T, body string) []ast.Statement {
	t.Helper()
	program := mustParse(t, "class T { func m() {\n"+body+"\n} }")
	require.Len(t, program.Classes, 1)
	require.Len(t, program.Classes[0].Members, 1)
	method, ok := program.Classes[0].Members[0].(*ast.Method)
	require.True(t, ok, "member is not *ast.Method, got=%T", program.Classes[0].Members[0])
	return method.Body.Statements
}

func parseExpression(t *testing.T, input string) ast.Expression {
	t.Helper()
	stmts := parseStatements(t, input+";")
	require.Len(t, stmts, 1)
	stmt, ok := stmts[0].(*ast.ExpressionStatement)
	require.True(t, ok, "stmt is not *ast.ExpressionStatement, got=%T", stmts[0])
	return stmt.Expression
}

func requireSyntaxError(t *testing.T, err error) *errors.SyntaxError {
	t.Helper()
	require.Error(t, err)
	var synErr *errors.SyntaxError
	require.True(t, stderrors.As(err, &synErr), "error is not *errors.SyntaxError, got=%T", err)
	return synErr
}

func TestEmptyProgram(t *testing.T) {
	program := mustParse(t, "")
	require.Empty(t, program.Classes)

	program = mustParse(t, "// only a comment\n")
	require.Empty(t, program.Classes)
}

func TestClassDeclaration(t *testing.T) {
	program := mustParse(t, `
class Animal { }
class Dog extends Animal {
  private:
  string name = "Rex";
  Animal friend;
  public:
  func Dog(string n) { }
  func speak(): string { return name; }
}`)
	require.Len(t, program.Classes, 2)

	animal := program.Classes[0]
	require.Equal(t, "Animal", animal.Name)
	require.Empty(t, animal.Parent)
	require.Empty(t, animal.Members)

	dog := program.Classes[1]
	require.Equal(t, "Dog", dog.Name)
	require.Equal(t, "Animal", dog.Parent)
	require.Len(t, dog.Members, 6)

	label, ok := dog.Members[0].(*ast.VisibilityLabel)
	require.True(t, ok)
	require.Equal(t, "private", label.Visibility)

	name, ok := dog.Members[1].(*ast.Property)
	require.True(t, ok)
	require.Equal(t, "string", name.Type)
	require.Equal(t, "name", name.Name)
	require.Equal(t, `"Rex"`, name.Value.String())

	friend, ok := dog.Members[2].(*ast.Property)
	require.True(t, ok)
	require.Equal(t, "Animal", friend.Type)
	require.Nil(t, friend.Value)

	ctor, ok := dog.Members[4].(*ast.Method)
	require.True(t, ok)
	require.True(t, ctor.IsConstructor)
	require.Len(t, ctor.Params, 1)
	require.Equal(t, "string n", ctor.Params[0].String())

	speak, ok := dog.Members[5].(*ast.Method)
	require.True(t, ok)
	require.False(t, speak.IsConstructor)
	require.Equal(t, "string", speak.ReturnType)
}

func TestConstructorReturnAnnotationIsDropped(t *testing.T) {
	program := mustParse(t, "class P { func P(int x, Point other): int { } }")
	method := program.Classes[0].Members[0].(*ast.Method)
	require.True(t, method.IsConstructor)
	require.Empty(t, method.ReturnType)
	require.Equal(t, "Point", method.Params[1].Type)
}

func TestMethodWithoutReturnType(t *testing.T) {
	program := mustParse(t, "class P { func run() { } }")
	method := program.Classes[0].Members[0].(*ast.Method)
	require.False(t, method.IsConstructor)
	require.Empty(t, method.ReturnType)
	require.Empty(t, method.Params)
}

func TestOperatorPrecedenceParsing(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"a - b - c", "((a - b) - c)"},
		{"a / b * c", "((a / b) * c)"},
		{"a < b == c > d", "((a < b) == (c > d))"},
		{"a <= b != c >= d", "((a <= b) != (c >= d))"},
		{"a || b && c", "(a || (b && c))"},
		{"a && b || c && d", "((a && b) || (c && d))"},
		{"-a * b", "((-a) * b)"},
		{"!a == b", "((!a) == b)"},
		{"- -a", "(-(-a))"},
		{"(1 + 2) * 3", "(((1 + 2)) * 3)"},
		{"a + b.c(d) * e[f]", "(a + (b.c(d) * e[f]))"},
		{"f(1, 2 + 3)(4)", "f(1, (2 + 3))(4)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseExpression(t, tt.input).String())
		})
	}
}

func TestPrimaryExpressions(t *testing.T) {
	tests := []struct {
		input    string
		expected ast.Expression
	}{
		{"42", &ast.NumberLiteral{}},
		{"1.2.3", &ast.NumberLiteral{}},
		{`"hi"`, &ast.StringLiteral{}},
		{"x", &ast.Identifier{}},
		{"this", &ast.ThisExpression{}},
		{"true", &ast.BooleanLiteral{}},
		{"false", &ast.BooleanLiteral{}},
		{"new Point(1, 2)", &ast.NewExpression{}},
		{"(x)", &ast.GroupedExpression{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr := parseExpression(t, tt.input)
			require.IsType(t, tt.expected, expr)
			require.Equal(t, tt.input, expr.String())
		})
	}
}

func TestBooleanLiteralValue(t *testing.T) {
	require.True(t, parseExpression(t, "true").(*ast.BooleanLiteral).Value)
	require.False(t, parseExpression(t, "false").(*ast.BooleanLiteral).Value)
}

// Assignment is a postfix operation, so chains that end in a call or an
// index can be assigned to and the right-hand side swallows the rest of the
// expression.
func TestAssignmentIsPostfix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"x = 1", "x = 1"},
		{"a = b = c", "a = b = c"},
		{"this.x = x + 1", "this.x = (x + 1)"},
		{"a[i] = 2", "a[i] = 2"},
		{"f() = 3", "f() = 3"},
		{"p.get(0) = 4", "p.get(0) = 4"},
		{"1 + y = 2", "(1 + y = 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.expected, parseExpression(t, tt.input).String())
		})
	}

	expr := parseExpression(t, "f() = 3")
	assign, ok := expr.(*ast.AssignExpression)
	require.True(t, ok)
	require.IsType(t, &ast.CallExpression{}, assign.Target)

	expr = parseExpression(t, "1 + y = 2")
	infix, ok := expr.(*ast.InfixExpression)
	require.True(t, ok)
	require.IsType(t, &ast.AssignExpression{}, infix.Right)
}

func TestStatements(t *testing.T) {
	stmts := parseStatements(t, `
int i = 0;
float f;
Point p = new Point();
return;
return i;
if (i > 1) { i = 2; } else { i = 3; }
if (true) { }
while (i < 10) { i = i + 1; }
for (i = 0; i < 3; i = i + 1) { print(i); }
print("a", 1, b);
print();
this.x = 5;
foo.bar();
`)
	require.Len(t, stmts, 13)

	expected := []struct {
		typ  ast.Statement
		text string
	}{
		{&ast.VarDeclaration{}, "int i = 0;"},
		{&ast.VarDeclaration{}, "float f;"},
		{&ast.VarDeclaration{}, "Point p = new Point();"},
		{&ast.ReturnStatement{}, "return;"},
		{&ast.ReturnStatement{}, "return i;"},
		{&ast.IfStatement{}, "if ((i > 1)) { i = 2; } else { i = 3; }"},
		{&ast.IfStatement{}, "if (true) { }"},
		{&ast.WhileStatement{}, "while ((i < 10)) { i = (i + 1); }"},
		{&ast.ForStatement{}, "for (i = 0; (i < 3); i = (i + 1)) { print(i); }"},
		{&ast.PrintStatement{}, `print("a", 1, b);`},
		{&ast.PrintStatement{}, "print();"},
		{&ast.ExpressionStatement{}, "this.x = 5;"},
		{&ast.ExpressionStatement{}, "foo.bar();"},
	}
	for i, want := range expected {
		require.IsType(t, want.typ, stmts[i], "stmts[%d]", i)
		require.Equal(t, want.text, stmts[i].String(), "stmts[%d]", i)
	}

	ifStmt := stmts[6].(*ast.IfStatement)
	require.Nil(t, ifStmt.Alternative)
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		line     int
		expected string
		found    string
	}{
		{"missing semicolon", "class A {\n  int x = 1\n}", 3, "';'", "'}'"},
		{"missing class name", "class {", 1, "identifier", "'{'"},
		{"top level statement", "int x;", 1, "'class'", "keyword 'int'"},
		{"unterminated class", "class A {\n int x;", 2, "'}'", "EOF"},
		{"bad member", "class A { return; }", 1, "class member", "keyword 'return'"},
		{"visibility without colon", "class A { public int x; }", 1, "':'", "keyword 'int'"},
		{"unexpected primary", "class A { func f() {\n x = ; } }", 2, "expression", "';'"},
		{"for with empty clause", "class A { func f() { for (;;) { } } }", 1, "expression", "';'"},
		{"increment is not an expression", "class A { func f() { for (i = 0; i < 1; i++) { } } }", 1, "')'", "'++'"},
		{"else if", "class A { func f() { if (a) { } else if (b) { } } }", 1, "'{'", "keyword 'if'"},
		{"missing paren", "class A { func f( { } }", 1, "type", "'{'"},
		{"missing param name", "class A { func f(int) { } }", 1, "identifier", "')'"},
		{"missing member name", "class A { func f() { a.1; } }", 1, "identifier", "number '1'"},
		{"string found", "class A { \"x\" }", 1, "class member", `string "x"`},
		{"new without parens", "class A { func f() { p = new Point; } }", 1, "'('", "';'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			synErr := requireSyntaxError(t, err)
			require.Equal(t, tt.line, synErr.Line)
			require.Equal(t, tt.expected, synErr.Expected)
			require.Equal(t, tt.found, synErr.Found)
		})
	}
}

// Stray tokens between classes are rejected. The Python original skipped
// them one by one; this parser reports them instead.
func TestStrayTopLevelTokenIsAnError(t *testing.T) {
	_, err := parse(t, "class A { }\n;\nclass B { }")
	synErr := requireSyntaxError(t, err)
	require.Equal(t, 2, synErr.Line)
	require.Equal(t, "'class'", synErr.Expected)
	require.Equal(t, "';'", synErr.Found)
}

func parseWith(t *testing.T, input string, opts ...parser.Option) (*ast.Program, error) {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(input))
	require.NoError(t, err)
	return parser.New(toks, opts...).ParseProgram()
}

func inMethod(body string) string {
	return "class A { func f() { " + body + " } }"
}

func requireDepthError(t *testing.T, err error, limit int) {
	t.Helper()
	var depthErr *errors.DepthError
	require.True(t, stderrors.As(err, &depthErr), "expected *errors.DepthError, got %v", err)
	require.Equal(t, limit, depthErr.Limit)
}

func TestNestingLimit(t *testing.T) {
	const n = 100000
	tests := []struct {
		name  string
		input string
	}{
		{"parentheses", inMethod("x = " + strings.Repeat("(", n) + "1" + strings.Repeat(")", n) + ";")},
		{"negation", inMethod("x = " + strings.Repeat("!", n) + "y;")},
		{"minus", inMethod("x = " + strings.Repeat("- ", n) + "y;")},
		{"blocks", inMethod(strings.Repeat("while (a) { ", n) + strings.Repeat("}", n))},
		{"binary chain", inMethod("x = 1" + strings.Repeat(" + 1", n) + ";")},
		{"member chain", inMethod("x = a" + strings.Repeat(".b", n) + ";")},
		{"call chain", inMethod("f" + strings.Repeat("()", n) + ";")},
		{"assignment chain", inMethod(strings.Repeat("a = ", n) + "1;")},
		{"new arguments", inMethod("x = " + strings.Repeat("new P(", n) + strings.Repeat(")", n) + ";")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			requireDepthError(t, err, parser.DefaultMaxDepth)
		})
	}
}

func TestNestingWithinLimit(t *testing.T) {
	nested := strings.Repeat("(", 600) + "1" + strings.Repeat(")", 600)
	// Two siblings at the same depth must both fit; depth is released on
	// the way out of each construct.
	program, err := parse(t, inMethod("x = "+nested+"; y = "+nested+";"))
	require.NoError(t, err)
	require.Len(t, program.Classes[0].Members, 1)

	_, err = parse(t, inMethod("x = 1"+strings.Repeat(" + 1", 500)+";"))
	require.NoError(t, err)
}

func TestMaxDepthOption(t *testing.T) {
	src := inMethod("x = ((((1))));")

	_, err := parseWith(t, src, parser.MaxDepth(4))
	requireDepthError(t, err, 4)

	_, err = parseWith(t, src, parser.MaxDepth(20))
	require.NoError(t, err)

	long := inMethod("x = 1" + strings.Repeat(" + 1", 5000) + ";")
	_, err = parseWith(t, long, parser.MaxDepth(10000))
	require.NoError(t, err)

	// Non-positive limits leave the default in place.
	_, err = parseWith(t, inMethod("x = "+strings.Repeat("!", 2000)+"y;"), parser.MaxDepth(0))
	requireDepthError(t, err, parser.DefaultMaxDepth)
}

func TestParserWithoutEOFToken(t *testing.T) {
	toks := []token.Token{
		{Type: token.KEYWORD, Literal: "class", Line: 1},
		{Type: token.IDENT, Literal: "A", Line: 1},
		{Type: token.LBRACE, Literal: "{", Line: 2},
	}
	_, err := parser.New(toks).ParseProgram()
	synErr := requireSyntaxError(t, err)
	require.Equal(t, 2, synErr.Line)
	require.Equal(t, "EOF", synErr.Found)
}

func TestSamplePrograms(t *testing.T) {
	for _, name := range []string{"shapes.lakbay", "counter.lakbay"} {
		t.Run(name, func(t *testing.T) {
			src, err := testutil.ReadTestData(name)
			require.NoError(t, err)
			toks, err := lexer.Tokenize(src)
			require.NoError(t, err)
			program, err := parser.New(toks).ParseProgram()
			require.NoError(t, err)
			require.NotEmpty(t, program.Classes)
		})
	}
}
