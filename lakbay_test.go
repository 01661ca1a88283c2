package lakbay

import (
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/KimNorgaard/go-lakbay/errors"
	"github.com/KimNorgaard/go-lakbay/internal/token"
	"github.com/stretchr/testify/require"
)

func method(body string) string {
	return "class T {\n    func m() {\n" + body + "\n    }\n}"
}

func TestTranspileDeterministic(t *testing.T) {
	src := method(`        print("x = ", 1 + 2 * 3);`)
	first, err := TranspileString(src)
	require.NoError(t, err)
	for range 5 {
		again, err := TranspileString(src)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestTranspileConcurrent(t *testing.T) {
	src := method("        return a && b || c;")
	expected, err := TranspileString(src)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = TranspileString(src)
		}()
	}
	wg.Wait()
	for _, r := range results {
		require.Equal(t, expected, r)
	}
}

func TestTranspileEmptyClass(t *testing.T) {
	out, err := TranspileString("class A { }")
	require.NoError(t, err)
	require.Contains(t, out, "\nclass A {\npublic:\n};\n")
}

func TestTranspilePrecedence(t *testing.T) {
	out, err := TranspileString(method("        x = 1 + 2 * 3;"))
	require.NoError(t, err)
	require.Contains(t, out, "x = (1 + (2 * 3));")
	require.NotContains(t, out, "(1 + 2 * 3)")
	require.NotContains(t, out, "((1 + 2) * 3)")
}

func TestTranspileStringEscapes(t *testing.T) {
	out, err := TranspileString(method(`        print("a\nb");`))
	require.NoError(t, err)
	require.Contains(t, out, `cout << "a\nb" << endl;`)

	// The emitted literal spans one line; the newline is escaped, not raw.
	for _, line := range strings.Split(out, "\n") {
		require.NotEqual(t, `b" << endl;`, strings.TrimSpace(line))
	}
}

func TestTranspileCommentsAreTransparent(t *testing.T) {
	plain := "class A {\n    int x = 1;\n    func f() {\n        return x;\n    }\n}"
	commented := "// header\nclass A { // open\n    int x = 1; // field\n    // alone\n    func f() {\n        return x; // done\n    }\n}\n// trailer"

	a, err := TranspileString(plain)
	require.NoError(t, err)
	b, err := TranspileString(commented)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestTranspileConstructor(t *testing.T) {
	out, err := TranspileString("class Box {\n    func Box(int w): int { }\n    func size(): int { return 1; }\n}")
	require.NoError(t, err)
	require.Contains(t, out, "\n    Box(int w) {\n    }\n")
	require.Contains(t, out, "\n    int size() {\n")
	require.NotContains(t, out, "int Box(")
	require.NotContains(t, out, "void Box(")
}

func TestTranspileMissingSemicolon(t *testing.T) {
	src := "class A {\n    func f() {\n        int x = 1\n        return x;\n    }\n}"
	out, err := Transpile([]byte(src))
	require.Nil(t, out)

	var syntaxErr *errors.SyntaxError
	require.True(t, stderrors.As(err, &syntaxErr))
	require.Equal(t, 4, syntaxErr.Line)
	require.Equal(t, "';'", syntaxErr.Expected)
	require.Equal(t, "keyword 'return'", syntaxErr.Found)
}

func TestTranspileSkipsUnknownCharacters(t *testing.T) {
	withJunk, err := TranspileString(method("        x = 1;\n        @\n        y = 2;"))
	require.NoError(t, err)
	without, err := TranspileString(method("        x = 1;\n        y = 2;"))
	require.NoError(t, err)

	require.Equal(t, without, withJunk)
	require.NotContains(t, withJunk, "@")
}

func TestTranspileStrictLexing(t *testing.T) {
	_, err := TranspileString(method("        x = 1;\n        @\n        y = 2;"), StrictLexing())

	var lexErr *errors.LexError
	require.True(t, stderrors.As(err, &lexErr))
	require.Equal(t, '@', lexErr.Char)
	require.Equal(t, 4, lexErr.Line)
}

func TestTranspileIndent(t *testing.T) {
	out, err := TranspileString("class A { int x; }", Indent(2))
	require.NoError(t, err)
	require.Contains(t, out, "public:\n  int x;\n};")

	out, err = TranspileString("class A { int x; }", Indent(0))
	require.NoError(t, err)
	require.Contains(t, out, "public:\nint x;\n};")
}

func TestTranspileInvalidOption(t *testing.T) {
	out, err := TranspileString("class A { }", Indent(-1))
	require.Error(t, err)
	require.Empty(t, out)
	require.Contains(t, err.Error(), "indent must be a non-negative integer")
}

func TestTranspileEmptyInput(t *testing.T) {
	out, err := TranspileString("")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "#include <iostream>\n"))
	require.True(t, strings.HasSuffix(out, "    return 0;\n}"))
}

func TestTokenize(t *testing.T) {
	tokens, err := Tokenize([]byte("class A {\n}"))
	require.NoError(t, err)
	require.Equal(t, []Token{
		{Type: token.KEYWORD, Literal: "class", Line: 1},
		{Type: token.IDENT, Literal: "A", Line: 1},
		{Type: token.LBRACE, Literal: "{", Line: 1},
		{Type: token.RBRACE, Literal: "}", Line: 2},
		{Type: token.EOF, Literal: "", Line: 2},
	}, tokens)

	_, err = Tokenize([]byte("$"), StrictLexing())
	require.Error(t, err)

	_, err = Tokenize([]byte("x"), Indent(-3))
	require.Error(t, err)
}

func TestTranspileDeepNestingFails(t *testing.T) {
	const n = 100000
	for name, src := range map[string]string{
		"parentheses": method("        x = " + strings.Repeat("(", n) + "1" + strings.Repeat(")", n) + ";"),
		"negation":    method("        x = " + strings.Repeat("!", n) + "y;"),
	} {
		t.Run(name, func(t *testing.T) {
			out, err := TranspileString(src)
			require.Empty(t, out)

			var depthErr *errors.DepthError
			require.True(t, stderrors.As(err, &depthErr))
			require.Equal(t, 1000, depthErr.Limit)
			require.Equal(t, 3, depthErr.Line)
		})
	}
}

func TestTranspileMaxDepth(t *testing.T) {
	src := method("        x = ((((1))));")

	_, err := TranspileString(src, MaxDepth(3))
	var depthErr *errors.DepthError
	require.True(t, stderrors.As(err, &depthErr))
	require.Equal(t, 3, depthErr.Limit)

	out, err := TranspileString(src, MaxDepth(50))
	require.NoError(t, err)
	require.Contains(t, out, "x = ((((1))));")

	for _, n := range []int{0, -1} {
		_, err := TranspileString(src, MaxDepth(n))
		require.EqualError(t, err, "lakbay: max depth must be a positive integer")
	}
}
