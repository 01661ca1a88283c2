/*
Package lakbay translates programs written in Lakbay, a small class-based
teaching language, into a single C++ translation unit.

Translation is a pipeline of three stages: the lexer turns source text into
tokens, the parser builds a syntax tree of class declarations, and the
generator walks the tree and emits C++. The whole pipeline is exposed through
Transpile:

	src := []byte(`class Greeter {
	    func hello() {
	        print("hello");
	    }
	}`)

	cpp, err := lakbay.Transpile(src)
	if err != nil {
		// handle error
	}
	// cpp holds the C++ source, ready for a C++11 compiler.

Translation is all or nothing. A syntax error aborts it and is reported as an
*errors.SyntaxError carrying the line of the offending token. Characters
outside the language are skipped unless StrictLexing is given, in which case
they are reported as an *errors.LexError.

The emitted main function only prints a fixed banner; Lakbay has no entry
point of its own. Output formatting can be adjusted with functional options
such as Indent.
*/
package lakbay
