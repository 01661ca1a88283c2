// Package typemap maps Lakbay primitive type names to C++ type names.
package typemap

var primitives = map[string]string{
	"int":    "int",
	"float":  "float",
	"string": "string",
	"bool":   "bool",
	"void":   "void",
}

// Lookup returns the C++ spelling of a Lakbay type name. Names without an
// entry, such as user-defined class names, are returned unchanged.
func Lookup(name string) string {
	if cpp, ok := primitives[name]; ok {
		return cpp
	}
	return name
}
