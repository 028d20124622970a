package syntax

// globals are the ECMAScript built-ins and context variables that resolve
// without a declaration in the file.
var globals = map[string]struct{}{}

func init() {
	for _, name := range []string{
		// value properties and context variables
		"globalThis", "Infinity", "NaN", "undefined", "arguments",
		// functions
		"eval", "isFinite", "isNaN", "parseFloat", "parseInt",
		"decodeURI", "decodeURIComponent", "encodeURI", "encodeURIComponent",
		"escape", "unescape",
		// constructors and namespaces
		"AggregateError", "Array", "ArrayBuffer", "Atomics", "BigInt",
		"BigInt64Array", "BigUint64Array", "Boolean", "DataView", "Date",
		"Error", "EvalError", "FinalizationRegistry", "Float32Array",
		"Float64Array", "Function", "Int8Array", "Int16Array", "Int32Array",
		"Intl", "Iterator", "JSON", "Map", "Math", "Number", "Object",
		"Promise", "Proxy", "RangeError", "ReferenceError", "Reflect",
		"RegExp", "Set", "SharedArrayBuffer", "String", "Symbol",
		"SyntaxError", "TypeError", "Uint8Array", "Uint8ClampedArray",
		"Uint16Array", "Uint32Array", "URIError", "WeakMap", "WeakRef",
		"WeakSet",
	} {
		globals[name] = struct{}{}
	}
}

// IsGlobal reports whether name is a built-in global binding.
func IsGlobal(name string) bool {
	_, ok := globals[name]
	return ok
}
