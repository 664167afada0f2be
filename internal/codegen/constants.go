// Package codegen emits standalone Go matchers for compiled automata.
package codegen

// Variable names used in generated code
const (
	InputName  = "input"
	StateName  = "state"
	SymbolName = "symbol"
	ToName     = "to"
)

// TypeName returns the transition struct type for a matcher prefix.
func TypeName(prefix string) string {
	return LowerFirst(prefix) + "Transition"
}

// TableName returns the transition table variable for a matcher prefix.
func TableName(prefix string) string {
	return LowerFirst(prefix) + "Transitions"
}

// LowerFirst converts the first character of a string to lowercase.
func LowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}
