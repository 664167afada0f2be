package codegen

import "testing"

func TestTableNames(t *testing.T) {
	tests := []struct {
		prefix    string
		wantType  string
		wantTable string
	}{
		{"Message", "messageTransition", "messageTransitions"},
		{"X", "xTransition", "xTransitions"},
	}

	for _, tt := range tests {
		if got := TypeName(tt.prefix); got != tt.wantType {
			t.Errorf("TypeName(%q) = %q, want %q", tt.prefix, got, tt.wantType)
		}
		if got := TableName(tt.prefix); got != tt.wantTable {
			t.Errorf("TableName(%q) = %q, want %q", tt.prefix, got, tt.wantTable)
		}
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"A", "a"},
		{"ABC", "aBC"},
		{"Hello", "hello"},
		{"hello", "hello"},
	}

	for _, tt := range tests {
		got := LowerFirst(tt.input)
		if got != tt.want {
			t.Errorf("LowerFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"Hello", "Hello"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
