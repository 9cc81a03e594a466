package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "out/graph.dot", false},
		{"absolute", "/tmp/graph.dot", false},
		{"parent reference", "../graph.dot", false},
		{"no extension", "graph", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"svg", false},
		{"png:cairo", false},
		{"", true},
		{"PNG", true}, // case-sensitive
		{"png -o /etc/passwd", true},
		{"-Kneato", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateBinary(t *testing.T) {
	tests := []struct {
		binary  string
		wantErr bool
	}{
		{"dot", false},
		{"/usr/local/bin/dot", false},
		{"", true},
		{"   ", true},
		{"-V", true},
		{"dot\n", true},
	}

	for _, tt := range tests {
		err := ValidateBinary(tt.binary)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateBinary(%q) error = %v, wantErr %v", tt.binary, err, tt.wantErr)
		}
	}
}
