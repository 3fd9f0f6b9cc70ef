package main

import "testing"

func TestDecodeSource(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "plain utf-8",
			input:    []byte("s = \"héllo\""),
			expected: "s = \"héllo\"",
		},
		{
			name:     "utf-8 byte order mark is dropped",
			input:    []byte("\xEF\xBB\xBFint x;"),
			expected: "int x;",
		},
		{
			name:     "windows-1252 fallback",
			input:    []byte("s = \"caf\xE9 \x80\""),
			expected: "s = \"café €\"",
		},
		{
			name:     "empty",
			input:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := decodeSource(tt.input)
			if result != tt.expected {
				t.Errorf("decodeSource() = %q, want %q", result, tt.expected)
			}
		})
	}
}
