package logger

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short unchanged", "hello", 50, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long ascii", "hello world", 8, "hello..."},
		{"tiny limit", "hello", 3, "..."},
		{"multibyte cut on rune boundary", "💰💰💰💰💰", 4, "💰..."},
		{"mixed ascii and emoji", "reward 💸💸💸💸", 10, "reward ..."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := truncate(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) produced invalid UTF-8", tt.input, tt.maxLen)
			}
		})
	}
}
