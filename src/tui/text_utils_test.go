package tui

import (
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "build #42", want: "build #42"},
		{name: "sgr codes", in: "\x1b[31mfailed\x1b[0m", want: "failed"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		maxLen   int
		ellipsis bool
		want     string
	}{
		{name: "fits", in: "short", maxLen: 10, ellipsis: true, want: "short"},
		{name: "exact", in: "1234567890", maxLen: 10, ellipsis: true, want: "1234567890"},
		{name: "truncated with ellipsis", in: "a very long description", maxLen: 10, ellipsis: true, want: "a very ..."},
		{name: "truncated without ellipsis", in: "a very long description", maxLen: 6, ellipsis: false, want: "a very"},
		{name: "zero width", in: "anything", maxLen: 0, ellipsis: true, want: ""},
		{name: "trims whitespace", in: "  padded  ", maxLen: 20, ellipsis: false, want: "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.in, tt.maxLen, tt.ellipsis)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d, %v) = %q, want %q", tt.in, tt.maxLen, tt.ellipsis, got, tt.want)
			}
			if VisualWidth(got) > tt.maxLen {
				t.Errorf("Truncate() result wider than %d: %q", tt.maxLen, got)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	got := TruncateAndPad("ok", 6, false)
	if got != "ok    " {
		t.Errorf("TruncateAndPad() = %q, want %q", got, "ok    ")
	}
	if VisualWidth(got) != 6 {
		t.Errorf("width = %d, want 6", VisualWidth(got))
	}

	long := TruncateAndPad("a very long value", 6, false)
	if VisualWidth(long) != 6 {
		t.Errorf("width = %d, want 6", VisualWidth(long))
	}
}

func TestSplitLines(t *testing.T) {
	if got := SplitLines(""); len(got) != 0 {
		t.Errorf("SplitLines(\"\") = %v, want empty", got)
	}

	got := SplitLines("a\nb\nc")
	if len(got) != 3 || got[1] != "b" {
		t.Errorf("SplitLines() = %v", got)
	}

	if !strings.HasPrefix(SplitLines("one")[0], "one") {
		t.Error("single line lost")
	}
}
