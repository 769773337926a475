package utils

import "testing"

func TestTruncate(t *testing.T) {
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("Truncate = %q, want %q", got, "hello...")
	}
	if got := Truncate("hi", 5); got != "hi" {
		t.Errorf("Truncate short = %q, want %q", got, "hi")
	}
	if got := Truncate("hello", 0); got != "hello" {
		t.Errorf("Truncate zero maxLen = %q, want unchanged", got)
	}
}
