package ui

import (
	"testing"
	"time"
)

func TestHumanizeDuration(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"negative", -5 * time.Second, "now"},
		{"subsecond", 300 * time.Millisecond, "now"},
		{"seconds", 10 * time.Second, "10s"},
		{"minutes", 61 * time.Second, "1m"},
		{"hours", 2*time.Hour + 10*time.Minute, "2h"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := humanizeDuration(tc.in); got != tc.want {
				t.Fatalf("humanizeDuration(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 8); got != "hello..." {
		t.Fatalf("truncate = %q, want hello...", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate = %q, want short", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate limit<=3 = %q, want ab", got)
	}
}

func TestTruncateMiddle(t *testing.T) {
	if got := truncateMiddle("  ", 10); got != "" {
		t.Fatalf("truncateMiddle blank = %q, want empty", got)
	}
	if got := truncateMiddle("abcd", 2); got != "ab" {
		t.Fatalf("truncateMiddle limit<=3 = %q, want ab", got)
	}
	got := truncateMiddle("http://192.168.1.20:5001", 11)
	if got != "http:…:5001" {
		t.Fatalf("truncateMiddle = %q, want http:…:5001", got)
	}
	if len([]rune(got)) != 11 {
		t.Fatalf("got %q (%d runes), want 11", got, len([]rune(got)))
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight = %q, want unchanged", got)
	}
}
