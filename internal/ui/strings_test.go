package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"Air bike", 20, "Air bike"},
		{"  padded  ", 20, "padded"},
		{"barbell full squat", 10, "barbell..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestTruncateMiddle(t *testing.T) {
	got := truncateMiddle("/home/user/.local/share/energy/energy.log", 15)
	if len([]rune(got)) != 15 {
		t.Fatalf("truncateMiddle length = %d, want 15 (%q)", len([]rune(got)), got)
	}
	if got[:7] != "/home/u" {
		t.Fatalf("truncateMiddle should keep the prefix, got %q", got)
	}
	if short := truncateMiddle("short", 15); short != "short" {
		t.Fatalf("truncateMiddle(short) = %q", short)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Fatalf("padRight should not truncate, got %q", got)
	}
}

func TestStars(t *testing.T) {
	filled, empty := stars(3)
	if filled != "★★★" || empty != "☆☆" {
		t.Fatalf("stars(3) = %q %q", filled, empty)
	}
	filled, empty = stars(9)
	if filled != "★★★★★" || empty != "" {
		t.Fatalf("stars(9) = %q %q", filled, empty)
	}
	filled, empty = stars(-1)
	if filled != "" || empty != "☆☆☆☆☆" {
		t.Fatalf("stars(-1) = %q %q", filled, empty)
	}
}

func TestClamp(t *testing.T) {
	if clamp(5, 0, 3) != 3 || clamp(-1, 0, 3) != 0 || clamp(2, 0, 3) != 2 {
		t.Fatal("clamp bounds")
	}
	if clamp(2, 0, -1) != 0 {
		t.Fatal("clamp with empty range should return lo")
	}
}
