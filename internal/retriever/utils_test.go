package retriever

import (
	"strings"
	"testing"
)

func TestTruncate_ShortString(t *testing.T) {
	if got := Truncate("short", 200); got != "short" {
		t.Errorf("expected short string unchanged, got %q", got)
	}
}

func TestTruncate_ExactLength(t *testing.T) {
	s := strings.Repeat("a", 200)

	if got := Truncate(s, 200); got != s {
		t.Error("expected string at limit unchanged")
	}
}

func TestTruncate_LongString(t *testing.T) {
	s := strings.Repeat("a", 300)
	got := Truncate(s, 200)

	if len([]rune(got)) != 203 {
		t.Errorf("expected 200 runes plus ellipsis, got %d", len([]rune(got)))
	}

	if !strings.HasSuffix(got, "...") {
		t.Error("expected ellipsis suffix")
	}
}

func TestTruncate_MultibyteSafe(t *testing.T) {
	s := strings.Repeat("ü", 250)
	got := Truncate(s, 200)

	if strings.Contains(got, "�") {
		t.Error("truncation split a multibyte rune")
	}

	if len([]rune(got)) != 203 {
		t.Errorf("expected 200 runes plus ellipsis, got %d", len([]rune(got)))
	}
}
