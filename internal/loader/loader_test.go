package loader

import (
	"testing"
)

func TestCleanText_NormalizesLineEndings(t *testing.T) {
	got := CleanText("first line\r\nsecond line")

	if got != "first line\nsecond line" {
		t.Errorf("expected CRLF normalized, got %q", got)
	}
}

func TestCleanText_CollapsesSpaceRuns(t *testing.T) {
	got := CleanText("spaced   out\t\ttext")

	if got != "spaced out text" {
		t.Errorf("expected space runs collapsed, got %q", got)
	}
}

func TestCleanText_PreservesParagraphBreaks(t *testing.T) {
	got := CleanText("first paragraph\n\n\n\nsecond paragraph")

	if got != "first paragraph\n\nsecond paragraph" {
		t.Errorf("expected paragraph break preserved, got %q", got)
	}
}

func TestCleanText_TrimsLines(t *testing.T) {
	got := CleanText("  indented line  \n  another  ")

	if got != "indented line\nanother" {
		t.Errorf("expected lines trimmed, got %q", got)
	}
}

func TestCleanText_Empty(t *testing.T) {
	if got := CleanText("   \n\n  "); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
}

func TestLoadDirectory_MissingPath(t *testing.T) {
	pages, errs := LoadDirectory("testdata/does-not-exist")

	if len(pages) != 0 {
		t.Errorf("expected no pages for missing path, got %d", len(pages))
	}

	if len(errs) == 0 {
		t.Error("expected an error for missing path")
	}
}

func TestLoadDirectory_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	pages, errs := LoadDirectory(dir)

	if len(pages) != 0 {
		t.Errorf("expected no pages for empty directory, got %d", len(pages))
	}

	if len(errs) != 0 {
		t.Errorf("expected no errors for empty directory, got %v", errs)
	}
}
