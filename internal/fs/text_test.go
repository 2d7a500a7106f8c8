package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsTextFileDetectsUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	if !IsTextFile(content) {
		t.Fatalf("expected UTF-16 LE content to be treated as text")
	}
}

func TestIsTextFileRejectsNULHeavyContent(t *testing.T) {
	content := []byte{0x7F, 'E', 'L', 'F', 0x02, 0x01, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}
	if IsTextFile(content) {
		t.Fatalf("expected ELF header to be treated as binary")
	}
}

func TestNormalizeTextContentUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	got := NormalizeTextContent(content)
	want := "A\r\n"
	if got != want {
		t.Fatalf("NormalizeTextContent returned %q, want %q", got, want)
	}
}

func TestReadTextPrefixCapsRunes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("a", 5000)), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTextPrefix(path, 1000)
	if err != nil {
		t.Fatalf("ReadTextPrefix: %v", err)
	}
	if len(got) != 1000 {
		t.Fatalf("expected 1000 chars, got %d", len(got))
	}
}

func TestReadTextPrefixCountsMultibyteRunes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "polish.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("żółć", 10)), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadTextPrefix(path, 6)
	if err != nil {
		t.Fatalf("ReadTextPrefix: %v", err)
	}
	if got != "żółćżó" {
		t.Fatalf("unexpected prefix %q", got)
	}
}

func TestReadTextPrefixMissingFile(t *testing.T) {
	if _, err := ReadTextPrefix(filepath.Join(t.TempDir(), "nope"), 10); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTrimPartialRune(t *testing.T) {
	full := []byte("aż")
	cut := full[:len(full)-1]
	if got := string(trimPartialRune(cut)); got != "a" {
		t.Fatalf("expected partial rune to be dropped, got %q", got)
	}
	if got := string(trimPartialRune(full)); got != "aż" {
		t.Fatalf("expected complete content to be kept, got %q", got)
	}
}
