package fsreader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadNormalizesToNFC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ds")
	decomposedCafe := "café;" // e + combining acute accent
	if err := os.WriteFile(path, []byte(decomposedCafe), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := New()
	text, err := fs.Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if text == decomposedCafe {
		t.Fatal("expected the combining accent to be composed into a single NFC code point")
	}
}

func TestNormalizeCollapsesRelativeAliases(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.ds")
	if err := os.WriteFile(path, []byte("1;"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := New()
	idA, err := fs.Normalize(path)
	if err != nil {
		t.Fatal(err)
	}
	idB, err := fs.Normalize(filepath.Join(dir, ".", "a.ds"))
	if err != nil {
		t.Fatal(err)
	}
	if idA != idB {
		t.Fatalf("expected both spellings to normalize to the same id: %s vs %s", idA, idB)
	}
}

func TestNormalizeMissingFileErrors(t *testing.T) {
	fs := New()
	if _, err := fs.Normalize(filepath.Join(t.TempDir(), "missing.ds")); err == nil {
		t.Fatal("expected an error for a nonexistent file")
	}
}
