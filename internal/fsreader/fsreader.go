// Package fsreader is the filesystem-backed parser.Reader used by the CLI
// and by pkg/dslcad's convenience entry points.
package fsreader

import (
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/scadlang/dslcad/internal/ast"
)

// FS reads documents from disk and canonicalizes their paths so that two
// different relative spellings of the same file resolve to the same
// ast.DocID.
type FS struct{}

// New returns a ready-to-use FS. It carries no state of its own.
func New() *FS { return &FS{} }

// Read loads path's contents and normalizes its Unicode form to NFC, so
// source comparison and identifier matching are stable across whatever
// normalization form the editor that wrote the file used.
func (FS) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(string(data)), nil
}

// Normalize resolves path to an absolute, symlink-free form so repeated or
// aliased references to the same file collapse to one DocID.
func (FS) Normalize(path string) (ast.DocID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return ast.DocID(resolved), nil
}
