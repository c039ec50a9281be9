// Package parser builds the AST for an entry document and every document
// it transitively calls, resolving identifiers against the built-in
// library and resource files against the resource loader registry as it
// goes.
package parser

import "github.com/scadlang/dslcad/internal/ast"

// Reader abstracts how a document's source text is loaded and how its path
// is canonicalized to a stable DocID, so the parser never touches a
// filesystem directly; a test can supply an in-memory Reader.
type Reader interface {
	Read(path string) (string, error)
	Normalize(path string) (ast.DocID, error)
}
