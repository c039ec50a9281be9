// Package errors formats the two diagnostic surfaces produced by this
// module: ParseError (source-context, caret-annotated) and RuntimeError
// (a message plus a reversed call stack).
package errors

import (
	"fmt"
	"strings"

	"github.com/scadlang/dslcad/internal/lexer"
)

// ParseErrorKind is one of the discriminants a parse can fail with.
type ParseErrorKind int

const (
	NoSuchFile ParseErrorKind = iota
	UnexpectedEndOfFile
	Expected
	ExpectedOneOf
	UndeclaredIdentifier
	DuplicateVariableName
	ParametersNotAllowedInScope
	UnknownResourceType
	Aggregate
)

var parseErrorKindNames = [...]string{
	NoSuchFile:                  "no-such-file",
	UnexpectedEndOfFile:         "unexpected-end-of-file",
	Expected:                    "expected",
	ExpectedOneOf:               "expected-one-of",
	UndeclaredIdentifier:        "undeclared-identifier",
	DuplicateVariableName:       "duplicate-variable-name",
	ParametersNotAllowedInScope: "parameters-not-allowed-in-scope",
	UnknownResourceType:         "unknown-resource-type",
	Aggregate:                   "aggregate",
}

func (k ParseErrorKind) String() string { return parseErrorKindNames[k] }

// ParseError is a single parse failure, or an Aggregate of several. Doc and
// Span locate it; Source is attached once the failing document's text is
// known so Format can render a caret line.
type ParseError struct {
	Kind     ParseErrorKind
	Doc      string
	Span     lexer.Span
	Text     string   // offending identifier / expected-what / resource extension, kind-dependent
	Options  []string // candidate names, for ExpectedOneOf
	Children []*ParseError
	Source   string
}

func NewNoSuchFile(path string) *ParseError {
	return &ParseError{Kind: NoSuchFile, Text: path}
}

func NewUnexpectedEndOfFile(doc string) *ParseError {
	return &ParseError{Kind: UnexpectedEndOfFile, Doc: doc}
}

func NewExpected(doc string, span lexer.Span, what string) *ParseError {
	return &ParseError{Kind: Expected, Doc: doc, Span: span, Text: what}
}

func NewExpectedOneOf(doc string, span lexer.Span, options []string) *ParseError {
	return &ParseError{Kind: ExpectedOneOf, Doc: doc, Span: span, Options: options}
}

func NewUndeclaredIdentifier(doc string, span lexer.Span, name string) *ParseError {
	return &ParseError{Kind: UndeclaredIdentifier, Doc: doc, Span: span, Text: name}
}

func NewDuplicateVariableName(doc string, span lexer.Span, name string) *ParseError {
	return &ParseError{Kind: DuplicateVariableName, Doc: doc, Span: span, Text: name}
}

func NewParametersNotAllowedInScope(doc string, span lexer.Span, name string) *ParseError {
	return &ParseError{Kind: ParametersNotAllowedInScope, Doc: doc, Span: span, Text: name}
}

func NewUnknownResourceType(doc string, span lexer.Span, ext string) *ParseError {
	return &ParseError{Kind: UnknownResourceType, Doc: doc, Span: span, Text: ext}
}

func NewAggregate(errs []*ParseError) *ParseError {
	return &ParseError{Kind: Aggregate, Children: errs}
}

// WithSource returns a copy of e (and, for Aggregate, its children) with
// Source attached, needed before Format can print a source line.
func (e *ParseError) WithSource(source string) *ParseError {
	cp := *e
	cp.Source = source
	cp.Children = make([]*ParseError, len(e.Children))
	for i, c := range e.Children {
		cp.Children[i] = c.WithSource(source)
	}
	return &cp
}

func (e *ParseError) Error() string { return e.Format(false) }

// message renders the kind-specific text, without location or context.
func (e *ParseError) message() string {
	switch e.Kind {
	case NoSuchFile:
		return fmt.Sprintf("no such file: %s", e.Text)
	case UnexpectedEndOfFile:
		return "unexpected end of file"
	case Expected:
		return fmt.Sprintf("expected %s", e.Text)
	case ExpectedOneOf:
		return fmt.Sprintf("expected one of %s", strings.Join(e.Options, ", "))
	case UndeclaredIdentifier:
		return fmt.Sprintf("undeclared identifier %q", e.Text)
	case DuplicateVariableName:
		return fmt.Sprintf("duplicate variable name %q", e.Text)
	case ParametersNotAllowedInScope:
		return fmt.Sprintf("parameter declarations are not allowed in this scope: %q", e.Text)
	case UnknownResourceType:
		return fmt.Sprintf("unknown resource type: %q", e.Text)
	default:
		return e.Kind.String()
	}
}

// Format renders the error with a file:line:col header, the offending
// source line, a caret pointing at the span, and the message. If color is
// true, the caret and message use ANSI escapes.
func (e *ParseError) Format(color bool) string {
	if e.Kind == Aggregate {
		parts := make([]string, len(e.Children))
		for i, c := range e.Children {
			parts[i] = c.Format(color)
		}
		return strings.Join(parts, "\n")
	}

	var sb strings.Builder

	if e.Doc != "" && e.Source != "" && e.Span != (lexer.Span{}) {
		line, col := lexer.LineCol(e.Source, e.Span)
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.Doc, line, col.Start))

		srcLine := lexer.SourceLine(e.Source, line)
		gutter := fmt.Sprintf("%4d | ", line)
		sb.WriteString(gutter)
		sb.WriteString(srcLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(gutter)+col.Start-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString(strings.Repeat("^", max(1, col.End-col.Start)))
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	} else if e.Doc != "" {
		sb.WriteString(fmt.Sprintf("Error in %s\n", e.Doc))
	} else {
		sb.WriteString("Error\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.message())
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
