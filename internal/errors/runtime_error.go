package errors

import (
	"fmt"
	"strings"

	"github.com/scadlang/dslcad/internal/lexer"
)

// RuntimeErrorKind is one of the discriminants an evaluation can fail with.
type RuntimeErrorKind int

const (
	UnknownIdentifier RuntimeErrorKind = iota
	UnsetParameter
	MissingProperty
	UnexpectedType
	ArgumentDoesNotExist
	UnknownFunction
	NoMatchingSignature
	NoReturnValue
	UserDefined
	GeometryBackend
	IndexOutOfRange
)

var runtimeErrorKindNames = [...]string{
	UnknownIdentifier:    "unknown-identifier",
	UnsetParameter:       "unset-parameter",
	MissingProperty:      "missing-property",
	UnexpectedType:       "unexpected-type",
	ArgumentDoesNotExist: "argument-does-not-exist",
	UnknownFunction:      "unknown-function",
	NoMatchingSignature:  "no-matching-signature",
	NoReturnValue:        "no-return-value",
	UserDefined:          "user-defined",
	GeometryBackend:      "geometry-backend",
	IndexOutOfRange:      "index-out-of-range",
}

func (k RuntimeErrorKind) String() string { return runtimeErrorKindNames[k] }

// StackFrame is one statement-evaluation frame: the document it belongs to
// and the span of the statement or expression being evaluated.
type StackFrame struct {
	Doc  string
	Span lexer.Span
}

// RuntimeError is the single error type the evaluator returns. Frames
// accumulate innermost-first as the call stack unwinds (via Push) and are
// printed outermost-first by FormatWithStack.
type RuntimeError struct {
	Kind    RuntimeErrorKind
	Message string
	Frames  []StackFrame
}

func (e *RuntimeError) Error() string { return e.Message }

// Push returns a copy of e with frame appended, used by the evaluator as an
// error propagates back up through enclosing statement evaluations.
func (e *RuntimeError) Push(frame StackFrame) *RuntimeError {
	frames := make([]StackFrame, len(e.Frames), len(e.Frames)+1)
	copy(frames, e.Frames)
	frames = append(frames, frame)
	return &RuntimeError{Kind: e.Kind, Message: e.Message, Frames: frames}
}

func newRuntimeError(kind RuntimeErrorKind, message string) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: message}
}

func NewUnknownIdentifier(name string) *RuntimeError {
	return newRuntimeError(UnknownIdentifier, fmt.Sprintf("unknown identifier %q", name))
}

func NewUnsetParameter(name string) *RuntimeError {
	return newRuntimeError(UnsetParameter, fmt.Sprintf("parameter %q was never set", name))
}

func NewMissingProperty(name string) *RuntimeError {
	return newRuntimeError(MissingProperty, fmt.Sprintf("missing property %q", name))
}

func NewUnexpectedType(got string) *RuntimeError {
	return newRuntimeError(UnexpectedType, fmt.Sprintf("unexpected type %s", got))
}

func NewArgumentDoesNotExist(fn, name string) *RuntimeError {
	return newRuntimeError(ArgumentDoesNotExist, fmt.Sprintf("%s has no argument named %q", fn, name))
}

func NewUnknownFunction(name string) *RuntimeError {
	return newRuntimeError(UnknownFunction, fmt.Sprintf("unknown function %q", name))
}

func NewNoMatchingSignature(requested string, candidates []string) *RuntimeError {
	msg := fmt.Sprintf("no signature matches %s\ncandidates:\n  %s", requested, strings.Join(candidates, "\n  "))
	return newRuntimeError(NoMatchingSignature, msg)
}

func NewNoReturnValue() *RuntimeError {
	return newRuntimeError(NoReturnValue, "document has no return value")
}

func NewUserDefined(text string) *RuntimeError {
	return newRuntimeError(UserDefined, text)
}

func NewGeometryBackend(msg string) *RuntimeError {
	return newRuntimeError(GeometryBackend, fmt.Sprintf("geometry backend error: %s", msg))
}

func NewIndexOutOfRange(idx, length int) *RuntimeError {
	return newRuntimeError(IndexOutOfRange, fmt.Sprintf("index %d out of range for list of length %d", idx, length))
}

// FormatWithStack renders the error's message followed by a stacktrace
// section, one "<doc>[<line>]: <source>" line per frame. Frames are stored
// innermost-first and printed in reverse, so the outermost frame prints
// first and the immediate failure site prints last. sources maps a
// document id to its original text.
func FormatWithStack(e *RuntimeError, sources map[string]string) string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	sb.WriteString("\n")

	if len(e.Frames) == 0 {
		return sb.String()
	}

	sb.WriteString("--- STACKTRACE ---\n")
	for i := len(e.Frames) - 1; i >= 0; i-- {
		f := e.Frames[i]
		src := sources[f.Doc]
		line, _ := lexer.LineCol(src, f.Span)
		snippet := strings.TrimSpace(lexer.SourceLine(src, line))
		sb.WriteString(fmt.Sprintf("%s[%d]: %s\n", f.Doc, line, snippet))
	}
	return sb.String()
}
