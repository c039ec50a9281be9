package errors

import (
	"strings"
	"testing"

	"github.com/scadlang/dslcad/internal/lexer"
)

func TestParseErrorFormatShowsCaret(t *testing.T) {
	src := "var x = y;\n"
	err := NewUndeclaredIdentifier("main.ds", lexer.Span{Start: 8, End: 9}, "y").WithSource(src)

	out := err.Format(false)
	if !strings.Contains(out, "Error in main.ds:1:9") {
		t.Fatalf("missing header: %s", out)
	}
	if !strings.Contains(out, `undeclared identifier "y"`) {
		t.Fatalf("missing message: %s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("missing caret: %s", out)
	}
}

func TestAggregateFormatsAllChildren(t *testing.T) {
	agg := NewAggregate([]*ParseError{
		NewNoSuchFile("a.ds"),
		NewNoSuchFile("b.ds"),
	})
	out := agg.Format(false)
	if !strings.Contains(out, "a.ds") || !strings.Contains(out, "b.ds") {
		t.Fatalf("expected both children rendered: %s", out)
	}
}

func TestRuntimeErrorStack(t *testing.T) {
	sources := map[string]string{"main.ds": "cube();\n"}
	err := NewUnknownFunction("cubee").Push(StackFrame{Doc: "main.ds", Span: lexer.Span{Start: 0, End: 7}})

	out := FormatWithStack(err, sources)
	if !strings.Contains(out, "unknown function") {
		t.Fatalf("missing message: %s", out)
	}
	if !strings.Contains(out, "main.ds[1]: cube();") {
		t.Fatalf("missing frame: %s", out)
	}
}
