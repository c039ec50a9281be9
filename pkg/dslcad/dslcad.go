// Package dslcad is the public entry point gluing the parser, evaluator,
// library and geometry backend together for callers that don't want to
// wire internal packages themselves (the CLI is one such caller).
package dslcad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/fsreader"
	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/interp"
	"github.com/scadlang/dslcad/internal/library"
	"github.com/scadlang/dslcad/internal/parser"
	"github.com/scadlang/dslcad/internal/resources"
	"github.com/scadlang/dslcad/internal/value"
)

// Program is an entry document and every document it reaches, parsed and
// ready to evaluate.
type Program struct {
	Documents map[ast.DocID]*ast.Document
	Entry     ast.DocID
	Library   *library.Library
}

// Parse reads path and everything it transitively calls from disk, against
// the given geometry backend's library.
func Parse(path string, backend geom.Backend) (*Program, *errors.ParseError) {
	lib := library.New(backend)
	p := parser.New(fsreader.New(), lib, resources.NewRegistry())
	docs, entry, err := p.Parse(path)
	if err != nil {
		return nil, err
	}
	return &Program{Documents: docs, Entry: entry, Library: lib}, nil
}

// Eval evaluates prog's entry document with the given top-level arguments.
func (prog *Program) Eval(args map[string]value.Value) (*value.ScriptInstance, *errors.RuntimeError) {
	eval := interp.New(prog.Documents, prog.Library)
	return eval.Eval(prog.Entry, args)
}

// Render parses path, evaluates it with args and flattens its result into
// renderable Parts, tessellating any Shape at deflection.
func Render(path string, backend geom.Backend, args map[string]value.Value, deflection float64) ([]interp.Part, *errors.RuntimeError) {
	prog, perr := Parse(path, backend)
	if perr != nil {
		return nil, errors.NewUserDefined(perr.Error())
	}
	si, rerr := prog.Eval(args)
	if rerr != nil {
		return nil, rerr
	}
	parts, err := interp.ToParts(si, backend, deflection)
	if err != nil {
		return nil, errors.NewUserDefined(err.Error())
	}
	return parts, nil
}

// Cheatsheet renders the library's built-in function reference for the
// given backend.
func Cheatsheet(backend geom.Backend) string {
	return library.New(backend).String()
}

// ParseArguments converts "name=value" CLI strings (as repeated -a flags)
// into top-level argument bindings: "true"/"false" become Bool, anything
// parseable as a float64 becomes Number, everything else is Text.
func ParseArguments(pairs []string) (map[string]value.Value, error) {
	out := map[string]value.Value{}
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid argument %q: expected name=value", pair)
		}
		out[name] = coerceArgument(raw)
	}
	return out, nil
}

func coerceArgument(raw string) value.Value {
	switch raw {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return value.Number(n)
	}
	return value.Text(raw)
}
