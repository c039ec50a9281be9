// Package interp evaluates a parsed Document tree against the built-in
// library, producing a ScriptInstance or a RuntimeError carrying a full
// call-stack trace.
package interp

import (
	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/library"
	"github.com/scadlang/dslcad/internal/value"
)

// Evaluator holds everything a tree of document calls needs to resolve:
// every document reachable from the entry point, keyed by its canonical
// id, and the built-in library bound to a geometry backend.
type Evaluator struct {
	Documents map[ast.DocID]*ast.Document
	Library   *library.Library
}

func New(docs map[ast.DocID]*ast.Document, lib *library.Library) *Evaluator {
	return &Evaluator{Documents: docs, Library: lib}
}

// Eval runs the document identified by id with the given top-level
// arguments (typically from -a name=value CLI flags) and returns its
// ScriptInstance.
func (e *Evaluator) Eval(id ast.DocID, args map[string]value.Value) (*value.ScriptInstance, *errors.RuntimeError) {
	doc, ok := e.Documents[id]
	if !ok {
		return nil, errors.NewUnknownIdentifier(string(id))
	}
	return e.evalDocument(doc, args)
}

func (e *Evaluator) evalDocument(doc *ast.Document, args map[string]value.Value) (*value.ScriptInstance, *errors.RuntimeError) {
	si := value.NewScriptInstance(args)
	scope := value.NewScopeWithArguments(args)

	result, rerr := e.evalStatements(doc.Stmts, scope, doc.ID, si)
	if rerr != nil {
		return nil, rerr.Push(errors.StackFrame{Doc: string(doc.ID), Span: docSpan(doc)})
	}
	if result == nil {
		return nil, errors.NewNoReturnValue().Push(errors.StackFrame{Doc: string(doc.ID), Span: docSpan(doc)})
	}
	si.Result = result
	return si, nil
}

func docSpan(doc *ast.Document) ast.Span {
	if len(doc.Stmts) == 0 {
		return ast.Span{}
	}
	first := doc.Stmts[0].Span()
	last := doc.Stmts[len(doc.Stmts)-1].Span()
	return ast.Span{Start: first.Start, End: last.End}
}

// evalStatements runs stmts in order against scope, recording `var`
// bindings onto si (nil when evaluating a plain Scope, not a document or
// function body) and returning the value of the last ReturnExpr seen. A
// document or function with no ReturnExpr at all returns nil with no
// error; callers that require a value reject that themselves.
func (e *Evaluator) evalStatements(stmts []ast.Statement, scope *value.Scope, doc ast.DocID, si *value.ScriptInstance) (value.Value, *errors.RuntimeError) {
	var result value.Value
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *ast.VariableDecl:
			if s.Init == nil {
				if _, ok := scope.Get(s.Name); !ok {
					return nil, errors.NewUnsetParameter(s.Name)
				}
				continue
			}
			if _, provided := scope.Arguments[s.Name]; provided {
				// Caller already supplied this parameter; the initializer
				// is only its default value.
				continue
			}
			v, rerr := e.evalExpr(s.Init, scope, doc)
			if rerr != nil {
				return nil, rerr.Push(errors.StackFrame{Doc: string(doc), Span: s.Span()})
			}
			scope.Set(s.Name, v)
			if si != nil {
				si.SetVariable(s.Name, v)
			}
		case *ast.ReturnExpr:
			v, rerr := e.evalExpr(s.Value, scope, doc)
			if rerr != nil {
				return nil, rerr.Push(errors.StackFrame{Doc: string(doc), Span: s.Span()})
			}
			result = v
		}
	}
	return result, nil
}
