package interp

import (
	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/value"
)

func paramNames(stmts []ast.Statement) []string {
	var names []string
	for _, s := range stmts {
		if vd, ok := s.(*ast.VariableDecl); ok {
			names = append(names, vd.Name)
		}
	}
	return names
}

// bindArguments evaluates each argument expression and names it: a named
// argument keeps its name, an unnamed (positional) argument takes the next
// name from paramOrder in turn. paramOrder is the callee's own declared
// parameter order for a document or function call; for a library call it
// is the first registered overload's argument order, since overloads
// sharing a name are expected to share a natural leading argument order.
func (e *Evaluator) bindArguments(argNodes []ast.Argument, paramOrder []string, scope *value.Scope, doc ast.DocID) (map[string]value.Value, *errors.RuntimeError) {
	args := make(map[string]value.Value, len(argNodes))
	pos := 0
	for _, a := range argNodes {
		v, rerr := e.evalExpr(a.Value, scope, doc)
		if rerr != nil {
			return nil, rerr
		}
		name := a.Name
		if name == "" {
			if pos >= len(paramOrder) {
				return nil, errors.NewArgumentDoesNotExist("call", "<extra positional argument>")
			}
			name = paramOrder[pos]
			pos++
		}
		args[name] = v
	}
	return args, nil
}

func (e *Evaluator) evalInvocation(ex *ast.Invocation, scope *value.Scope, doc ast.DocID) (value.Value, *errors.RuntimeError) {
	switch path := ex.Path.(type) {
	case ast.DocumentCallPath:
		target, ok := e.Documents[path.Doc]
		if !ok {
			return nil, errors.NewUnknownIdentifier(string(path.Doc))
		}
		args, rerr := e.bindArguments(ex.Arguments, paramNames(target.Stmts), scope, doc)
		if rerr != nil {
			return nil, rerr
		}
		si, rerr := e.evalDocument(target, args)
		if rerr != nil {
			return nil, rerr.Push(errors.StackFrame{Doc: string(doc), Span: ex.Span()})
		}
		return si, nil
	case ast.FunctionCallPath:
		return e.evalFunctionCall(path.Callee, ex.Arguments, scope, doc, ex.Span())
	default:
		return nil, errors.NewUnexpectedType("call target")
	}
}

func (e *Evaluator) evalFunctionCall(callee ast.Expression, argNodes []ast.Argument, scope *value.Scope, doc ast.DocID, span ast.Span) (value.Value, *errors.RuntimeError) {
	if ref, ok := callee.(*ast.Reference); ok {
		if v, found := scope.Get(ref.Name); found {
			if fn, ok := value.Unwrap(v).(*value.Function); ok {
				return e.callFunction(fn, argNodes, scope, doc, span)
			}
		}
		if e.Library.Contains(ref.Name) {
			return e.callLibrary(ref.Name, argNodes, scope, doc, span)
		}
		return nil, errors.NewUnknownFunction(ref.Name)
	}

	v, rerr := e.evalExpr(callee, scope, doc)
	if rerr != nil {
		return nil, rerr
	}
	fn, ok := value.Unwrap(v).(*value.Function)
	if !ok {
		return nil, errors.NewUnexpectedType(value.TypeOf(v).String())
	}
	return e.callFunction(fn, argNodes, scope, doc, span)
}

func (e *Evaluator) callFunction(fn *value.Function, argNodes []ast.Argument, scope *value.Scope, doc ast.DocID, span ast.Span) (value.Value, *errors.RuntimeError) {
	args, rerr := e.bindArguments(argNodes, paramNames(fn.Body), scope, doc)
	if rerr != nil {
		return nil, rerr
	}
	callScope := fn.Closure.Clone()
	for k, v := range args {
		callScope.Arguments[k] = v
	}
	si := value.NewScriptInstance(args)
	result, rerr := e.evalStatements(fn.Body, callScope, doc, si)
	if rerr != nil {
		return nil, rerr.Push(errors.StackFrame{Doc: string(doc), Span: span})
	}
	si.Result = result
	return si, nil
}

func (e *Evaluator) callLibrary(name string, argNodes []ast.Argument, scope *value.Scope, doc ast.DocID, span ast.Span) (value.Value, *errors.RuntimeError) {
	primary := e.Library.PrimaryParamNames(name)
	args, rerr := e.bindArguments(argNodes, primary, scope, doc)
	if rerr != nil {
		return nil, rerr
	}

	argTypes := make(map[string]value.Type, len(args))
	for k, v := range args {
		argTypes[k] = value.TypeOf(v)
	}

	handler, err := e.Library.Find(name, argTypes)
	if err != nil {
		rerr, _ := err.(*errors.RuntimeError)
		return nil, rerr.Push(errors.StackFrame{Doc: string(doc), Span: span})
	}

	result, err := handler(args)
	if err != nil {
		rerr, ok := err.(*errors.RuntimeError)
		if !ok {
			rerr = errors.NewUserDefined(err.Error())
		}
		return nil, rerr.Push(errors.StackFrame{Doc: string(doc), Span: span})
	}
	return result, nil
}
