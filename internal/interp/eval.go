package interp

import (
	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/value"
)

func (e *Evaluator) evalExpr(expr ast.Expression, scope *value.Scope, doc ast.DocID) (value.Value, *errors.RuntimeError) {
	switch ex := expr.(type) {
	case *ast.NumberLiteral:
		return value.Number(ex.Value), nil
	case *ast.BoolLiteral:
		return value.Bool(ex.Value), nil
	case *ast.TextLiteral:
		return value.Text(ex.Value), nil
	case *ast.ResourceLiteral:
		return value.Resource{V: ex.Value}, nil
	case *ast.ListLiteral:
		elems := make(value.List, len(ex.Elements))
		for i, el := range ex.Elements {
			v, rerr := e.evalExpr(el, scope, doc)
			if rerr != nil {
				return nil, rerr
			}
			elems[i] = v
		}
		return elems, nil
	case *ast.FunctionLiteral:
		return &value.Function{Body: ex.Body, Closure: scope.Clone()}, nil
	case *ast.Reference:
		v, ok := scope.Get(ex.Name)
		if !ok {
			return nil, errors.NewUnknownIdentifier(ex.Name)
		}
		return v, nil
	case *ast.Property:
		return e.evalProperty(ex, scope, doc)
	case *ast.Index:
		return e.evalIndex(ex, scope, doc)
	case *ast.If:
		return e.evalIf(ex, scope, doc)
	case *ast.Map:
		return e.evalMap(ex, scope, doc)
	case *ast.Reduce:
		return e.evalReduce(ex, scope, doc)
	case *ast.Scope:
		return e.evalScope(ex, scope, doc)
	case *ast.Invocation:
		return e.evalInvocation(ex, scope, doc)
	default:
		return nil, errors.NewUnexpectedType("unknown expression")
	}
}

func (e *Evaluator) evalProperty(ex *ast.Property, scope *value.Scope, doc ast.DocID) (value.Value, *errors.RuntimeError) {
	target, rerr := e.evalExpr(ex.Target, scope, doc)
	if rerr != nil {
		return nil, rerr
	}
	if pt, ok := target.(value.Point); ok {
		switch ex.Name {
		case "x":
			return value.Number(pt.P.X), nil
		case "y":
			return value.Number(pt.P.Y), nil
		case "z":
			return value.Number(pt.P.Z), nil
		}
		return nil, errors.NewMissingProperty(ex.Name)
	}
	si, ok := target.(*value.ScriptInstance)
	if !ok {
		return nil, errors.NewUnexpectedType(value.TypeOf(target).String())
	}
	v, ok := si.Get(ex.Name)
	if !ok {
		return nil, errors.NewMissingProperty(ex.Name)
	}
	return v, nil
}

func (e *Evaluator) evalIndex(ex *ast.Index, scope *value.Scope, doc ast.DocID) (value.Value, *errors.RuntimeError) {
	target, rerr := e.evalExpr(ex.Target, scope, doc)
	if rerr != nil {
		return nil, rerr
	}
	list, ok := value.Unwrap(target).(value.List)
	if !ok {
		return nil, errors.NewUnexpectedType(value.TypeOf(target).String())
	}
	idxVal, rerr := e.evalExpr(ex.Idx, scope, doc)
	if rerr != nil {
		return nil, rerr
	}
	n, ok := value.Unwrap(idxVal).(value.Number)
	if !ok {
		return nil, errors.NewUnexpectedType(value.TypeOf(idxVal).String())
	}
	idx := int(n)
	if idx < 0 || idx >= len(list) {
		return nil, errors.NewIndexOutOfRange(idx, len(list))
	}
	return list[idx], nil
}

func (e *Evaluator) evalIf(ex *ast.If, scope *value.Scope, doc ast.DocID) (value.Value, *errors.RuntimeError) {
	cond, rerr := e.evalExpr(ex.Condition, scope, doc)
	if rerr != nil {
		return nil, rerr
	}
	b, ok := value.Unwrap(cond).(value.Bool)
	if !ok {
		return nil, errors.NewUnexpectedType(value.TypeOf(cond).String())
	}
	if bool(b) {
		return e.evalExpr(ex.Then, scope, doc)
	}
	return e.evalExpr(ex.Else, scope, doc)
}

func (e *Evaluator) evalMap(ex *ast.Map, scope *value.Scope, doc ast.DocID) (value.Value, *errors.RuntimeError) {
	rangeVal, rerr := e.evalExpr(ex.Range, scope, doc)
	if rerr != nil {
		return nil, rerr
	}
	list, ok := value.Unwrap(rangeVal).(value.List)
	if !ok {
		return nil, errors.NewUnexpectedType(value.TypeOf(rangeVal).String())
	}
	out := make(value.List, len(list))
	for i, item := range list {
		child := scope.Clone()
		child.Set(ex.IterName, item)
		v, rerr := e.evalExpr(ex.Body, child, doc)
		if rerr != nil {
			return nil, rerr
		}
		out[i] = v
	}
	return out, nil
}

func (e *Evaluator) evalReduce(ex *ast.Reduce, scope *value.Scope, doc ast.DocID) (value.Value, *errors.RuntimeError) {
	rangeVal, rerr := e.evalExpr(ex.Range, scope, doc)
	if rerr != nil {
		return nil, rerr
	}
	list, ok := value.Unwrap(rangeVal).(value.List)
	if !ok {
		return nil, errors.NewUnexpectedType(value.TypeOf(rangeVal).String())
	}

	var acc value.Value
	elements := list
	if ex.Seed != nil {
		seed, rerr := e.evalExpr(ex.Seed, scope, doc)
		if rerr != nil {
			return nil, rerr
		}
		acc = seed
	} else {
		if len(list) == 0 {
			return nil, errors.NewUserDefined("reduce over an empty list with no seed")
		}
		acc = list[0]
		elements = list[1:]
	}

	for _, item := range elements {
		child := scope.Clone()
		child.Set(ex.Left, acc)
		child.Set(ex.Right, item)
		v, rerr := e.evalExpr(ex.Body, child, doc)
		if rerr != nil {
			return nil, rerr
		}
		acc = v
	}
	return acc, nil
}

func (e *Evaluator) evalScope(ex *ast.Scope, scope *value.Scope, doc ast.DocID) (value.Value, *errors.RuntimeError) {
	child := scope.Clone()
	result, rerr := e.evalStatements(ex.Body, child, doc, nil)
	if rerr != nil {
		return nil, rerr.Push(errors.StackFrame{Doc: string(doc), Span: ex.Span()})
	}
	if result == nil {
		return nil, errors.NewNoReturnValue()
	}
	return result, nil
}
