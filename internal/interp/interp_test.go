package interp

import (
	"testing"

	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/library"
	"github.com/scadlang/dslcad/internal/value"
)

func sp() ast.Span { return ast.Span{Start: 0, End: 1} }

func num(n float64) *ast.NumberLiteral { return ast.NewNumberLiteral(n, sp()) }

func ref(name string) *ast.Reference { return ast.NewReference(name, sp()) }

func call(name string, args ...ast.Argument) *ast.Invocation {
	return ast.NewInvocation(ast.FunctionCallPath{Callee: ref(name)}, args, sp())
}

func named(name string, v ast.Expression) ast.Argument { return ast.Argument{Name: name, Value: v} }

func newEval(stmts ...ast.Statement) *Evaluator {
	docs := map[ast.DocID]*ast.Document{
		"main": {ID: "main", Stmts: stmts, Declared: map[string]bool{}},
	}
	lib := library.New(geom.NewReference())
	return New(docs, lib)
}

func TestEvalArithmeticCall(t *testing.T) {
	e := newEval(
		ast.NewReturnExpr(call("add", named("left", num(1)), named("right", num(2))), sp()),
	)
	si, rerr := e.Eval("main", nil)
	if rerr != nil {
		t.Fatal(rerr)
	}
	if si.Result.(value.Number) != 3 {
		t.Fatalf("expected 3, got %v", si.Result)
	}
}

func TestEvalVariableAndReference(t *testing.T) {
	e := newEval(
		ast.NewVariableDecl("x", num(5), sp()),
		ast.NewReturnExpr(ref("x"), sp()),
	)
	si, rerr := e.Eval("main", nil)
	if rerr != nil {
		t.Fatal(rerr)
	}
	if si.Result.(value.Number) != 5 {
		t.Fatalf("expected 5, got %v", si.Result)
	}
}

func TestEvalRequiredParameterMustBeProvided(t *testing.T) {
	e := newEval(
		ast.NewVariableDecl("x", nil, sp()),
		ast.NewReturnExpr(ref("x"), sp()),
	)
	_, rerr := e.Eval("main", nil)
	if rerr == nil {
		t.Fatal("expected unset-parameter error")
	}
}

func TestEvalRequiredParameterSuppliedByCaller(t *testing.T) {
	e := newEval(
		ast.NewVariableDecl("x", nil, sp()),
		ast.NewReturnExpr(ref("x"), sp()),
	)
	si, rerr := e.Eval("main", map[string]value.Value{"x": value.Number(9)})
	if rerr != nil {
		t.Fatal(rerr)
	}
	if si.Result.(value.Number) != 9 {
		t.Fatalf("expected 9, got %v", si.Result)
	}
}

func TestEvalIf(t *testing.T) {
	e := newEval(
		ast.NewReturnExpr(ast.NewIf(call("equals", named("left", num(1)), named("right", num(1))), num(10), num(20), sp()), sp()),
	)
	si, rerr := e.Eval("main", nil)
	if rerr != nil {
		t.Fatal(rerr)
	}
	if si.Result.(value.Number) != 10 {
		t.Fatalf("expected 10, got %v", si.Result)
	}
}

func TestEvalMap(t *testing.T) {
	list := ast.NewListLiteral([]ast.Expression{num(1), num(2), num(3)}, sp())
	body := call("add", named("left", ref("n")), named("right", num(1)))
	e := newEval(
		ast.NewReturnExpr(ast.NewMap("n", list, body, sp()), sp()),
	)
	si, rerr := e.Eval("main", nil)
	if rerr != nil {
		t.Fatal(rerr)
	}
	result := si.Result.(value.List)
	if len(result) != 3 || result[0].(value.Number) != 2 {
		t.Fatalf("unexpected map result: %v", result)
	}
}

func TestEvalUnknownIdentifierCarriesStackFrame(t *testing.T) {
	e := newEval(
		ast.NewReturnExpr(ref("missing"), sp()),
	)
	_, rerr := e.Eval("main", nil)
	if rerr == nil {
		t.Fatal("expected error")
	}
	if len(rerr.Frames) == 0 {
		t.Fatal("expected at least one stack frame")
	}
}

func TestEvalIndexOutOfRange(t *testing.T) {
	list := ast.NewListLiteral([]ast.Expression{num(1), num(2)}, sp())
	e := newEval(
		ast.NewReturnExpr(ast.NewIndex(list, num(5), sp()), sp()),
	)
	_, rerr := e.Eval("main", nil)
	if rerr == nil {
		t.Fatal("expected index-out-of-range error")
	}
}
