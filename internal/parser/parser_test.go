package parser

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/library"
	"github.com/scadlang/dslcad/internal/resources"
)

// memReader is an in-memory Reader double keyed by the absolute path each
// file would canonicalize to; paths here are already "absolute" in form so
// Normalize is a pure passthrough.
type memReader struct {
	files map[string]string
}

func (m *memReader) Read(path string) (string, error) {
	text, ok := m.files[path]
	if !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return text, nil
}

func (m *memReader) Normalize(path string) (ast.DocID, error) {
	if _, ok := m.files[path]; !ok {
		return "", fmt.Errorf("no such file: %s", path)
	}
	return ast.DocID(filepath.Clean(path)), nil
}

func newParser(files map[string]string) *Parser {
	return New(&memReader{files: files}, library.New(geom.NewReference()), resources.NewRegistry())
}

func TestParseArithmeticDesugarsToLibraryCalls(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "1 + 2 * 3;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	doc := docs[entry]
	if len(doc.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(doc.Stmts))
	}
	ret, ok := doc.Stmts[0].(*ast.ReturnExpr)
	if !ok {
		t.Fatalf("expected ReturnExpr, got %T", doc.Stmts[0])
	}
	inv, ok := ret.Value.(*ast.Invocation)
	if !ok {
		t.Fatalf("expected top-level call to desugar to an Invocation, got %T", ret.Value)
	}
	path, ok := inv.Path.(ast.FunctionCallPath)
	if !ok {
		t.Fatalf("expected FunctionCallPath, got %T", inv.Path)
	}
	ref, ok := path.Callee.(*ast.Reference)
	if !ok || ref.Name != "add" {
		t.Fatalf("expected outermost call to be add (lowest precedence), got %v", path.Callee)
	}
	if len(inv.Arguments) != 2 || inv.Arguments[0].Name != "left" || inv.Arguments[1].Name != "right" {
		t.Fatalf("unexpected arguments: %+v", inv.Arguments)
	}
	right, ok := inv.Arguments[1].Value.(*ast.Invocation)
	if !ok {
		t.Fatalf("expected right operand to be the multiply call, got %T", inv.Arguments[1].Value)
	}
	rightRef := right.Path.(ast.FunctionCallPath).Callee.(*ast.Reference)
	if rightRef.Name != "multiply" {
		t.Fatalf("expected multiply to bind tighter than add, got %s", rightRef.Name)
	}
}

func TestParseUnaryMinusDesugarsToSubtractFromZero(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "-5;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	inv := ret.Value.(*ast.Invocation)
	ref := inv.Path.(ast.FunctionCallPath).Callee.(*ast.Reference)
	if ref.Name != "subtract" {
		t.Fatalf("expected subtract, got %s", ref.Name)
	}
	left := inv.Arguments[0].Value.(*ast.NumberLiteral)
	if left.Value != 0 {
		t.Fatalf("expected left operand to be 0, got %v", left.Value)
	}
}

func TestParseVariableDeclarationAndReference(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "var width = 10; width;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	doc := docs[entry]
	if len(doc.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(doc.Stmts))
	}
	if !doc.Declared["width"] {
		t.Fatal("expected width to be recorded as a declared top-level name")
	}
}

func TestParseRequiredParameterWithNoInitializer(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "var width; width;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	decl := docs[entry].Stmts[0].(*ast.VariableDecl)
	if decl.Init != nil {
		t.Fatal("expected a nil Init for a required parameter")
	}
}

func TestParseGroupingParenIsNotAScope(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "(1 + 2);"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	if _, ok := ret.Value.(*ast.Scope); ok {
		t.Fatal("a single grouped expression must not become a Scope")
	}
	if _, ok := ret.Value.(*ast.Invocation); !ok {
		t.Fatalf("expected the grouped add call, got %T", ret.Value)
	}
}

func TestParseBraceWithSemicolonIsAScope(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "{ var x = 1; x + 1; };"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	scope, ok := ret.Value.(*ast.Scope)
	if !ok {
		t.Fatalf("expected a Scope, got %T", ret.Value)
	}
	if len(scope.Body) != 2 {
		t.Fatalf("expected 2 statements inside the scope, got %d", len(scope.Body))
	}
}

func TestParseFunctionLiteralAllowsParameters(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "var f = func { var n; n + 1; }; f(n=2);"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	decl := docs[entry].Stmts[0].(*ast.VariableDecl)
	fn, ok := decl.Init.(*ast.FunctionLiteral)
	if !ok {
		t.Fatalf("expected a FunctionLiteral, got %T", decl.Init)
	}
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 statements in function body, got %d", len(fn.Body))
	}
}

func TestParseIf(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "if true: 10 else: 0;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	ifExpr, ok := ret.Value.(*ast.If)
	if !ok {
		t.Fatalf("expected an If, got %T", ret.Value)
	}
	if _, ok := ifExpr.Condition.(*ast.BoolLiteral); !ok {
		t.Fatalf("expected bool condition, got %T", ifExpr.Condition)
	}
	then, ok := ifExpr.Then.(*ast.NumberLiteral)
	if !ok || then.Value != 10 {
		t.Fatalf("expected then-branch 10, got %v", ifExpr.Then)
	}
}

func TestParseIfElseIfChains(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "if true: 1 else if false: 2 else: 3;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	outer := ret.Value.(*ast.If)
	inner, ok := outer.Else.(*ast.If)
	if !ok {
		t.Fatalf("expected a chained If in the else branch, got %T", outer.Else)
	}
	if _, ok := inner.Else.(*ast.NumberLiteral); !ok {
		t.Fatalf("expected a final else expression, got %T", inner.Else)
	}
}

func TestParseStringLiteralDecodesEscapes(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": `"a\tb\"c\\d\n";`})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	text, ok := ret.Value.(*ast.TextLiteral)
	if !ok {
		t.Fatalf("expected a TextLiteral, got %T", ret.Value)
	}
	want := "a\tb\"c\\d\n"
	if text.Value != want {
		t.Fatalf("expected %q, got %q", want, text.Value)
	}
}

func TestParseMap(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "map [1, 2, 3] as i: i * i;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	mapExpr, ok := ret.Value.(*ast.Map)
	if !ok {
		t.Fatalf("expected a Map, got %T", ret.Value)
	}
	if mapExpr.IterName != "i" {
		t.Fatalf("unexpected iter name: %s", mapExpr.IterName)
	}
	if _, ok := mapExpr.Range.(*ast.ListLiteral); !ok {
		t.Fatalf("expected list literal range, got %T", mapExpr.Range)
	}
}

func TestParseReduceWithSeed(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "reduce [1, 2, 3] from 0 as acc, x: acc + x;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	red, ok := ret.Value.(*ast.Reduce)
	if !ok {
		t.Fatalf("expected a Reduce, got %T", ret.Value)
	}
	if red.Left != "acc" || red.Right != "x" {
		t.Fatalf("unexpected bindings: %s, %s", red.Left, red.Right)
	}
	if red.Seed == nil {
		t.Fatal("expected a seed expression")
	}
}

func TestParseReduceWithoutSeed(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "reduce [1, 2, 3] as acc, x: acc + x;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	red := ret.Value.(*ast.Reduce)
	if red.Seed != nil {
		t.Fatal("expected a nil seed")
	}
}

func TestParseInjectNamedArgument(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "5 -> right add(left=1);"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	inv := ret.Value.(*ast.Invocation)
	if len(inv.Arguments) != 2 {
		t.Fatalf("expected 2 arguments after injection, got %d", len(inv.Arguments))
	}
	if inv.Arguments[0].Name != "right" {
		t.Fatalf("expected the injected argument to be named 'right', got %q", inv.Arguments[0].Name)
	}
}

func TestParseInjectPositionalArgument(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "[1, 2, 3] -> length();"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	inv := ret.Value.(*ast.Invocation)
	ref := inv.Path.(ast.FunctionCallPath).Callee.(*ast.Reference)
	if ref.Name != "length" {
		t.Fatalf("expected the callee to be length, got %s", ref.Name)
	}
	if len(inv.Arguments) != 1 || inv.Arguments[0].Name != "" {
		t.Fatalf("expected one unnamed positional argument, got %+v", inv.Arguments)
	}
}

func TestParseResourcePathLoadsImmediately(t *testing.T) {
	p := newParser(map[string]string{
		"/a.ds":       `./config.json;`,
		"/config.json": `{"width": 3}`,
	})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	res, ok := ret.Value.(*ast.ResourceLiteral)
	if !ok {
		t.Fatalf("expected a ResourceLiteral, got %T", ret.Value)
	}
	m := res.Value.(map[string]any)
	if m["width"].(float64) != 3 {
		t.Fatalf("unexpected resource contents: %v", m)
	}
}

func TestParseDocumentCallEnqueuesAndResolves(t *testing.T) {
	p := newParser(map[string]string{
		"/a.ds": `./box.ds(size=2);`,
		"/box.ds": `var size; size;`,
	})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[0].(*ast.ReturnExpr)
	inv, ok := ret.Value.(*ast.Invocation)
	if !ok {
		t.Fatalf("expected an Invocation, got %T", ret.Value)
	}
	docPath, ok := inv.Path.(ast.DocumentCallPath)
	if !ok {
		t.Fatalf("expected a DocumentCallPath, got %T", inv.Path)
	}
	if _, ok := docs[docPath.Doc]; !ok {
		t.Fatal("expected the called document to have been parsed too")
	}
	if len(docs) != 2 {
		t.Fatalf("expected exactly 2 parsed documents, got %d", len(docs))
	}
}

func TestParseSameDocumentCalledTwiceIsParsedOnce(t *testing.T) {
	p := newParser(map[string]string{
		"/a.ds":   `./box.ds(); ./box.ds();`,
		"/box.ds": `1;`,
	})
	docs, _, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected exactly 2 distinct documents, got %d", len(docs))
	}
}

func TestParseDuplicateVariableNameIsAnError(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "var x = 1; var x = 2; x;"})
	_, _, err := p.Parse("/a.ds")
	if err == nil {
		t.Fatal("expected an aggregate parse error for the duplicate declaration")
	}
}

func TestParseUndeclaredIdentifierIsAnError(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "doesNotExist;"})
	_, _, err := p.Parse("/a.ds")
	if err == nil {
		t.Fatal("expected an error for an undeclared identifier")
	}
}

func TestParseMissingFileIsAnError(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": `./missing.ds();`})
	_, _, err := p.Parse("/a.ds")
	if err == nil {
		t.Fatal("expected an error for a document call to a file that doesn't exist")
	}
}

func TestParseScopeRejectsBareParameterDeclaration(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "{ var x; x; };"})
	_, _, err := p.Parse("/a.ds")
	if err == nil {
		t.Fatal("expected an error: a plain scope may not declare a required parameter")
	}
}

func TestParsePropertySuffix(t *testing.T) {
	p := newParser(map[string]string{"/a.ds": "var p = point(x=1, y=2); p.x;"})
	docs, entry, err := p.Parse("/a.ds")
	if err != nil {
		t.Fatal(err)
	}
	ret := docs[entry].Stmts[1].(*ast.ReturnExpr)
	prop, ok := ret.Value.(*ast.Property)
	if !ok {
		t.Fatalf("expected a Property, got %T", ret.Value)
	}
	if prop.Name != "x" {
		t.Fatalf("unexpected property name: %s", prop.Name)
	}
}
