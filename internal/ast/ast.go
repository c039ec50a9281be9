// Package ast defines the tagged-variant syntax tree produced by the
// parser: one Document per source file, built from Statements and
// Expressions that each carry a byte Span into their document's source.
package ast

import "github.com/scadlang/dslcad/internal/lexer"

// Span is a half-open byte range into a Document's source text.
type Span = lexer.Span

// DocID is the canonical identifier of a parsed document, produced by a
// Reader's normalize operation. Equality is string equality.
type DocID string

func (d DocID) String() string { return string(d) }

// Node is embedded by every Statement and Expression.
type Node interface {
	Span() Span
}

// Statement is a top-level or scoped declaration/return.
type Statement interface {
	Node
	statementNode()
}

// Expression is any value-producing syntax node.
type Expression interface {
	Node
	expressionNode()
}

type base struct{ span Span }

func (b base) Span() Span { return b.span }

// Document is one parsed source file: its text, its statements in source
// order, and the set of top-level identifier names it declares (used to
// validate arguments when the document is invoked as a function).
type Document struct {
	ID       DocID
	Source   string
	Dir      string // directory the document was read from, for resolving relative Paths
	Stmts    []Statement
	Declared map[string]bool
}

// --- Statements ---------------------------------------------------------

// VariableDecl is `var name;` or `var name = init;`. A nil Init marks a
// required parameter of the enclosing document or function.
type VariableDecl struct {
	base
	Name string
	Init Expression // nil if absent
}

func NewVariableDecl(name string, init Expression, span Span) *VariableDecl {
	return &VariableDecl{base{span}, name, init}
}
func (*VariableDecl) statementNode() {}

// ReturnExpr is a bare `expr;` statement; the last one evaluated in a
// document or scope becomes its value.
type ReturnExpr struct {
	base
	Value Expression
}

func NewReturnExpr(value Expression, span Span) *ReturnExpr {
	return &ReturnExpr{base{span}, value}
}
func (*ReturnExpr) statementNode() {}

// --- Literal expressions -------------------------------------------------

type NumberLiteral struct {
	base
	Value float64
}

func NewNumberLiteral(v float64, span Span) *NumberLiteral { return &NumberLiteral{base{span}, v} }
func (*NumberLiteral) expressionNode()                     {}

type BoolLiteral struct {
	base
	Value bool
}

func NewBoolLiteral(v bool, span Span) *BoolLiteral { return &BoolLiteral{base{span}, v} }
func (*BoolLiteral) expressionNode()                {}

type TextLiteral struct {
	base
	Value string
}

func NewTextLiteral(v string, span Span) *TextLiteral { return &TextLiteral{base{span}, v} }
func (*TextLiteral) expressionNode()                  {}

type ListLiteral struct {
	base
	Elements []Expression
}

func NewListLiteral(elems []Expression, span Span) *ListLiteral {
	return &ListLiteral{base{span}, elems}
}
func (*ListLiteral) expressionNode() {}

// FunctionLiteral is `func { ... }`: its body is a scope that, unlike a
// plain `{ ... }`, allows parameter declarations.
type FunctionLiteral struct {
	base
	Body []Statement
}

func NewFunctionLiteral(body []Statement, span Span) *FunctionLiteral {
	return &FunctionLiteral{base{span}, body}
}
func (*FunctionLiteral) expressionNode() {}

// ResourceLiteral wraps an opaque value produced immediately at parse time
// by a resource loader (see internal/resources).
type ResourceLiteral struct {
	base
	Value any
}

func NewResourceLiteral(v any, span Span) *ResourceLiteral {
	return &ResourceLiteral{base{span}, v}
}
func (*ResourceLiteral) expressionNode() {}

// --- Other expressions ---------------------------------------------------

// Reference is a bare identifier use.
type Reference struct {
	base
	Name string
}

func NewReference(name string, span Span) *Reference { return &Reference{base{span}, name} }
func (*Reference) expressionNode()                   {}

// CallPath is the target of an Invocation: either a parsed Document or a
// named library/user function resolved at evaluation time.
type CallPath interface {
	callPathNode()
}

type DocumentCallPath struct{ Doc DocID }

func (DocumentCallPath) callPathNode() {}

type FunctionCallPath struct{ Callee Expression }

func (FunctionCallPath) callPathNode() {}

// Argument is one invocation argument; Name is empty for a Positional
// argument.
type Argument struct {
	Name  string
	Value Expression
}

func (a Argument) IsNamed() bool { return a.Name != "" }

type Invocation struct {
	base
	Path      CallPath
	Arguments []Argument
}

func NewInvocation(path CallPath, args []Argument, span Span) *Invocation {
	return &Invocation{base{span}, path, args}
}
func (*Invocation) expressionNode() {}

type Property struct {
	base
	Target Expression
	Name   string
}

func NewProperty(target Expression, name string, span Span) *Property {
	return &Property{base{span}, target, name}
}
func (*Property) expressionNode() {}

type Index struct {
	base
	Target Expression
	Idx    Expression
}

func NewIndex(target, idx Expression, span Span) *Index {
	return &Index{base{span}, target, idx}
}
func (*Index) expressionNode() {}

type If struct {
	base
	Condition Expression
	Then      Expression
	Else      Expression
}

func NewIf(cond, then, els Expression, span Span) *If {
	return &If{base{span}, cond, then, els}
}
func (*If) expressionNode() {}

// Map evaluates Range to a List and evaluates Body once per element with
// IterName bound to that element, yielding the List of results.
type Map struct {
	base
	IterName string
	Range    Expression
	Body     Expression
}

func NewMap(iterName string, rng, body Expression, span Span) *Map {
	return &Map{base{span}, iterName, rng, body}
}
func (*Map) expressionNode() {}

// Reduce evaluates Range to a List and folds Body over it, binding Left to
// the running accumulator and Right to the current element. A nil Seed
// means the first element seeds the accumulator and folding starts at the
// second.
type Reduce struct {
	base
	Left, Right string
	Seed        Expression // nil if absent
	Range       Expression
	Body        Expression
}

func NewReduce(left, right string, seed, rng, body Expression, span Span) *Reduce {
	return &Reduce{base{span}, left, right, seed, rng, body}
}
func (*Reduce) expressionNode() {}

// Scope is a `{ ... }` block: a fresh nested statement sequence whose
// value is its last ReturnExpr, evaluated in a child scope. Unlike a
// FunctionLiteral's body, a bare Scope's variables must all have
// initializers.
type Scope struct {
	base
	Body []Statement
}

func NewScope(body []Statement, span Span) *Scope { return &Scope{base{span}, body} }
func (*Scope) expressionNode()                    {}
