// Package value defines the runtime value types produced by evaluation:
// the tagged Value variants, the Scope bindings map used while evaluating,
// and the ScriptInstance/coercion rules overload resolution depends on.
package value

import (
	"fmt"

	"github.com/scadlang/dslcad/internal/ast"
	"github.com/scadlang/dslcad/internal/geom"
)

// Type is the set of runtime types overload resolution matches against.
type Type int

const (
	TNumber Type = iota
	TBool
	TText
	TList
	TPoint
	TEdge
	TShape
	TFunction
	tResource // opaque; never appears in a signature, so not part of the matching set
)

var typeNames = [...]string{
	TNumber: "Number", TBool: "Bool", TText: "Text", TList: "List",
	TPoint: "Point", TEdge: "Edge", TShape: "Shape", TFunction: "Function",
	tResource: "Resource",
}

func (t Type) String() string { return typeNames[t] }

// Value is any runtime value. Concrete types below implement it directly;
// ScriptInstance implements it by delegating to its wrapped result so that
// a document's return value acts as that type when passed onward.
type Value interface {
	Type() Type
}

type Number float64

func (Number) Type() Type { return TNumber }

type Bool bool

func (Bool) Type() Type { return TBool }

type Text string

func (Text) Type() Type { return TText }

type List []Value

func (List) Type() Type { return TList }

type Point struct{ P geom.Point }

func (Point) Type() Type { return TPoint }

type Edge struct{ E geom.Edge }

func (Edge) Type() Type { return TEdge }

type Shape struct{ S geom.Shape }

func (Shape) Type() Type { return TShape }

// Function is a closed-over `func { ... }` literal; Closure is the scope it
// captured at the point of definition. Document calls do not produce a
// Function value.
type Function struct {
	Body    []ast.Statement
	Closure *Scope
}

func (*Function) Type() Type { return TFunction }

// Resource wraps an opaque value produced by a resource loader.
type Resource struct{ V any }

func (Resource) Type() Type { return tResource }

// ScriptInstance is the result of invoking a document as a function: its
// passed-in arguments, the variables it set along the way (in declaration
// order), and its final return value. Property access reads a named
// binding, arguments taking precedence over variables.
type ScriptInstance struct {
	Arguments map[string]Value
	Variables map[string]Value
	VarOrder  []string
	Result    Value
}

func NewScriptInstance(args map[string]Value) *ScriptInstance {
	return &ScriptInstance{
		Arguments: args,
		Variables: map[string]Value{},
	}
}

func (si *ScriptInstance) Type() Type { return TypeOf(si.Result) }

// SetVariable records a variable binding, preserving first-set order.
func (si *ScriptInstance) SetVariable(name string, v Value) {
	if _, exists := si.Variables[name]; !exists {
		si.VarOrder = append(si.VarOrder, name)
	}
	si.Variables[name] = v
}

// Get looks up name, arguments before variables.
func (si *ScriptInstance) Get(name string) (Value, bool) {
	if v, ok := si.Arguments[name]; ok {
		return v, true
	}
	if v, ok := si.Variables[name]; ok {
		return v, true
	}
	return nil, false
}

// Unwrap follows ScriptInstance wrapping down to the first non-instance
// value, so a document's return value transparently acts as that value's
// own type to callers and to overload resolution.
func Unwrap(v Value) Value {
	for {
		si, ok := v.(*ScriptInstance)
		if !ok {
			return v
		}
		v = si.Result
	}
}

// TypeOf returns the overload-matching type of v, unwrapping any
// ScriptInstance first.
func TypeOf(v Value) Type { return Unwrap(v).Type() }

// Describe renders a value for diagnostics (error messages, stack trace
// snippets), not for DSL output.
func Describe(v Value) string {
	switch u := Unwrap(v).(type) {
	case Number:
		return fmt.Sprintf("%g", float64(u))
	case Bool:
		return fmt.Sprintf("%t", bool(u))
	case Text:
		return string(u)
	case List:
		return fmt.Sprintf("list[%d]", len(u))
	case Point:
		return fmt.Sprintf("point(%g, %g, %g)", u.P.X, u.P.Y, u.P.Z)
	case Edge:
		return "edge"
	case Shape:
		return "shape"
	case *Function:
		return "function"
	case Resource:
		return "resource"
	default:
		return "value"
	}
}
