// Package library is the registry of built-in operations: math, boolean
// logic, 2D/3D geometry constructors and transforms, and a few
// diagnostic/text/list helpers. Calls are resolved by name plus the set of
// provided argument names and their runtime types, supporting overloading
// with registration order as the tie-break rule.
package library

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/value"
)

// AccessKind says whether a signature's argument must be supplied.
type AccessKind int

const (
	Required AccessKind = iota
	Optional
)

// Access pairs an AccessKind with the argument's expected Type.
type Access struct {
	Kind AccessKind
	T    value.Type
}

func Req(t value.Type) Access { return Access{Required, t} }
func Opt(t value.Type) Access { return Access{Optional, t} }

// ArgSpec is one named, typed argument slot in a Signature.
type ArgSpec struct {
	Name   string
	Access Access
}

// Handler is the Go function backing a Signature, invoked with the bound
// argument map once overload resolution has chosen it.
type Handler func(args map[string]value.Value) (value.Value, error)

// Category groups signatures for cheat-sheet rendering. Hidden signatures
// are callable but never listed (this is where desugared operators and
// comparisons live, since users normally reach them through `+`, `<`, etc,
// not by name).
type Category int

const (
	Hidden Category = iota
	Math
	TwoD
	ThreeD
	Text
	List
)

func (c Category) String() string {
	switch c {
	case Math:
		return "Math"
	case TwoD:
		return "2D"
	case ThreeD:
		return "3D"
	case Text:
		return "Text"
	case List:
		return "List"
	default:
		panic("cannot display hidden category")
	}
}

// Signature is one named, overloadable operation.
type Signature struct {
	Name        string
	Args        []ArgSpec
	Handler     Handler
	Category    Category
	Description string
}

func (s Signature) argSpec(name string) (ArgSpec, bool) {
	for _, a := range s.Args {
		if a.Name == name {
			return a, true
		}
	}
	return ArgSpec{}, false
}

func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteString(s.Name)
	sb.WriteString("(")
	for i, a := range s.Args {
		sb.WriteString(a.Name)
		sb.WriteString("=")
		if a.Access.Kind == Optional {
			sb.WriteString("[" + a.Access.T.String() + "]")
		} else {
			sb.WriteString(a.Access.T.String())
		}
		if i != len(s.Args)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString(")")
	return sb.String()
}

// Library is an ordered list of signatures plus a name-to-indices lookup
// built in registration order.
type Library struct {
	Signatures []Signature
	lookup     map[string][]int
}

// New builds the full built-in registry bound to backend.
func New(backend geom.Backend) *Library {
	var sigs []Signature
	sigs = append(sigs, mathSignatures()...)
	sigs = append(sigs, booleanSignatures()...)
	sigs = append(sigs, twoDSignatures(backend)...)
	sigs = append(sigs, threeDSignatures(backend)...)
	sigs = append(sigs, textSignatures()...)
	sigs = append(sigs, listSignatures()...)
	sigs = append(sigs, diagnosticSignatures()...)
	return fromSignatures(sigs)
}

func fromSignatures(sigs []Signature) *Library {
	lookup := make(map[string][]int)
	for i, s := range sigs {
		lookup[s.Name] = append(lookup[s.Name], i)
	}
	return &Library{Signatures: sigs, lookup: lookup}
}

// Contains reports whether name is registered at all, regardless of
// overload. Used by the parser to validate that a referenced identifier is
// either a declared variable or a library function.
func (l *Library) Contains(name string) bool {
	_, ok := l.lookup[name]
	return ok
}

// PrimaryParamNames returns the argument names, in declaration order, of
// the first signature registered under name. Used to name positional
// (unnamed) call arguments before overload resolution has picked a
// specific candidate.
func (l *Library) PrimaryParamNames(name string) []string {
	indices, ok := l.lookup[name]
	if !ok || len(indices) == 0 {
		return nil
	}
	sig := l.Signatures[indices[0]]
	names := make([]string, len(sig.Args))
	for i, a := range sig.Args {
		names[i] = a.Name
	}
	return names
}

// Find resolves name against the provided argument types, returning the
// first signature (in registration order) all of whose required arguments
// are present with matching types, whose optional arguments (if present)
// match, and which has no provided argument outside its declared set.
func (l *Library) Find(name string, argTypes map[string]value.Type) (Handler, error) {
	indices, ok := l.lookup[name]
	if !ok {
		return nil, errors.NewUnknownFunction(name)
	}

candidate:
	for _, idx := range indices {
		sig := l.Signatures[idx]

		for provided := range argTypes {
			if _, ok := sig.argSpec(provided); !ok {
				continue candidate
			}
		}

		for _, a := range sig.Args {
			t, provided := argTypes[a.Name]
			switch a.Access.Kind {
			case Required:
				if !provided || t != a.Access.T {
					continue candidate
				}
			case Optional:
				if provided && t != a.Access.T {
					continue candidate
				}
			}
		}

		return sig.Handler, nil
	}

	candidates := make([]string, len(indices))
	for i, idx := range indices {
		candidates[i] = l.Signatures[idx].String()
	}
	return nil, errors.NewNoMatchingSignature(formatRequested(name, argTypes), candidates)
}

func formatRequested(name string, argTypes map[string]value.Type) string {
	names := make([]string, 0, len(argTypes))
	for n := range argTypes {
		names = append(names, n)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString("(")
	for i, n := range names {
		sb.WriteString(fmt.Sprintf("%s=%s", n, argTypes[n]))
		if i != len(names)-1 {
			sb.WriteString(", ")
		}
	}
	sb.WriteString(")")
	return sb.String()
}

const cheatSheetPreamble = `
## Syntax
- ` + "`var name = value;`" + ` create a variable called name that stores value
- ` + "`value;`" + ` draw the value, each script can only draw one thing
- ` + "`b(name=a)`" + ` pass a into the name parameter of function b
- ` + "`a ->name b()`" + ` pipe a into the name parameter of function b
- ` + "`./file(name=a)`" + ` run a file as if it were a function

## Operators
- ` + "`a + b`" + ` addition
- ` + "`a - b`" + ` subtraction
- ` + "`a * b`" + ` multiplication
- ` + "`a / b`" + ` division
- ` + "`a % b`" + ` modulo
- ` + "`a ^ b`" + ` power

## Logic
- ` + "`a < b`" + ` less than
- ` + "`a <= b`" + ` less than or equal
- ` + "`a == b`" + ` equal
- ` + "`a != b`" + ` not equal
- ` + "`a > b`" + ` greater than
- ` + "`a >= b`" + ` greater than or equal
- ` + "`a and b`" + ` logical and
- ` + "`a or b`" + ` logical or
- ` + "`not a`" + ` logical not
`

// String renders the cheat sheet: the fixed syntax/operator/logic preamble
// followed by every non-Hidden signature, grouped by Category in Category
// order.
func (l *Library) String() string {
	var sb strings.Builder
	sb.WriteString("# Cheat Sheet\n")
	sb.WriteString(cheatSheetPreamble)

	sorted := append([]Signature(nil), l.Signatures...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Category < sorted[j].Category })

	var current Category
	started := false
	for _, s := range sorted {
		if s.Category == Hidden {
			continue
		}
		if !started || current != s.Category {
			current = s.Category
			started = true
			sb.WriteString("\n## " + s.Category.String() + "\n")
		}
		sb.WriteString(fmt.Sprintf("- `%s` %s\n", s.String(), s.Description))
	}
	return sb.String()
}
