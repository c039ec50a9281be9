package library

import "github.com/scadlang/dslcad/internal/value"

// listSignatures registers the one list introspection helper the built-in
// library exposes; `map`/`reduce` are language constructs handled by the
// evaluator directly, not library calls.
func listSignatures() []Signature {
	return []Signature{
		{
			Name:        "length",
			Args:        []ArgSpec{{Name: "list", Access: Req(value.TList)}},
			Category:    List,
			Description: "the number of elements in a list",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				l, _ := listArg(args, "list")
				return value.Number(len(l)), nil
			},
		},
	}
}
