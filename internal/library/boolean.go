package library

import "github.com/scadlang/dslcad/internal/value"

// booleanSignatures registers `and`/`or`/`not`, the desugared targets of the
// `and`/`or`/`not` keywords. Like the arithmetic operators, these are
// Hidden: they exist to be called by the parser's desugaring, not by name.
func booleanSignatures() []Signature {
	return []Signature{
		{
			Name: "and",
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TBool)},
				{Name: "right", Access: Req(value.TBool)},
			},
			Category:    Hidden,
			Description: "logical and",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				a := boolOr(args, "left", false)
				b := boolOr(args, "right", false)
				return value.Bool(a && b), nil
			},
		},
		{
			Name: "or",
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TBool)},
				{Name: "right", Access: Req(value.TBool)},
			},
			Category:    Hidden,
			Description: "logical or",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				a := boolOr(args, "left", false)
				b := boolOr(args, "right", false)
				return value.Bool(a || b), nil
			},
		},
		{
			Name:        "not",
			Args:        []ArgSpec{{Name: "value", Access: Req(value.TBool)}},
			Category:    Hidden,
			Description: "logical not",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				v := boolOr(args, "value", false)
				return value.Bool(!v), nil
			},
		},
	}
}
