package library

import (
	"fmt"

	"github.com/scadlang/dslcad/internal/value"
)

// textSignatures registers the string helpers used to build labels and
// diagnostic messages: converting a number to text, and concatenation.
// `string` accepts only a Number; Bool and Text arguments match no
// signature.
func textSignatures() []Signature {
	return []Signature{
		{
			Name:        "string",
			Args:        []ArgSpec{{Name: "value", Access: Req(value.TNumber)}},
			Category:    Text,
			Description: "render a number as text",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				n, _ := numArg(args, "value")
				return value.Text(fmt.Sprintf("%g", n)), nil
			},
		},
		{
			Name: "concat",
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TText)},
				{Name: "right", Access: Req(value.TText)},
			},
			Category:    Text,
			Description: "join two strings",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				left, _ := textArg(args, "left")
				right, _ := textArg(args, "right")
				return value.Text(left + right), nil
			},
		},
	}
}
