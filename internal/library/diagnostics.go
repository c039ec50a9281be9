package library

import (
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/value"
)

// diagnosticSignatures registers `error`, which lets a script abort itself
// with a user-chosen message (surfaced as a UserDefined runtime error, same
// as any other evaluation failure, so it gets the usual stack trace).
func diagnosticSignatures() []Signature {
	return []Signature{
		{
			Name:        "error",
			Args:        []ArgSpec{{Name: "message", Access: Req(value.TText)}},
			Category:    Hidden,
			Description: "abort evaluation with a message",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				msg, _ := textArg(args, "message")
				return nil, errors.NewUserDefined(msg)
			},
		},
	}
}
