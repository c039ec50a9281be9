package library

import (
	"math"

	"github.com/scadlang/dslcad/internal/value"
)

// mathSignatures registers arithmetic, comparison and trigonometric
// operators. Every arithmetic and comparison operator is Hidden: users
// reach them through `+`, `<`, `==` and so on, desugared by the parser into
// these named calls, not by calling the name directly. pi() and the
// rounding, angle-conversion and trigonometric helpers are called by name,
// so they are listed under Math.
func mathSignatures() []Signature {
	binaryNum := func(name, desc string, fn func(a, b float64) float64) Signature {
		return Signature{
			Name: name,
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TNumber)},
				{Name: "right", Access: Req(value.TNumber)},
			},
			Category:    Hidden,
			Description: desc,
			Handler: func(args map[string]value.Value) (value.Value, error) {
				a, _ := numArg(args, "left")
				b, _ := numArg(args, "right")
				return value.Number(fn(a, b)), nil
			},
		}
	}

	compareNum := func(name, desc string, fn func(a, b float64) bool) Signature {
		return Signature{
			Name: name,
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TNumber)},
				{Name: "right", Access: Req(value.TNumber)},
			},
			Category:    Hidden,
			Description: desc,
			Handler: func(args map[string]value.Value) (value.Value, error) {
				a, _ := numArg(args, "left")
				b, _ := numArg(args, "right")
				return value.Bool(fn(a, b)), nil
			},
		}
	}

	unaryNum := func(name, desc string, fn func(float64) float64) Signature {
		return Signature{
			Name:        name,
			Args:        []ArgSpec{{Name: "value", Access: Req(value.TNumber)}},
			Category:    Math,
			Description: desc,
			Handler: func(args map[string]value.Value) (value.Value, error) {
				n, _ := numArg(args, "value")
				return value.Number(fn(n)), nil
			},
		}
	}

	return []Signature{
		binaryNum("add", "addition", func(a, b float64) float64 { return a + b }),
		binaryNum("subtract", "subtraction", func(a, b float64) float64 { return a - b }),
		binaryNum("multiply", "multiplication", func(a, b float64) float64 { return a * b }),
		binaryNum("divide", "division", func(a, b float64) float64 { return a / b }),
		binaryNum("modulo", "modulo", math.Mod),
		binaryNum("power", "power", math.Pow),

		{
			Name:        "pi",
			Category:    Math,
			Description: "constant pi",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				return value.Number(math.Pi), nil
			},
		},

		compareNum("less", "less than", func(a, b float64) bool { return a < b }),
		compareNum("less_or_equal", "less than or equal", func(a, b float64) bool { return a <= b }),
		compareNum("equals", "equal", func(a, b float64) bool { return a == b }),
		compareNum("not_equals", "not equal", func(a, b float64) bool { return a != b }),
		compareNum("greater", "greater than", func(a, b float64) bool { return a > b }),
		compareNum("greater_or_equal", "greater than or equal", func(a, b float64) bool { return a >= b }),

		unaryNum("round", "round to the nearest integer", math.Round),
		unaryNum("ceil", "round up to the nearest integer", math.Ceil),
		unaryNum("floor", "round down to the nearest integer", math.Floor),
		unaryNum("rad_to_deg", "convert radians to degrees", func(r float64) float64 { return r * 180 / math.Pi }),
		unaryNum("deg_to_rad", "convert degrees to radians", func(d float64) float64 { return d * math.Pi / 180 }),
		unaryNum("sin_deg", "sine of a degree angle", func(d float64) float64 { return math.Sin(d * math.Pi / 180) }),
		unaryNum("cos_deg", "cosine of a degree angle", func(d float64) float64 { return math.Cos(d * math.Pi / 180) }),
		unaryNum("tan_deg", "tangent of a degree angle", func(d float64) float64 { return math.Tan(d * math.Pi / 180) }),
		unaryNum("sin_rad", "sine of a radian angle", math.Sin),
		unaryNum("cos_rad", "cosine of a radian angle", math.Cos),
		unaryNum("tan_rad", "tangent of a radian angle", math.Tan),
	}
}
