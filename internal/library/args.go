package library

import (
	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/value"
)

// Overload resolution has already confirmed every argument present in a
// bound call matches its signature's declared type, so these helpers assert
// directly rather than returning an error for the common (present, typed)
// case; they report absence so a handler can apply its own default.

func numArg(args map[string]value.Value, name string) (float64, bool) {
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	n, ok := value.Unwrap(v).(value.Number)
	return float64(n), ok
}

func numOr(args map[string]value.Value, name string, def float64) float64 {
	if n, ok := numArg(args, name); ok {
		return n
	}
	return def
}

func boolOr(args map[string]value.Value, name string, def bool) bool {
	v, ok := args[name]
	if !ok {
		return def
	}
	b, ok := value.Unwrap(v).(value.Bool)
	if !ok {
		return def
	}
	return bool(b)
}

func textArg(args map[string]value.Value, name string) (string, bool) {
	v, ok := args[name]
	if !ok {
		return "", false
	}
	t, ok := value.Unwrap(v).(value.Text)
	return string(t), ok
}

func textOr(args map[string]value.Value, name, def string) string {
	if t, ok := textArg(args, name); ok {
		return t
	}
	return def
}

func pointArg(args map[string]value.Value, name string) (geom.Point, bool) {
	v, ok := args[name]
	if !ok {
		return geom.Point{}, false
	}
	p, ok := value.Unwrap(v).(value.Point)
	return p.P, ok
}

func edgeArg(args map[string]value.Value, name string) (geom.Edge, bool) {
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	e, ok := value.Unwrap(v).(value.Edge)
	if !ok {
		return nil, false
	}
	return e.E, true
}

func shapeArg(args map[string]value.Value, name string) (geom.Shape, bool) {
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	s, ok := value.Unwrap(v).(value.Shape)
	if !ok {
		return nil, false
	}
	return s.S, true
}

func listArg(args map[string]value.Value, name string) (value.List, bool) {
	v, ok := args[name]
	if !ok {
		return nil, false
	}
	l, ok := value.Unwrap(v).(value.List)
	return l, ok
}

func axisArg(args map[string]value.Value, name string) geom.Axis {
	switch textOr(args, name, "z") {
	case "x":
		return geom.AxisX
	case "y":
		return geom.AxisY
	default:
		return geom.AxisZ
	}
}
