package library

import (
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/value"
)

func backendErr(err error) error {
	if err == nil {
		return nil
	}
	return errors.NewGeometryBackend(err.Error())
}

// twoDSignatures registers the flat-geometry constructors: points, lines,
// arcs, the rectangle/circle conveniences built from them, edge joining,
// and flattening a closed edge into a face.
func twoDSignatures(b geom.Backend) []Signature {
	return []Signature{
		{
			Name: "point",
			Args: []ArgSpec{
				{Name: "x", Access: Opt(value.TNumber)},
				{Name: "y", Access: Opt(value.TNumber)},
			},
			Category:    TwoD,
			Description: "a point at (x, y), defaults 0",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				x := numOr(args, "x", 0)
				y := numOr(args, "y", 0)
				return value.Point{P: geom.Point{X: x, Y: y}}, nil
			},
		},
		{
			Name: "line",
			Args: []ArgSpec{
				{Name: "start", Access: Req(value.TPoint)},
				{Name: "end", Access: Req(value.TPoint)},
			},
			Category:    TwoD,
			Description: "a straight edge between two points",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				start, _ := pointArg(args, "start")
				end, _ := pointArg(args, "end")
				e, err := b.NewEdge()
				if err != nil {
					return nil, backendErr(err)
				}
				e, err = b.AddLine(e, start, end)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Edge{E: e}, nil
			},
		},
		{
			Name: "arc",
			Args: []ArgSpec{
				{Name: "start", Access: Req(value.TPoint)},
				{Name: "center", Access: Req(value.TPoint)},
				{Name: "end", Access: Req(value.TPoint)},
			},
			Category:    TwoD,
			Description: "a circular edge through start and end about center",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				start, _ := pointArg(args, "start")
				center, _ := pointArg(args, "center")
				end, _ := pointArg(args, "end")
				e, err := b.NewEdge()
				if err != nil {
					return nil, backendErr(err)
				}
				e, err = b.AddArc(e, start, center, end)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Edge{E: e}, nil
			},
		},
		{
			Name: "square",
			Args: []ArgSpec{
				{Name: "x", Access: Opt(value.TNumber)},
				{Name: "y", Access: Opt(value.TNumber)},
			},
			Category:    TwoD,
			Description: "a closed rectangular edge, defaults 1",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				x := numOr(args, "x", 1)
				y := numOr(args, "y", 1)
				corners := [4]geom.Point{{X: 0, Y: 0}, {X: x, Y: 0}, {X: x, Y: y}, {X: 0, Y: y}}
				e, err := b.NewEdge()
				if err != nil {
					return nil, backendErr(err)
				}
				for i := 0; i < 4; i++ {
					e, err = b.AddLine(e, corners[i], corners[(i+1)%4])
					if err != nil {
						return nil, backendErr(err)
					}
				}
				return value.Edge{E: e}, nil
			},
		},
		{
			Name: "circle",
			Args: []ArgSpec{
				{Name: "radius", Access: Opt(value.TNumber)},
			},
			Category:    TwoD,
			Description: "a closed circular edge, default radius 0.5",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				r := numOr(args, "radius", 0.5)
				center := geom.Point{}
				top := geom.Point{X: 0, Y: r}
				bottom := geom.Point{X: 0, Y: -r}
				e, err := b.NewEdge()
				if err != nil {
					return nil, backendErr(err)
				}
				e, err = b.AddArc(e, top, center, bottom)
				if err != nil {
					return nil, backendErr(err)
				}
				e, err = b.AddArc(e, bottom, center, top)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Edge{E: e}, nil
			},
		},
		{
			Name: "union",
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TEdge)},
				{Name: "right", Access: Req(value.TEdge)},
			},
			Category:    TwoD,
			Description: "join two edges end to end",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				left, _ := edgeArg(args, "left")
				right, _ := edgeArg(args, "right")
				e, err := b.JoinEdges(left, right)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Edge{E: e}, nil
			},
		},
		{
			Name: "face",
			Args: []ArgSpec{
				{Name: "parts", Access: Req(value.TList)},
			},
			Category:    TwoD,
			Description: "close an ordered list of points/edges into an edge loop",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				parts, _ := listArg(args, "parts")
				return faceFromParts(b, parts)
			},
		},
	}
}

// faceFromParts walks an ordered list of points and edges, stringing
// consecutive points into line segments and splicing in any edge elements
// directly, then closes the loop back to the first point if the chain
// didn't already end there.
func faceFromParts(b geom.Backend, parts value.List) (value.Value, error) {
	e, err := b.NewEdge()
	if err != nil {
		return nil, backendErr(err)
	}

	var first, prev *geom.Point
	for _, item := range parts {
		switch v := value.Unwrap(item).(type) {
		case value.Point:
			if prev != nil {
				e, err = b.AddLine(e, *prev, v.P)
				if err != nil {
					return nil, backendErr(err)
				}
			}
			if first == nil {
				first = &geom.Point{X: v.P.X, Y: v.P.Y, Z: v.P.Z}
			}
			p := v.P
			prev = &p
		case value.Edge:
			e, err = b.AddEdge(e, v.E)
			if err != nil {
				return nil, backendErr(err)
			}
			prev = nil
		default:
			return nil, errors.NewUnexpectedType(value.TypeOf(item).String())
		}
	}

	if prev != nil && first != nil && *prev != *first {
		e, err = b.AddLine(e, *prev, *first)
		if err != nil {
			return nil, backendErr(err)
		}
	}

	return value.Edge{E: e}, nil
}
