package interp

import (
	"fmt"

	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/value"
)

// PartKind distinguishes the three renderable shapes a value can flatten
// into: a line of diagnostic text, a planar point/polyline, or a tessellated
// solid with its edge wireframe.
type PartKind int

const (
	PartData PartKind = iota
	PartPlanar
	PartObject
)

// Part is one renderable unit produced by ToParts. Exactly the fields for
// its Kind are populated.
type Part struct {
	Kind PartKind

	Text string // PartData

	Points []geom.Point // PartPlanar: a single point, or a sampled edge polyline

	Mesh  geom.Mesh      // PartObject
	Lines [][]geom.Point // PartObject: sampled edges of the solid's wireframe
}

// ToParts flattens a document's return value into the Parts a renderer or
// exporter consumes. Numbers, bools and text each become one Data part. A
// Point or Edge becomes one Planar part. A Shape becomes one Object part,
// tessellated at deflection. A List recurses into its elements and
// concatenates their parts; nesting does not otherwise affect the result.
func ToParts(v value.Value, backend geom.Backend, deflection float64) ([]Part, error) {
	switch val := value.Unwrap(v).(type) {
	case value.Number:
		return []Part{{Kind: PartData, Text: fmt.Sprintf("%g", float64(val))}}, nil
	case value.Bool:
		return []Part{{Kind: PartData, Text: fmt.Sprintf("%t", bool(val))}}, nil
	case value.Text:
		return []Part{{Kind: PartData, Text: string(val)}}, nil
	case value.Point:
		return []Part{{Kind: PartPlanar, Points: []geom.Point{val.P}}}, nil
	case value.Edge:
		pts, err := backend.PointsOf(val.E)
		if err != nil {
			return nil, err
		}
		return []Part{{Kind: PartPlanar, Points: pts}}, nil
	case value.Shape:
		mesh, err := backend.Mesh(val.S, deflection)
		if err != nil {
			return nil, err
		}
		lines, err := backend.LinesOf(val.S)
		if err != nil {
			return nil, err
		}
		return []Part{{Kind: PartObject, Mesh: mesh, Lines: lines}}, nil
	case value.List:
		var out []Part
		for _, el := range val {
			parts, err := ToParts(el, backend, deflection)
			if err != nil {
				return nil, err
			}
			out = append(out, parts...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value of type %s cannot be rendered", value.TypeOf(v))
	}
}
