package library

import (
	"github.com/scadlang/dslcad/internal/errors"
	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/value"
)

// threeDSignatures registers the solid constructors, booleans, filleting
// and transforms. Sphere is built centered at the origin by the backend and
// then translated by (radius, radius, radius) here, so that `sphere`
// behaves like `cube`: its bounding box starts at the origin rather than
// straddling it.
func threeDSignatures(b geom.Backend) []Signature {
	return []Signature{
		{
			Name: "extrude",
			Args: []ArgSpec{
				{Name: "shape", Access: Req(value.TEdge)},
				{Name: "x", Access: Opt(value.TNumber)},
				{Name: "y", Access: Opt(value.TNumber)},
				{Name: "z", Access: Opt(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "extrude a flat edge along independent x/y/z offsets into a solid",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				e, _ := edgeArg(args, "shape")
				x, y, z := numOr(args, "x", 0), numOr(args, "y", 0), numOr(args, "z", 0)
				s, err := b.Extrude(e, x, y, z)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "revolve",
			Args: []ArgSpec{
				{Name: "shape", Access: Req(value.TEdge)},
				{Name: "x", Access: Opt(value.TNumber)},
				{Name: "y", Access: Opt(value.TNumber)},
				{Name: "z", Access: Opt(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "revolve a flat edge about whichever one of x/y/z is given, its value the angle in degrees",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				e, _ := edgeArg(args, "shape")
				for _, step := range []struct {
					name string
					axis geom.Axis
				}{
					{"x", geom.AxisX},
					{"y", geom.AxisY},
					{"z", geom.AxisZ},
				} {
					deg, ok := numArg(args, step.name)
					if !ok {
						continue
					}
					s, err := b.ExtrudeRotate(e, step.axis, deg)
					if err != nil {
						return nil, backendErr(err)
					}
					return value.Shape{S: s}, nil
				}
				return nil, errors.NewUserDefined("revolve requires one of x, y, or z")
			},
		},
		{
			Name: "cube",
			Args: []ArgSpec{
				{Name: "x", Access: Req(value.TNumber)},
				{Name: "y", Access: Req(value.TNumber)},
				{Name: "z", Access: Req(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "a rectangular solid with one corner at the origin",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				x, _ := numArg(args, "x")
				y, _ := numArg(args, "y")
				z, _ := numArg(args, "z")
				s, err := b.Cube(x, y, z)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "sphere",
			Args: []ArgSpec{
				{Name: "radius", Access: Req(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "a sphere with its bounding box corner at the origin",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				r, _ := numArg(args, "radius")
				s, err := b.Sphere(r)
				if err != nil {
					return nil, backendErr(err)
				}
				s, err = b.Translate(s, r, r, r)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "cylinder",
			Args: []ArgSpec{
				{Name: "radius", Access: Req(value.TNumber)},
				{Name: "height", Access: Req(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "a cylinder with its base centered on the origin",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				r, _ := numArg(args, "radius")
				h, _ := numArg(args, "height")
				s, err := b.Cylinder(r, h)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "union",
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TShape)},
				{Name: "right", Access: Req(value.TShape)},
			},
			Category:    ThreeD,
			Description: "fuse two solids into one",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				left, _ := shapeArg(args, "left")
				right, _ := shapeArg(args, "right")
				s, err := b.Fuse(left, right)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "difference",
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TShape)},
				{Name: "right", Access: Req(value.TShape)},
			},
			Category:    ThreeD,
			Description: "subtract right from left",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				left, _ := shapeArg(args, "left")
				right, _ := shapeArg(args, "right")
				s, err := b.Cut(left, right)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "intersect",
			Args: []ArgSpec{
				{Name: "left", Access: Req(value.TShape)},
				{Name: "right", Access: Req(value.TShape)},
			},
			Category:    ThreeD,
			Description: "keep only the overlap of two solids",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				left, _ := shapeArg(args, "left")
				right, _ := shapeArg(args, "right")
				s, err := b.Intersect(left, right)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "chamfer",
			Args: []ArgSpec{
				{Name: "shape", Access: Req(value.TShape)},
				{Name: "radius", Access: Req(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "cut a flat bevel along every edge",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				shape, _ := shapeArg(args, "shape")
				r, _ := numArg(args, "radius")
				s, err := b.Chamfer(shape, r)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "fillet",
			Args: []ArgSpec{
				{Name: "shape", Access: Req(value.TShape)},
				{Name: "radius", Access: Req(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "round every edge",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				shape, _ := shapeArg(args, "shape")
				r, _ := numArg(args, "radius")
				s, err := b.Fillet(shape, r)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "translate",
			Args: []ArgSpec{
				{Name: "shape", Access: Req(value.TShape)},
				{Name: "x", Access: Opt(value.TNumber)},
				{Name: "y", Access: Opt(value.TNumber)},
				{Name: "z", Access: Opt(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "move a solid",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				shape, _ := shapeArg(args, "shape")
				x, y, z := numOr(args, "x", 0), numOr(args, "y", 0), numOr(args, "z", 0)
				s, err := b.Translate(shape, x, y, z)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "rotate",
			Args: []ArgSpec{
				{Name: "shape", Access: Req(value.TShape)},
				{Name: "x", Access: Opt(value.TNumber)},
				{Name: "y", Access: Opt(value.TNumber)},
				{Name: "z", Access: Opt(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "rotate a solid about each axis, in degrees",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				shape, _ := shapeArg(args, "shape")
				s := shape
				for _, step := range []struct {
					axis geom.Axis
					deg  float64
				}{
					{geom.AxisX, numOr(args, "x", 0)},
					{geom.AxisY, numOr(args, "y", 0)},
					{geom.AxisZ, numOr(args, "z", 0)},
				} {
					if step.deg == 0 {
						continue
					}
					var err error
					s, err = b.Rotate(s, step.axis, step.deg)
					if err != nil {
						return nil, backendErr(err)
					}
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "scale",
			Args: []ArgSpec{
				{Name: "shape", Access: Req(value.TShape)},
				{Name: "factor", Access: Req(value.TNumber)},
			},
			Category:    ThreeD,
			Description: "uniformly scale a solid",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				shape, _ := shapeArg(args, "shape")
				f, _ := numArg(args, "factor")
				s, err := b.Scale(shape, f)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
		{
			Name: "mirror",
			Args: []ArgSpec{
				{Name: "shape", Access: Req(value.TShape)},
				{Name: "axis", Access: Opt(value.TText)},
			},
			Category:    ThreeD,
			Description: "mirror a solid across a plane through the origin",
			Handler: func(args map[string]value.Value) (value.Value, error) {
				shape, _ := shapeArg(args, "shape")
				axis := axisArg(args, "axis")
				s, err := b.Mirror(shape, axis)
				if err != nil {
					return nil, backendErr(err)
				}
				return value.Shape{S: s}, nil
			},
		},
	}
}
