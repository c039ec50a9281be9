// Package geom defines the geometry backend interface consumed by the
// library and evaluator, plus a small in-memory reference implementation.
// A production system supplies its own Backend (e.g. wrapping a real CAD
// kernel); the reference backend here exists only so the rest of this
// module can be built and tested without one.
package geom

// Point is a 3-coordinate location. It is a plain value, not a backend
// handle, since points never need backend-owned storage.
type Point struct {
	X, Y, Z float64
}

// Axis names one of the three principal axes, used by Rotate, Mirror and
// ExtrudeRotate.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Edge is an opaque handle to a 2D curve chain built up from lines and
// arcs. Backend implementations define their own concrete type.
type Edge interface{ edgeHandle() }

// Shape is an opaque handle to a 3D solid. Backend implementations define
// their own concrete type.
type Shape interface{ shapeHandle() }

// Mesh is the tessellated form of a Shape ready for preview or export.
type Mesh struct {
	Vertices  []Point
	Triangles [][3]int
	Normals   []Point
}

// Backend is every primitive and operation the library's 2D/3D
// constructors and transforms need from the CAD kernel. All operations are
// fallible; a failure is reported to the caller as a geometry-backend
// error carrying the backend's message.
type Backend interface {
	// Edge construction.
	NewEdge() (Edge, error)
	AddLine(e Edge, start, end Point) (Edge, error)
	AddArc(e Edge, start, center, end Point) (Edge, error)
	AddEdge(target, src Edge) (Edge, error)
	JoinEdges(left, right Edge) (Edge, error)

	// Solid construction.
	Cube(dx, dy, dz float64) (Shape, error)
	Sphere(radius float64) (Shape, error)
	Cylinder(radius, height float64) (Shape, error)

	// Transforms.
	Translate(s Shape, dx, dy, dz float64) (Shape, error)
	Rotate(s Shape, axis Axis, degrees float64) (Shape, error)
	Scale(s Shape, factor float64) (Shape, error)
	Mirror(s Shape, axis Axis) (Shape, error)

	// Booleans.
	Fuse(left, right Shape) (Shape, error)
	Cut(left, right Shape) (Shape, error)
	Intersect(left, right Shape) (Shape, error)

	// Filleting.
	Chamfer(s Shape, radius float64) (Shape, error)
	Fillet(s Shape, radius float64) (Shape, error)

	// Extrusion.
	Extrude(e Edge, dx, dy, dz float64) (Shape, error)
	ExtrudeRotate(e Edge, axis Axis, degrees float64) (Shape, error)

	// Output.
	Mesh(s Shape, deflection float64) (Mesh, error)
	PointsOf(e Edge) ([]Point, error)
	LinesOf(s Shape) ([][]Point, error)
}
