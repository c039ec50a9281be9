package geom

import "math"

// Reference is a small, intentionally naive Backend implementation: flat
// box/UV-sphere/cylinder primitives, linear extrusion and revolve, and
// boolean operations that do not perform true CSG (Fuse concatenates
// triangles, Cut and Intersect return the left operand unchanged).
// Chamfer and Fillet are no-ops. It exists to exercise the library and
// evaluator end to end, not to produce production-quality geometry.
type Reference struct{}

// NewReference returns a ready-to-use Reference backend.
func NewReference() *Reference { return &Reference{} }

const (
	arcSamples    = 16
	sphereLon     = 16
	sphereLat     = 8
	revolveSteps  = 24
	cylinderSides = 24
)

type refEdge struct{ points []Point }

func (*refEdge) edgeHandle() {}

type refShape struct {
	mesh  Mesh
	edges [][]Point
}

func (*refShape) shapeHandle() {}

func dist(a, b Point) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func sampleArc(start, center, end Point, n int) []Point {
	r := dist(center, start)
	a0 := math.Atan2(start.Y-center.Y, start.X-center.X)
	a1 := math.Atan2(end.Y-center.Y, end.X-center.X)
	if a1 < a0 {
		a1 += 2 * math.Pi
	}
	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := a0 + (a1-a0)*float64(i)/float64(n)
		pts = append(pts, Point{center.X + r*math.Cos(t), center.Y + r*math.Sin(t), center.Z})
	}
	return pts
}

// --- edges ---------------------------------------------------------------

func (r *Reference) NewEdge() (Edge, error) { return &refEdge{}, nil }

func appendChain(pts []Point, next []Point) []Point {
	if len(next) == 0 {
		return pts
	}
	if len(pts) > 0 && pts[len(pts)-1] == next[0] {
		return append(pts, next[1:]...)
	}
	return append(pts, next...)
}

func (r *Reference) AddLine(e Edge, start, end Point) (Edge, error) {
	re := e.(*refEdge)
	pts := append([]Point{}, re.points...)
	pts = appendChain(pts, []Point{start, end})
	return &refEdge{points: pts}, nil
}

func (r *Reference) AddArc(e Edge, start, center, end Point) (Edge, error) {
	re := e.(*refEdge)
	pts := append([]Point{}, re.points...)
	pts = appendChain(pts, sampleArc(start, center, end, arcSamples))
	return &refEdge{points: pts}, nil
}

func (r *Reference) AddEdge(target, src Edge) (Edge, error) {
	t, s := target.(*refEdge), src.(*refEdge)
	pts := append([]Point{}, t.points...)
	pts = appendChain(pts, s.points)
	return &refEdge{points: pts}, nil
}

func (r *Reference) JoinEdges(left, right Edge) (Edge, error) {
	return r.AddEdge(left, right)
}

func (r *Reference) PointsOf(e Edge) ([]Point, error) {
	re := e.(*refEdge)
	return append([]Point{}, re.points...), nil
}

// --- solids ----------------------------------------------------------------

func triNormal(a, b, c Point) Point {
	ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
	vx, vy, vz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
	nx, ny, nz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
	l := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if l == 0 {
		return Point{}
	}
	return Point{nx / l, ny / l, nz / l}
}

func meshFrom(vertices []Point, triangles [][3]int) Mesh {
	normals := make([]Point, len(triangles))
	for i, t := range triangles {
		normals[i] = triNormal(vertices[t[0]], vertices[t[1]], vertices[t[2]])
	}
	return Mesh{Vertices: vertices, Triangles: triangles, Normals: normals}
}

func (r *Reference) Cube(dx, dy, dz float64) (Shape, error) {
	v := []Point{
		{0, 0, 0}, {dx, 0, 0}, {dx, dy, 0}, {0, dy, 0},
		{0, 0, dz}, {dx, 0, dz}, {dx, dy, dz}, {0, dy, dz},
	}
	quad := func(a, b, c, d int) [][3]int { return [][3]int{{a, b, c}, {a, c, d}} }
	tris := append([][3]int{}, quad(0, 3, 2, 1)...) // bottom
	tris = append(tris, quad(4, 5, 6, 7)...)         // top
	tris = append(tris, quad(0, 1, 5, 4)...)         // front
	tris = append(tris, quad(1, 2, 6, 5)...)         // right
	tris = append(tris, quad(2, 3, 7, 6)...)         // back
	tris = append(tris, quad(3, 0, 4, 7)...)         // left
	return &refShape{mesh: meshFrom(v, tris)}, nil
}

func (r *Reference) Sphere(radius float64) (Shape, error) {
	var v []Point
	for lat := 0; lat <= sphereLat; lat++ {
		theta := math.Pi * float64(lat) / float64(sphereLat)
		for lon := 0; lon < sphereLon; lon++ {
			phi := 2 * math.Pi * float64(lon) / float64(sphereLon)
			v = append(v, Point{
				X: radius * math.Sin(theta) * math.Cos(phi),
				Y: radius * math.Sin(theta) * math.Sin(phi),
				Z: radius * math.Cos(theta),
			})
		}
	}
	var tris [][3]int
	idx := func(lat, lon int) int { return lat*sphereLon + lon%sphereLon }
	for lat := 0; lat < sphereLat; lat++ {
		for lon := 0; lon < sphereLon; lon++ {
			a, b := idx(lat, lon), idx(lat, lon+1)
			c, d := idx(lat+1, lon), idx(lat+1, lon+1)
			tris = append(tris, [3]int{a, c, d}, [3]int{a, d, b})
		}
	}
	return &refShape{mesh: meshFrom(v, tris)}, nil
}

func (r *Reference) Cylinder(radius, height float64) (Shape, error) {
	var v []Point
	for i := 0; i < cylinderSides; i++ {
		a := 2 * math.Pi * float64(i) / float64(cylinderSides)
		v = append(v, Point{radius * math.Cos(a), radius * math.Sin(a), 0})
	}
	for i := 0; i < cylinderSides; i++ {
		a := 2 * math.Pi * float64(i) / float64(cylinderSides)
		v = append(v, Point{radius * math.Cos(a), radius * math.Sin(a), height})
	}
	v = append(v, Point{0, 0, 0}, Point{0, 0, height})
	bottomCenter, topCenter := len(v)-2, len(v)-1

	var tris [][3]int
	for i := 0; i < cylinderSides; i++ {
		j := (i + 1) % cylinderSides
		bi, bj := i, j
		ti, tj := i+cylinderSides, j+cylinderSides
		tris = append(tris, [3]int{bi, tj, ti}, [3]int{bi, bj, tj})
		tris = append(tris, [3]int{bottomCenter, bj, bi})
		tris = append(tris, [3]int{topCenter, ti, tj})
	}
	return &refShape{mesh: meshFrom(v, tris)}, nil
}

// --- transforms ------------------------------------------------------------

func mapMesh(m Mesh, fn func(Point) Point, flip bool) Mesh {
	v := make([]Point, len(m.Vertices))
	for i, p := range m.Vertices {
		v[i] = fn(p)
	}
	tris := make([][3]int, len(m.Triangles))
	copy(tris, m.Triangles)
	if flip {
		for i, t := range tris {
			tris[i] = [3]int{t[0], t[2], t[1]}
		}
	}
	return meshFrom(v, tris)
}

func mapChains(chains [][]Point, fn func(Point) Point) [][]Point {
	out := make([][]Point, len(chains))
	for i, c := range chains {
		nc := make([]Point, len(c))
		for j, p := range c {
			nc[j] = fn(p)
		}
		out[i] = nc
	}
	return out
}

func (r *Reference) Translate(s Shape, dx, dy, dz float64) (Shape, error) {
	rs := s.(*refShape)
	fn := func(p Point) Point { return Point{p.X + dx, p.Y + dy, p.Z + dz} }
	return &refShape{mesh: mapMesh(rs.mesh, fn, false), edges: mapChains(rs.edges, fn)}, nil
}

func (r *Reference) Rotate(s Shape, axis Axis, degrees float64) (Shape, error) {
	rs := s.(*refShape)
	t := degrees * math.Pi / 180
	sin, cos := math.Sin(t), math.Cos(t)
	fn := func(p Point) Point {
		switch axis {
		case AxisX:
			return Point{p.X, p.Y*cos - p.Z*sin, p.Y*sin + p.Z*cos}
		case AxisY:
			return Point{p.X*cos + p.Z*sin, p.Y, -p.X*sin + p.Z*cos}
		default:
			return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos, p.Z}
		}
	}
	return &refShape{mesh: mapMesh(rs.mesh, fn, false), edges: mapChains(rs.edges, fn)}, nil
}

func (r *Reference) Scale(s Shape, factor float64) (Shape, error) {
	rs := s.(*refShape)
	fn := func(p Point) Point { return Point{p.X * factor, p.Y * factor, p.Z * factor} }
	return &refShape{mesh: mapMesh(rs.mesh, fn, factor < 0), edges: mapChains(rs.edges, fn)}, nil
}

func (r *Reference) Mirror(s Shape, axis Axis) (Shape, error) {
	rs := s.(*refShape)
	fn := func(p Point) Point {
		switch axis {
		case AxisX:
			return Point{-p.X, p.Y, p.Z}
		case AxisY:
			return Point{p.X, -p.Y, p.Z}
		default:
			return Point{p.X, p.Y, -p.Z}
		}
	}
	return &refShape{mesh: mapMesh(rs.mesh, fn, true), edges: mapChains(rs.edges, fn)}, nil
}

// --- booleans (approximate) -------------------------------------------------

func (r *Reference) Fuse(left, right Shape) (Shape, error) {
	l, rr := left.(*refShape), right.(*refShape)
	offset := len(l.mesh.Vertices)
	v := append(append([]Point{}, l.mesh.Vertices...), rr.mesh.Vertices...)
	tris := append([][3]int{}, l.mesh.Triangles...)
	for _, t := range rr.mesh.Triangles {
		tris = append(tris, [3]int{t[0] + offset, t[1] + offset, t[2] + offset})
	}
	edges := append(append([][]Point{}, l.edges...), rr.edges...)
	return &refShape{mesh: meshFrom(v, tris), edges: edges}, nil
}

// Cut and Intersect cannot be computed without a real boolean-solid kernel;
// the reference backend returns the left operand unchanged.
func (r *Reference) Cut(left, right Shape) (Shape, error) { return left, nil }

func (r *Reference) Intersect(left, right Shape) (Shape, error) { return left, nil }

func (r *Reference) Chamfer(s Shape, radius float64) (Shape, error) { return s, nil }

func (r *Reference) Fillet(s Shape, radius float64) (Shape, error) { return s, nil }

// --- extrusion --------------------------------------------------------------

func (r *Reference) Extrude(e Edge, dx, dy, dz float64) (Shape, error) {
	re := e.(*refEdge)
	profile := re.points
	n := len(profile)
	if n < 2 {
		return &refShape{}, nil
	}
	top := make([]Point, n)
	for i, p := range profile {
		top[i] = Point{p.X + dx, p.Y + dy, p.Z + dz}
	}
	v := append(append([]Point{}, profile...), top...)
	var tris [][3]int
	closed := profile[0] == profile[n-1]
	segs := n - 1
	for i := 0; i < segs; i++ {
		j := i + 1
		tris = append(tris, [3]int{i, n + j, n + i}, [3]int{i, j, n + j})
	}
	if closed {
		// naive fan caps; fine for a reference backend, not watertight for
		// concave profiles.
		for i := 1; i < segs-1; i++ {
			tris = append(tris, [3]int{0, i, i + 1})
			tris = append(tris, [3]int{n, n + i + 1, n + i})
		}
	}
	return &refShape{mesh: meshFrom(v, tris), edges: [][]Point{profile, top}}, nil
}

func (r *Reference) ExtrudeRotate(e Edge, axis Axis, degrees float64) (Shape, error) {
	re := e.(*refEdge)
	profile := re.points
	n := len(profile)
	if n < 2 {
		return &refShape{}, nil
	}
	rotate := func(p Point, deg float64) Point {
		t := deg * math.Pi / 180
		sin, cos := math.Sin(t), math.Cos(t)
		switch axis {
		case AxisX:
			return Point{p.X, p.Y*cos - p.Z*sin, p.Y*sin + p.Z*cos}
		case AxisY:
			return Point{p.X*cos + p.Z*sin, p.Y, -p.X*sin + p.Z*cos}
		default:
			return Point{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos, p.Z}
		}
	}

	var v []Point
	for step := 0; step <= revolveSteps; step++ {
		deg := degrees * float64(step) / float64(revolveSteps)
		for _, p := range profile {
			v = append(v, rotate(p, deg))
		}
	}
	var tris [][3]int
	for step := 0; step < revolveSteps; step++ {
		for i := 0; i < n-1; i++ {
			a := step*n + i
			b := step*n + i + 1
			c := (step+1)*n + i
			d := (step+1)*n + i + 1
			tris = append(tris, [3]int{a, c, d}, [3]int{a, d, b})
		}
	}
	return &refShape{mesh: meshFrom(v, tris)}, nil
}

// --- output ------------------------------------------------------------------

func (r *Reference) Mesh(s Shape, deflection float64) (Mesh, error) {
	return s.(*refShape).mesh, nil
}

func (r *Reference) LinesOf(s Shape) ([][]Point, error) {
	return s.(*refShape).edges, nil
}
