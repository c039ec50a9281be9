package geom

import "testing"

func TestCubeProducesTwelveTriangles(t *testing.T) {
	b := NewReference()
	s, err := b.Cube(1, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	m, err := b.Mesh(s, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Triangles) != 12 {
		t.Fatalf("expected 12 triangles, got %d", len(m.Triangles))
	}
	if len(m.Normals) != len(m.Triangles) {
		t.Fatalf("expected one normal per triangle")
	}
}

func TestSphereCenteredAtOrigin(t *testing.T) {
	b := NewReference()
	s, err := b.Sphere(0.5)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := b.Mesh(s, 0.01)
	for _, v := range m.Vertices {
		if dist(v, Point{}) > 0.5+1e-9 {
			t.Fatalf("vertex %v outside radius", v)
		}
	}
}

func TestTranslateMovesVertices(t *testing.T) {
	b := NewReference()
	s, _ := b.Cube(1, 1, 1)
	moved, err := b.Translate(s, 1, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := b.Mesh(moved, 0.01)
	found := false
	for _, v := range m.Vertices {
		if v == (Point{1, 2, 3}) {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected translated origin vertex among %v", m.Vertices)
	}
}

func TestEdgeLineChain(t *testing.T) {
	b := NewReference()
	e, _ := b.NewEdge()
	e, err := b.AddLine(e, Point{0, 0, 0}, Point{1, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	e, err = b.AddLine(e, Point{1, 0, 0}, Point{1, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	pts, _ := b.PointsOf(e)
	if len(pts) != 3 {
		t.Fatalf("expected 3 chained points, got %d", len(pts))
	}
}

func TestFuseConcatenatesTriangles(t *testing.T) {
	b := NewReference()
	a, _ := b.Cube(1, 1, 1)
	c, _ := b.Cube(1, 1, 1)
	fused, err := b.Fuse(a, c)
	if err != nil {
		t.Fatal(err)
	}
	m, _ := b.Mesh(fused, 0.01)
	if len(m.Triangles) != 24 {
		t.Fatalf("expected 24 triangles after fuse, got %d", len(m.Triangles))
	}
}
