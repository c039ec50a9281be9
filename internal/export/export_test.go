package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/interp"
)

func TestSTLWritesHeaderAndTriangleCount(t *testing.T) {
	parts := []interp.Part{{
		Kind: interp.PartObject,
		Mesh: geom.Mesh{
			Vertices:  []geom.Point{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
			Triangles: [][3]int{{0, 1, 2}},
			Normals:   []geom.Point{{X: 0, Y: 0, Z: 1}},
		},
	}}
	var buf bytes.Buffer
	if err := STL(&buf, parts); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 80+4+50 {
		t.Fatalf("expected an 80-byte header + count + one 50-byte triangle record, got %d bytes", buf.Len())
	}
}

func TestSTLEmptyMeshWritesJustHeaderAndZeroCount(t *testing.T) {
	var buf bytes.Buffer
	if err := STL(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 84 {
		t.Fatalf("expected 84 bytes, got %d", buf.Len())
	}
}

func TestTXTJoinsDataPartsByLine(t *testing.T) {
	parts := []interp.Part{
		{Kind: interp.PartData, Text: "3"},
		{Kind: interp.PartObject},
		{Kind: interp.PartData, Text: "hello"},
	}
	var buf bytes.Buffer
	if err := TXT(&buf, parts); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "3\nhello\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestJSONRendersOneEntryPerPart(t *testing.T) {
	parts := []interp.Part{
		{Kind: interp.PartData, Text: "hi"},
		{Kind: interp.PartPlanar, Points: []geom.Point{{X: 1, Y: 2, Z: 3}}},
	}
	doc, err := JSON(parts)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, `"kind":"data"`) || !strings.Contains(doc, `"kind":"planar"`) {
		t.Fatalf("expected both kinds tagged in output: %s", doc)
	}
}
