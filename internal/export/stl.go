// Package export serializes the Parts a document evaluates to into the
// file formats the CLI can write out: binary STL for Object parts, plain
// text for Data parts, and JSON for shipping a full render result to a
// client (the same role the original implementation's protocol encoding
// played over its IPC boundary).
package export

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/interp"
)

// STL writes every Object part's mesh to w as one binary STL file: an
// 80-byte header, a little-endian uint32 triangle count, then 50 bytes per
// triangle (a normal, three vertices, each as float32, plus a zero
// attribute-byte count).
func STL(w io.Writer, parts []interp.Part) error {
	var triangles int
	for _, p := range parts {
		if p.Kind == interp.PartObject {
			triangles += len(p.Mesh.Triangles)
		}
	}

	header := make([]byte, 80)
	copy(header, "dslcad binary STL export")
	if _, err := w.Write(header); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(triangles)); err != nil {
		return err
	}

	for _, p := range parts {
		if p.Kind != interp.PartObject {
			continue
		}
		if err := writeMeshTriangles(w, p.Mesh); err != nil {
			return err
		}
	}
	return nil
}

func writeMeshTriangles(w io.Writer, mesh geom.Mesh) error {
	for i, tri := range mesh.Triangles {
		var normal geom.Point
		if i < len(mesh.Normals) {
			normal = mesh.Normals[i]
		}
		if err := writeVec3(w, normal); err != nil {
			return err
		}
		for _, idx := range tri {
			if idx < 0 || idx >= len(mesh.Vertices) {
				return fmt.Errorf("triangle references out-of-range vertex %d", idx)
			}
			if err := writeVec3(w, mesh.Vertices[idx]); err != nil {
				return err
			}
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return err
		}
	}
	return nil
}

func writeVec3(w io.Writer, p geom.Point) error {
	for _, f := range [3]float32{float32(p.X), float32(p.Y), float32(p.Z)} {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}
	return nil
}
