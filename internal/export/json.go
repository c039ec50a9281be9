package export

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/interp"
)

// JSON renders parts as a single JSON document shaped the way a render
// result crosses a process boundary to a client: one object per part,
// tagged by kind, carrying only the fields that kind populates.
func JSON(parts []interp.Part) (string, error) {
	doc := "[]"
	var err error
	for i, p := range parts {
		prefix := fmt.Sprintf("%d", i)
		switch p.Kind {
		case interp.PartData:
			doc, err = sjson.Set(doc, prefix+".kind", "data")
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, prefix+".text", p.Text)
		case interp.PartPlanar:
			doc, err = sjson.Set(doc, prefix+".kind", "planar")
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, prefix+".points", pointsToSlices(p.Points))
		case interp.PartObject:
			doc, err = sjson.Set(doc, prefix+".kind", "object")
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, prefix+".vertices", pointsToSlices(p.Mesh.Vertices))
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, prefix+".triangles", p.Mesh.Triangles)
			if err != nil {
				return "", err
			}
			doc, err = sjson.Set(doc, prefix+".normals", pointsToSlices(p.Mesh.Normals))
		}
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func pointsToSlices(pts []geom.Point) [][3]float64 {
	out := make([][3]float64, len(pts))
	for i, p := range pts {
		out[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return out
}
