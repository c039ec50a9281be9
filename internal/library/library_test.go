package library

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/scadlang/dslcad/internal/geom"
	"github.com/scadlang/dslcad/internal/value"
)

func TestFindResolvesRequiredArguments(t *testing.T) {
	lib := New(geom.NewReference())
	h, err := lib.Find("add", map[string]value.Type{"left": value.TNumber, "right": value.TNumber})
	if err != nil {
		t.Fatal(err)
	}
	result, err := h(map[string]value.Value{"left": value.Number(1), "right": value.Number(2)})
	if err != nil {
		t.Fatal(err)
	}
	if result.(value.Number) != 3 {
		t.Fatalf("expected 3, got %v", result)
	}
}

func TestFindRejectsUnknownArgumentName(t *testing.T) {
	lib := New(geom.NewReference())
	_, err := lib.Find("add", map[string]value.Type{"left": value.TNumber, "bogus": value.TNumber})
	if err == nil {
		t.Fatal("expected no-matching-signature error")
	}
}

func TestFindResolvesUnionOverloadByArgumentType(t *testing.T) {
	lib := New(geom.NewReference())
	h, err := lib.Find("union", map[string]value.Type{"left": value.TEdge, "right": value.TEdge})
	if err != nil {
		t.Fatal(err)
	}
	if h == nil {
		t.Fatal("expected handler")
	}
	h2, err := lib.Find("union", map[string]value.Type{"left": value.TShape, "right": value.TShape})
	if err != nil {
		t.Fatal(err)
	}
	if h2 == nil {
		t.Fatal("expected handler")
	}
}

func TestFindAllowsOmittedOptionalArgument(t *testing.T) {
	lib := New(geom.NewReference())
	_, err := lib.Find("revolve", map[string]value.Type{"shape": value.TEdge})
	if err != nil {
		t.Fatalf("expected revolve to resolve without x/y/z: %v", err)
	}
}

func TestRevolveFailsWithNoAxisGiven(t *testing.T) {
	lib := New(geom.NewReference())
	h, err := lib.Find("revolve", map[string]value.Type{"shape": value.TEdge})
	if err != nil {
		t.Fatal(err)
	}
	e, err := geom.NewReference().NewEdge()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := h(map[string]value.Value{"shape": value.Edge{E: e}}); err == nil {
		t.Fatal("expected an error when none of x, y, z is given")
	}
}

func TestPointSquareCircleResolveWithNoArguments(t *testing.T) {
	lib := New(geom.NewReference())
	for _, name := range []string{"point", "square", "circle"} {
		h, err := lib.Find(name, map[string]value.Type{})
		if err != nil {
			t.Fatalf("%s: expected resolution with no arguments: %v", name, err)
		}
		if _, err := h(map[string]value.Value{}); err != nil {
			t.Fatalf("%s: expected defaulted call to succeed: %v", name, err)
		}
	}
}

func TestFaceClosesPointsAndEdgesIntoALoop(t *testing.T) {
	lib := New(geom.NewReference())
	pointHandler, err := lib.Find("point", map[string]value.Type{"x": value.TNumber, "y": value.TNumber})
	if err != nil {
		t.Fatal(err)
	}
	p0, err := pointHandler(map[string]value.Value{"x": value.Number(0), "y": value.Number(0)})
	if err != nil {
		t.Fatal(err)
	}
	p1, err := pointHandler(map[string]value.Value{"x": value.Number(1), "y": value.Number(0)})
	if err != nil {
		t.Fatal(err)
	}
	p2, err := pointHandler(map[string]value.Value{"x": value.Number(1), "y": value.Number(1)})
	if err != nil {
		t.Fatal(err)
	}

	faceHandler, err := lib.Find("face", map[string]value.Type{"parts": value.TList})
	if err != nil {
		t.Fatal(err)
	}
	result, err := faceHandler(map[string]value.Value{"parts": value.List{p0, p1, p2}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := result.(value.Edge); !ok {
		t.Fatalf("expected face to return an Edge, got %T", result)
	}
}

func TestUnknownFunctionName(t *testing.T) {
	lib := New(geom.NewReference())
	if lib.Contains("not_a_real_function") {
		t.Fatal("expected Contains to be false")
	}
	_, err := lib.Find("not_a_real_function", nil)
	if err == nil {
		t.Fatal("expected unknown-function error")
	}
}

func TestCheatSheetOmitsHiddenAndListsCategories(t *testing.T) {
	lib := New(geom.NewReference())
	sheet := lib.String()
	if strings.Contains(sheet, "add(") {
		t.Fatal("hidden signature add() should not appear in cheat sheet")
	}
	if !strings.Contains(sheet, "## 3D") {
		t.Fatal("expected a 3D section")
	}
	if !strings.Contains(sheet, "cube(x=Number") {
		t.Fatal("expected cube signature rendered")
	}
}

func TestCheatSheetSnapshot(t *testing.T) {
	lib := New(geom.NewReference())
	snaps.MatchSnapshot(t, lib.String())
}
