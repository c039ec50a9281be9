package resources

import (
	"fmt"
	"testing"
)

func TestLoadJSON(t *testing.T) {
	r := NewRegistry()
	v, err := r.Load("config.json", `{"width": 3, "tags": ["a", "b"]}`)
	if err != nil {
		t.Fatal(err)
	}
	m := v.(map[string]any)
	if m["width"].(float64) != 3 {
		t.Fatalf("unexpected width: %v", m["width"])
	}
	tags := m["tags"].([]any)
	if len(tags) != 2 || tags[0] != "a" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestLoadINI(t *testing.T) {
	r := NewRegistry()
	v, err := r.Load("config.ini", "[box]\nwidth=3\nheight = 4\n")
	if err != nil {
		t.Fatal(err)
	}
	m := v.(map[string]map[string]string)
	if m["box"]["width"] != "3" || m["box"]["height"] != "4" {
		t.Fatalf("unexpected sections: %v", m)
	}
}

func TestLoadYAML(t *testing.T) {
	r := NewRegistry()
	v, err := r.Load("config.yaml", "width: 3\ntags:\n  - a\n  - b\n")
	if err != nil {
		t.Fatal(err)
	}
	m := v.(map[string]any)
	if fmt.Sprint(m["width"]) != "3" {
		t.Fatalf("unexpected width: %v (%T)", m["width"], m["width"])
	}
	tags := m["tags"].([]any)
	if len(tags) != 2 || tags[0] != "a" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}

func TestUnknownExtension(t *testing.T) {
	r := NewRegistry()
	if r.Contains("stl") {
		t.Fatal("stl should not be a registered resource loader")
	}
	if _, err := r.Load("model.stl", ""); err == nil {
		t.Fatal("expected error for unregistered extension")
	}
}
