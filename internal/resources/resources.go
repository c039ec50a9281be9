// Package resources loads non-script files referenced from a document (by
// a path like "./config.json") into an opaque value embedded directly into
// the syntax tree as an ast.ResourceLiteral.
package resources

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"
)

// Loader turns a resource file's raw text into the value a ResourceLiteral
// wraps.
type Loader func(path, text string) (any, error)

// Registry dispatches by file extension (without the leading dot).
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry returns a Registry with the built-in json, ini and yaml/yml
// loaders registered.
func NewRegistry() *Registry {
	r := &Registry{loaders: map[string]Loader{}}
	r.Register("json", loadJSON)
	r.Register("ini", loadINI)
	r.Register("yaml", loadYAML)
	r.Register("yml", loadYAML)
	return r
}

func (r *Registry) Register(ext string, l Loader) { r.loaders[ext] = l }

// Extension returns path's extension without its leading dot, or "" if it
// has none.
func (r *Registry) Extension(path string) string {
	base := path[strings.LastIndexByte(path, '/')+1:]
	i := strings.LastIndexByte(base, '.')
	if i == -1 {
		return ""
	}
	return base[i+1:]
}

// Contains reports whether ext has a registered loader.
func (r *Registry) Contains(ext string) bool {
	_, ok := r.loaders[ext]
	return ok
}

// Load dispatches to the loader registered for path's extension.
func (r *Registry) Load(path, text string) (any, error) {
	ext := r.Extension(path)
	l, ok := r.loaders[ext]
	if !ok {
		return nil, fmt.Errorf("no resource loader registered for extension %q", ext)
	}
	return l(path, text)
}

// loadJSON parses text with gjson and converts it into plain Go maps,
// slices and scalars, so the rest of the module never depends on gjson's
// own Result type.
func loadJSON(path, text string) (any, error) {
	if !gjson.Valid(text) {
		return nil, fmt.Errorf("%s: invalid json", path)
	}
	return fromGJSON(gjson.Parse(text)), nil
}

func fromGJSON(r gjson.Result) any {
	switch {
	case r.IsObject():
		m := map[string]any{}
		r.ForEach(func(key, val gjson.Result) bool {
			m[key.String()] = fromGJSON(val)
			return true
		})
		return m
	case r.IsArray():
		var out []any
		r.ForEach(func(_, val gjson.Result) bool {
			out = append(out, fromGJSON(val))
			return true
		})
		return out
	default:
		return r.Value()
	}
}

// loadYAML parses text into plain Go maps, slices and scalars via go-yaml.
func loadYAML(path, text string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// loadINI is a hand-rolled key=value/[section] reader. No library in the
// retrieved example pack parses INI, so this one concern stays on the
// standard library.
func loadINI(path, text string) (any, error) {
	section := ""
	out := map[string]map[string]string{"": {}}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			if _, ok := out[section]; !ok {
				out[section] = map[string]string{}
			}
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq == -1 {
			return nil, fmt.Errorf("%s: malformed line %q", path, line)
		}
		key := strings.TrimSpace(line[:eq])
		val := strings.TrimSpace(line[eq+1:])
		out[section][key] = val
	}
	return out, nil
}
