package export

import (
	"io"
	"strings"

	"github.com/scadlang/dslcad/internal/interp"
)

// TXT writes every Data part's text to w, one per line.
func TXT(w io.Writer, parts []interp.Part) error {
	var b strings.Builder
	for _, p := range parts {
		if p.Kind != interp.PartData {
			continue
		}
		b.WriteString(p.Text)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
