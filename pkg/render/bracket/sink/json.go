package sink

import (
	"encoding/json"

	"github.com/matzehuels/bracketview/pkg/render/bracket/layout"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style string
}

// WithJSONStyle records the style name in the output so a later
// re-render can reproduce the same picture.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// RenderJSON exports the layout document as pretty-printed JSON. The
// output can be decoded back into a [layout.Document] for re-rendering.
// RenderJSON does not modify doc.
func RenderJSON(doc layout.Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style != "" {
		doc.Style = r.style
	}
	if doc.Sections == nil {
		doc.Sections = []layout.Layout{}
	}
	return json.MarshalIndent(doc, "", "  ")
}
