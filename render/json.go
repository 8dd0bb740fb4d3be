package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/jst/document"
)

// JSONRenderer writes documents as JSON to a writer.
type JSONRenderer struct {
	W io.Writer
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the documents as a JSON array. A nil library is
// written as an empty array.
func (r *JSONRenderer) Render(docs document.Library) error {
	if docs == nil {
		docs = document.Library{}
	}
	return json.NewEncoder(r.W).Encode(docs)
}
