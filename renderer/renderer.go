package renderer

import "github.com/textpath/textpath/layout"

// Renderer serializes a laid out document into its final file format.
// Render returns the generated bytes, for example an SVG document.
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}
