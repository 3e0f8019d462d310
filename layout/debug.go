package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON dumps the built document as JSON for debugging and
// visualization. Path data is omitted; glyph positions and line geometry are
// enough to diagnose wrap and placement issues.
func WriteDebugJSON(doc *Document, path string) error {
	if doc == nil {
		return nil
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
