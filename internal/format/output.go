// Package format renders command results for scripts: JSON envelopes and EDN.
package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write renders v as json (the default when format is empty) or edn.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	}
	return fmt.Errorf("unknown format: %s", format)
}

// WriteJSON emits one JSON document per call, newline-terminated. Task text is written
// as typed: <, > and & are not escaped.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
