package output

import (
	"encoding/json"
	"io"
)

// JSONFormatter formats presets as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes presets as a JSON array.
func (f *JSONFormatter) Format(w io.Writer, presets []PresetInfo) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(presets)
}
