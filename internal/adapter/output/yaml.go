package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats presets as a YAML sequence.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes presets as YAML.
func (f *YAMLFormatter) Format(w io.Writer, presets []PresetInfo) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(presets); err != nil {
		return err
	}
	return encoder.Close()
}
