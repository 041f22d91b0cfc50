// Package output provides output formatters for the preset catalog.
package output

import (
	"io"
	"time"

	"github.com/jmylchreest/chemsfx/internal/audio"
)

// Formatter formats preset entries for output.
type Formatter interface {
	// Format writes formatted presets to the writer.
	Format(w io.Writer, presets []PresetInfo) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatPlain FormatType = "plain"
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
)

// ValidFormats returns all supported format types.
func ValidFormats() []FormatType {
	return []FormatType{FormatPlain, FormatJSON, FormatYAML}
}

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType) Formatter {
	switch format {
	case FormatJSON:
		return NewJSONFormatter()
	case FormatYAML:
		return NewYAMLFormatter()
	case FormatPlain:
		fallthrough
	default:
		return NewPlainFormatter()
	}
}

// PresetInfo describes a preset as it will be played.
type PresetInfo struct {
	Name       string  `json:"name" yaml:"name"`
	Arg        string  `json:"arg,omitempty" yaml:"arg,omitempty"`
	StepHz     float64 `json:"step_hz,omitempty" yaml:"step_hz,omitempty"`
	Frequency  float64 `json:"frequency_hz" yaml:"frequency_hz"`
	DurationMS int64   `json:"duration_ms" yaml:"duration_ms"`
	Waveform   string  `json:"waveform" yaml:"waveform"`
	Volume     float64 `json:"volume,omitempty" yaml:"volume,omitempty"` // 0 = master volume
	Overridden bool    `json:"overridden,omitempty" yaml:"overridden,omitempty"`
}

// NewPresetInfo builds the catalog entry for a preset's tone at argument 0.
func NewPresetInfo(p audio.Preset, req audio.ToneRequest, overridden bool) PresetInfo {
	waveform := req.Waveform
	if waveform == "" {
		waveform = audio.WaveSquare
	}
	return PresetInfo{
		Name:       string(p),
		Arg:        p.ArgName(),
		StepHz:     p.Step(),
		Frequency:  req.Frequency,
		DurationMS: req.Duration.Milliseconds(),
		Waveform:   string(waveform),
		Volume:     req.Volume,
		Overridden: overridden,
	}
}

// Duration returns the tone duration.
func (p PresetInfo) Duration() time.Duration {
	return time.Duration(p.DurationMS) * time.Millisecond
}
