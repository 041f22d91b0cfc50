package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
)

// PlainFormatter formats presets as aligned human-readable lines.
type PlainFormatter struct{}

// NewPlainFormatter creates a new plain text formatter.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{}
}

// Format writes one line per preset.
func (f *PlainFormatter) Format(w io.Writer, presets []PresetInfo) error {
	width := 0
	for _, p := range presets {
		width = max(width, len(p.Name))
	}

	for _, p := range presets {
		if _, err := fmt.Fprintln(w, formatLine(p, width)); err != nil {
			return err
		}
	}
	return nil
}

// formatLine renders e.g. "fusion(newZ)  800 Hz +5 Hz/newZ  150ms  sine  vol=master".
func formatLine(p PresetInfo, width int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-*s", width, p.Name))
	sb.WriteString("  ")
	sb.WriteString(formatHz(p.Frequency))
	if p.StepHz != 0 {
		sb.WriteString(fmt.Sprintf(" +%s/%s", formatHz(p.StepHz), p.Arg))
	}
	sb.WriteString("  ")
	sb.WriteString(p.Duration().String())
	sb.WriteString("  ")
	sb.WriteString(p.Waveform)
	sb.WriteString("  ")
	if p.Volume > 0 {
		sb.WriteString(fmt.Sprintf("vol=%g", p.Volume))
	} else {
		sb.WriteString("vol=master")
	}
	if p.Overridden {
		sb.WriteString("  (config)")
	}

	return sb.String()
}

// formatHz renders a frequency with an SI prefix, e.g. "1.5 kHz".
func formatHz(hz float64) string {
	return humanize.SIWithDigits(hz, 2, "Hz")
}
