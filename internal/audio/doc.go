// Package audio provides synthesized sound effects for game events.
// Tones are rendered by a pluggable Output (beep speaker, oto or a silent
// null output) and shaped by an exponential decay envelope.
package audio
