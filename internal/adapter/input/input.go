// Package input provides input adapters for game event sources.
package input

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/chemsfx/internal/audio"
)

// Control is a non-sound instruction carried in an event stream.
type Control string

const (
	ControlToggle  Control = "toggle"
	ControlSuspend Control = "suspend"
	ControlResume  Control = "resume"
)

// Event is a request to play a preset, or a control instruction when
// Control is set.
type Event struct {
	Preset  audio.Preset
	Arg     int // gun id, atomic number, ... (0 when the preset takes none)
	Control Control
	Line    int // 1-based source line, 0 if unknown
}

// InputAdapter delivers events from a source.
type InputAdapter interface {
	// Name returns the adapter identifier (e.g., "stdin").
	Name() string

	// Run reads events until the source is exhausted or ctx is done.
	// Malformed input is reported to onError and does not stop the stream.
	Run(ctx context.Context, onEvent func(Event), onError func(error)) error
}

// NewAdapter creates an InputAdapter for the specified source.
func NewAdapter(source string) (InputAdapter, error) {
	switch source {
	case "", "stdin":
		return NewStdinAdapter(), nil
	default:
		return nil, &AdapterError{
			Source:  source,
			Message: "unknown or unavailable adapter",
		}
	}
}

// ParseEvent parses "<preset> [arg]" or one of the controls "toggle",
// "suspend" and "resume". Blank lines and lines starting with '#' return
// ok == false and no error.
func ParseEvent(line string) (ev Event, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Event{}, false, nil
	}

	fields := strings.Fields(line)
	if len(fields) > 2 {
		return Event{}, false, fmt.Errorf("expected '<preset> [arg]', got %d fields", len(fields))
	}

	switch c := Control(strings.ToLower(fields[0])); c {
	case ControlToggle, ControlSuspend, ControlResume:
		if len(fields) != 1 {
			return Event{}, false, fmt.Errorf("%s takes no argument", c)
		}
		return Event{Control: c}, true, nil
	}

	p, err := audio.ParsePreset(fields[0])
	if err != nil {
		return Event{}, false, err
	}
	ev.Preset = p

	if len(fields) == 2 {
		if !p.TakesArg() {
			return Event{}, false, fmt.Errorf("preset %s takes no argument", p)
		}
		arg, err := strconv.Atoi(fields[1])
		if err != nil {
			return Event{}, false, fmt.Errorf("invalid %s %q: %w", p.ArgName(), fields[1], err)
		}
		ev.Arg = arg
	}

	return ev, true, nil
}

// ParseError reports a malformed event line.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
