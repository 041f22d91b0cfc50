package audio

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// EnvelopeFloor is the gain every tone decays to at its stop time.
const EnvelopeFloor = 0.001

// ErrClosed is returned when scheduling on a closed output.
var ErrClosed = errors.New("audio output closed")

// Waveform is the shape of a tone generator's periodic signal.
type Waveform string

const (
	WaveSquare   Waveform = "square"
	WaveSine     Waveform = "sine"
	WaveSawtooth Waveform = "sawtooth"
	WaveTriangle Waveform = "triangle"
)

// ValidWaveforms returns all supported waveforms.
func ValidWaveforms() []Waveform {
	return []Waveform{WaveSquare, WaveSine, WaveSawtooth, WaveTriangle}
}

// ParseWaveform parses a waveform name. An empty name is square.
func ParseWaveform(s string) (Waveform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return WaveSquare, nil
	}
	for _, w := range ValidWaveforms() {
		if s == string(w) {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown waveform %q, must be one of: %v", s, ValidWaveforms())
}

// orDefault returns square for the zero waveform.
func (w Waveform) orDefault() Waveform {
	if w == "" {
		return WaveSquare
	}
	return w
}

// ToneRequest describes a single tone to play.
type ToneRequest struct {
	Frequency float64       // Hz
	Duration  time.Duration // time until the scheduled stop
	Waveform  Waveform      // empty means square
	Volume    float64       // 0 means the master volume
}

// Validate checks that the request can be rendered.
func (r ToneRequest) Validate() error {
	if r.Frequency <= 0 || math.IsNaN(r.Frequency) || math.IsInf(r.Frequency, 0) {
		return fmt.Errorf("frequency must be positive, got %g", r.Frequency)
	}
	if r.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %s", r.Duration)
	}
	if r.Volume < 0 || r.Volume > 1 {
		return fmt.Errorf("volume must be between 0 and 1, got %g", r.Volume)
	}
	if _, err := ParseWaveform(string(r.Waveform)); err != nil {
		return err
	}
	return nil
}

// Voice is a tone placed on an output's clock.
type Voice struct {
	Waveform  Waveform
	Frequency float64
	Gain      float64       // initial gain, decays to EnvelopeFloor at Stop
	Start     time.Duration // output clock position of the start
	Stop      time.Duration // output clock position of the scheduled stop
}

// Length returns how long the voice sounds.
func (v Voice) Length() time.Duration {
	return v.Stop - v.Start
}

// GainAt returns the envelope value at output clock position t.
// The envelope ramps exponentially from Gain at Start to EnvelopeFloor at Stop
// and is silent outside that window.
func (v Voice) GainAt(t time.Duration) float64 {
	if t < v.Start || t >= v.Stop || v.Gain <= 0 {
		return 0
	}
	return v.gainAtFraction(float64(t-v.Start) / float64(v.Length()))
}

// gainAtFraction evaluates the envelope at a fraction (0..1) of the voice length.
func (v Voice) gainAtFraction(f float64) float64 {
	if v.Gain <= EnvelopeFloor {
		return v.Gain
	}
	return v.Gain * math.Pow(EnvelopeFloor/v.Gain, f)
}

// State is the runtime state of an output.
type State int

const (
	StateRunning State = iota
	StateSuspended
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateSuspended:
		return "suspended"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
