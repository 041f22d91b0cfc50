package audio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmylchreest/chemsfx/internal/config"
)

// Output is a tone-capable audio sink with its own clock.
type Output interface {
	// State reports whether the output is running, suspended or closed.
	State() State
	// Resume asks a suspended output to start rendering again.
	Resume() error
	// Now returns the current position of the output clock.
	Now() time.Duration
	// Schedule queues a voice for rendering. It never blocks on playback.
	Schedule(v Voice) error
	// Close releases the underlying device.
	Close() error
}

// Suspender is implemented by outputs that can pause rendering until Resume.
type Suspender interface {
	Suspend() error
}

// Opener acquires an Output. It is called at most once per Service.
type Opener func() (Output, error)

// NewOpener returns an Opener for the backend named in cfg.
func NewOpener(cfg config.AudioConfig, logger *slog.Logger) Opener {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case config.BackendSpeaker, "":
		return func() (Output, error) { return OpenSpeaker(cfg, logger) }
	case config.BackendOto:
		return func() (Output, error) { return OpenOto(cfg, logger) }
	case config.BackendNone:
		return func() (Output, error) { return NewNullOutput(), nil }
	default:
		return func() (Output, error) {
			return nil, fmt.Errorf("unsupported audio backend: %s", cfg.Backend)
		}
	}
}

var (
	_ Suspender = (*SpeakerOutput)(nil)
	_ Suspender = (*OtoOutput)(nil)
	_ Suspender = (*NullOutput)(nil)
)
