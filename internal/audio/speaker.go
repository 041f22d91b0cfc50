package audio

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/jmylchreest/chemsfx/internal/config"
)

// SpeakerOutput renders voices through the beep speaker.
type SpeakerOutput struct {
	mu     sync.Mutex
	logger *slog.Logger

	sampleRate beep.SampleRate
	opened     time.Time
	state      State
}

// OpenSpeaker initializes the beep speaker with the configured sample rate
// and buffer size.
func OpenSpeaker(cfg config.AudioConfig, logger *slog.Logger) (*SpeakerOutput, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sampleRate := beep.SampleRate(cfg.SampleRate)
	bufferSize := sampleRate.N(cfg.Buffer.Duration())

	if err := speaker.Init(sampleRate, bufferSize); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	logger.Debug("speaker initialized", "sample_rate", sampleRate, "buffer_size", bufferSize)

	return &SpeakerOutput{
		logger:     logger,
		sampleRate: sampleRate,
		opened:     time.Now(),
		state:      StateRunning,
	}, nil
}

// State implements Output.
func (o *SpeakerOutput) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Suspend pauses the speaker until Resume is called.
func (o *SpeakerOutput) Suspend() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateRunning {
		return nil
	}
	if err := speaker.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend speaker: %w", err)
	}
	o.state = StateSuspended
	return nil
}

// Resume implements Output.
func (o *SpeakerOutput) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateClosed:
		return ErrClosed
	case StateRunning:
		return nil
	}
	if err := speaker.Resume(); err != nil {
		return fmt.Errorf("failed to resume speaker: %w", err)
	}
	o.state = StateRunning
	return nil
}

// Now implements Output.
func (o *SpeakerOutput) Now() time.Duration {
	return time.Since(o.opened)
}

// Schedule implements Output.
func (o *SpeakerOutput) Schedule(v Voice) error {
	o.mu.Lock()
	state := o.state
	o.mu.Unlock()

	if state == StateClosed {
		return ErrClosed
	}

	streamer, err := newVoiceStreamer(o.sampleRate, v, o.Now())
	if err != nil {
		return err
	}

	speaker.Play(streamer)
	return nil
}

// Close implements Output.
func (o *SpeakerOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateClosed {
		return nil
	}
	speaker.Close()
	o.state = StateClosed
	o.logger.Debug("speaker closed")
	return nil
}

// newVoiceStreamer builds the beep graph for a voice: tone generator, cut to
// the voice length, shaped by the decay envelope, delayed until v.Start.
func newVoiceStreamer(sr beep.SampleRate, v Voice, now time.Duration) (beep.Streamer, error) {
	if v.Length() <= 0 {
		return nil, fmt.Errorf("voice has no length")
	}

	tone, err := toneGenerator(sr, v.Waveform, v.Frequency)
	if err != nil {
		return nil, err
	}

	n := sr.N(v.Length())
	var streamer beep.Streamer = &envelope{
		Streamer: beep.Take(n, tone),
		voice:    v,
		length:   n,
	}

	if delay := v.Start - now; delay > 0 {
		streamer = beep.Seq(generators.Silence(sr.N(delay)), streamer)
	}
	return streamer, nil
}

// toneGenerator returns an endless beep generator for the waveform.
func toneGenerator(sr beep.SampleRate, w Waveform, freq float64) (beep.Streamer, error) {
	var (
		s   beep.Streamer
		err error
	)
	switch w.orDefault() {
	case WaveSquare:
		s, err = generators.SquareTone(sr, freq)
	case WaveSine:
		s, err = generators.SineTone(sr, freq)
	case WaveSawtooth:
		s, err = generators.SawtoothTone(sr, freq)
	case WaveTriangle:
		s, err = generators.TriangleTone(sr, freq)
	default:
		return nil, fmt.Errorf("unknown waveform %q", w)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s tone at %g Hz: %w", w.orDefault(), freq, err)
	}
	return s, nil
}

// envelope applies a voice's exponential decay to the wrapped streamer.
type envelope struct {
	beep.Streamer
	voice  Voice
	length int
	pos    int
}

// Stream implements beep.Streamer.
func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.Streamer.Stream(samples)
	for i := range samples[:n] {
		g := e.voice.gainAtFraction(float64(e.pos) / float64(e.length))
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}
