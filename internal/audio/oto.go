package audio

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/jmylchreest/chemsfx/internal/config"
)

// OtoOutput renders voices through an oto context using a software mixer.
// The mixer position is the output clock, so scheduling is sample accurate.
type OtoOutput struct {
	mu     sync.Mutex
	logger *slog.Logger

	ctx    *oto.Context
	player *oto.Player
	mix    *mixer
	state  State
}

// OpenOto creates the oto context and starts a player fed by the mixer.
func OpenOto(cfg config.AudioConfig, logger *slog.Logger) (*OtoOutput, error) {
	if logger == nil {
		logger = slog.Default()
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   cfg.Buffer.Duration(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}
	<-ready

	mix := newMixer(cfg.SampleRate)
	player := ctx.NewPlayer(mix)
	player.Play()

	logger.Debug("oto context initialized", "sample_rate", cfg.SampleRate)

	return &OtoOutput{
		logger: logger,
		ctx:    ctx,
		player: player,
		mix:    mix,
		state:  StateRunning,
	}, nil
}

// State implements Output.
func (o *OtoOutput) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Suspend pauses the oto context until Resume is called.
func (o *OtoOutput) Suspend() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateRunning {
		return nil
	}
	if err := o.ctx.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend oto context: %w", err)
	}
	o.state = StateSuspended
	return nil
}

// Resume implements Output.
func (o *OtoOutput) Resume() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch o.state {
	case StateClosed:
		return ErrClosed
	case StateRunning:
		return nil
	}
	if err := o.ctx.Resume(); err != nil {
		return fmt.Errorf("failed to resume oto context: %w", err)
	}
	o.state = StateRunning
	return nil
}

// Now implements Output.
func (o *OtoOutput) Now() time.Duration {
	return o.mix.Now()
}

// Schedule implements Output.
func (o *OtoOutput) Schedule(v Voice) error {
	if o.State() == StateClosed {
		return ErrClosed
	}
	return o.mix.Schedule(v)
}

// Close implements Output. oto allows a single context per process, so the
// context itself stays alive; only the player is released.
func (o *OtoOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateClosed {
		return nil
	}
	o.state = StateClosed
	o.logger.Debug("oto output closed")
	return o.player.Close()
}

// mixer mixes scheduled voices into a 16-bit mono PCM stream.
type mixer struct {
	mu         sync.Mutex
	sampleRate int
	voices     []*voiceState
	pos        int64
}

type voiceState struct {
	start  int64
	length int64
	i      int64
	osc    oscillator
	voice  Voice
}

func newMixer(sampleRate int) *mixer {
	return &mixer{sampleRate: sampleRate}
}

// Now returns the number of rendered samples as a duration.
func (m *mixer) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.durationAt(m.pos)
}

func (m *mixer) durationAt(samples int64) time.Duration {
	return time.Duration(samples) * time.Second / time.Duration(m.sampleRate)
}

func (m *mixer) samplesIn(d time.Duration) int64 {
	return int64(d) * int64(m.sampleRate) / int64(time.Second)
}

// Schedule adds a voice starting at v.Start on the mixer clock.
// Voices whose start already passed begin at the next rendered sample.
func (m *mixer) Schedule(v Voice) error {
	if v.Frequency <= 0 || v.Frequency >= float64(m.sampleRate)/2 {
		return fmt.Errorf("frequency %g Hz outside (0, %d) Hz", v.Frequency, m.sampleRate/2)
	}
	length := m.samplesIn(v.Length())
	if length <= 0 {
		return fmt.Errorf("voice shorter than one sample")
	}
	osc, err := newOscillator(v.Waveform, v.Frequency, m.sampleRate)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	start := m.samplesIn(v.Start)
	if start < m.pos {
		start = m.pos
	}
	m.voices = append(m.voices, &voiceState{start: start, length: length, osc: osc, voice: v})
	return nil
}

// Active returns the number of voices that have not finished.
func (m *mixer) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.voices)
}

// Read implements io.Reader for oto.Player.
func (m *mixer) Read(p []byte) (int, error) {
	samples := len(p) / 2

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < samples; i++ {
		var sum float64
		for idx := 0; idx < len(m.voices); idx++ {
			vs := m.voices[idx]
			if m.pos < vs.start {
				continue
			}
			g := vs.voice.gainAtFraction(float64(vs.i) / float64(vs.length))
			sum += vs.osc.next() * g
			vs.i++
			if vs.i >= vs.length {
				m.voices = append(m.voices[:idx], m.voices[idx+1:]...)
				idx--
			}
		}
		if sum > 1 {
			sum = 1
		} else if sum < -1 {
			sum = -1
		}
		v := int16(sum * 32767)
		p[2*i] = byte(v)
		p[2*i+1] = byte(v >> 8)
		m.pos++
	}
	return samples * 2, nil
}

// oscillator is a phase accumulator producing one waveform in [-1, 1].
type oscillator struct {
	shape func(phase float64) float64
	phase float64
	step  float64
}

func newOscillator(w Waveform, freq float64, sampleRate int) (oscillator, error) {
	var shape func(float64) float64
	switch w.orDefault() {
	case WaveSquare:
		shape = func(p float64) float64 {
			if p < 0.5 {
				return 1
			}
			return -1
		}
	case WaveSine:
		shape = func(p float64) float64 { return math.Sin(2 * math.Pi * p) }
	case WaveSawtooth:
		shape = func(p float64) float64 { return 2*p - 1 }
	case WaveTriangle:
		shape = func(p float64) float64 { return 4*math.Abs(p-0.5) - 1 }
	default:
		return oscillator{}, fmt.Errorf("unknown waveform %q", w)
	}
	return oscillator{shape: shape, step: freq / float64(sampleRate)}, nil
}

func (o *oscillator) next() float64 {
	v := o.shape(o.phase)
	o.phase += o.step
	if o.phase >= 1 {
		o.phase -= math.Floor(o.phase)
	}
	return v
}
