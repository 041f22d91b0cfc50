package audio

import (
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/jmylchreest/chemsfx/internal/config"
)

// Service plays preset and ad-hoc tones on an Output.
// Sound is cosmetic: no method returns an error or panics because of audio.
type Service struct {
	mu     sync.Mutex
	logger *slog.Logger
	open   Opener
	cfg    config.AudioConfig

	out          Output
	initialized  bool
	enabled      bool
	masterVolume float64
	overrides    map[Preset]config.ToneOverride
}

// NewService creates a service. The output is not acquired until Init.
func NewService(cfg config.AudioConfig, open Opener, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		logger:       logger,
		open:         open,
		cfg:          cfg,
		masterVolume: clampVolume(cfg.MasterVolume),
		overrides:    make(map[Preset]config.ToneOverride),
	}
}

// Init acquires the output. On success the enabled flag follows the
// configuration; on failure the service stays disabled for its lifetime.
// Only the first call has any effect.
func (s *Service) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.initialized = true

	out, err := s.acquire()
	if err != nil {
		s.logger.Warn("audio unavailable, sound disabled", "error", err)
		s.enabled = false
		return
	}

	s.out = out
	s.enabled = s.cfg.Enabled
	s.logger.Debug("audio initialized", "enabled", s.enabled, "state", out.State())
}

// acquire runs the opener, converting panics into errors.
func (s *Service) acquire() (out Output, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("audio opener panicked: %v", r)
		}
	}()

	if s.open == nil {
		return nil, fmt.Errorf("no audio opener configured")
	}
	out, err = s.open()
	if err == nil && out == nil {
		err = fmt.Errorf("audio opener returned no output")
	}
	return out, err
}

// Resume asks a suspended output to resume. It does nothing when the output
// is running, closed or missing.
func (s *Service) Resume() {
	s.mu.Lock()
	out := s.out
	s.mu.Unlock()

	if out == nil || out.State() != StateSuspended {
		return
	}
	if err := out.Resume(); err != nil {
		s.logger.Debug("failed to resume audio output", "error", err)
	}
}

// Suspend pauses a running output that supports it. Tones played while
// suspended are queued and sound after Resume.
func (s *Service) Suspend() {
	s.mu.Lock()
	out := s.out
	s.mu.Unlock()

	if out == nil || out.State() != StateRunning {
		return
	}
	sp, ok := out.(Suspender)
	if !ok {
		return
	}
	if err := sp.Suspend(); err != nil {
		s.logger.Debug("failed to suspend audio output", "error", err)
	}
}

// State reports the output state. A service without an output is closed.
func (s *Service) State() State {
	s.mu.Lock()
	out := s.out
	s.mu.Unlock()

	if out == nil {
		return StateClosed
	}
	return out.State()
}

// PlayTone schedules a tone starting now. It reports whether the tone was
// scheduled; disabled service, invalid requests and output failures all
// yield false.
func (s *Service) PlayTone(req ToneRequest) bool {
	s.mu.Lock()
	out := s.out
	enabled := s.enabled
	master := s.masterVolume
	s.mu.Unlock()

	if !enabled || out == nil {
		return false
	}
	if err := req.Validate(); err != nil {
		return false
	}

	gain := req.Volume
	if gain == 0 {
		gain = master
	}

	return schedule(out, req, gain) == nil
}

// schedule reads the output clock and queues the voice, converting panics
// from the output into errors.
func schedule(out Output, req ToneRequest, gain float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("audio output panicked: %v", r)
		}
	}()

	now := out.Now()
	return out.Schedule(Voice{
		Waveform:  req.Waveform.orDefault(),
		Frequency: req.Frequency,
		Gain:      gain,
		Start:     now,
		Stop:      now + req.Duration,
	})
}

// PlayPreset plays a preset with its configured overrides.
func (s *Service) PlayPreset(p Preset, arg int) bool {
	req, ok := s.PresetTone(p, arg)
	if !ok {
		return false
	}
	return s.PlayTone(req)
}

// PresetTone returns the tone a preset would play, overrides included.
func (s *Service) PresetTone(p Preset, arg int) (ToneRequest, bool) {
	if _, known := presets[p]; !known {
		return ToneRequest{}, false
	}

	s.mu.Lock()
	o, overridden := s.overrides[p]
	s.mu.Unlock()

	if !overridden {
		return p.Tone(arg), true
	}
	req, err := p.ToneWith(o, arg)
	if err != nil {
		return p.Tone(arg), true
	}
	return req, true
}

// Toggle flips the enabled flag and returns the new value. Without an
// output the service cannot be enabled.
func (s *Service) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.out == nil {
		s.enabled = false
		return false
	}
	s.enabled = !s.enabled
	return s.enabled
}

// Enabled reports whether tones are currently played.
func (s *Service) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// MasterVolume returns the volume used by tones without their own volume.
func (s *Service) MasterVolume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.masterVolume
}

// SetMasterVolume sets the master volume, clamped to 0..1.
func (s *Service) SetMasterVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.masterVolume = clampVolume(volume)
	s.logger.Debug("master volume set", "volume", s.masterVolume)
}

// UpdateConfig applies a reloaded configuration. The master volume and preset
// overrides change; the output and the enabled flag do not.
func (s *Service) UpdateConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	overrides := make(map[Preset]config.ToneOverride, len(cfg.Presets))
	for name, o := range cfg.Presets {
		p, err := ParsePreset(name)
		if err != nil {
			s.logger.Warn("ignoring override for unknown preset", "preset", name)
			continue
		}
		if _, err := p.ToneWith(o, 0); err != nil {
			s.logger.Warn("ignoring invalid preset override", "preset", name, "error", err)
			continue
		}
		overrides[p] = o
	}

	s.mu.Lock()
	s.masterVolume = clampVolume(cfg.Audio.MasterVolume)
	s.overrides = overrides
	s.mu.Unlock()

	s.logger.Debug("audio config updated", "master_volume", cfg.Audio.MasterVolume, "overrides", len(overrides))
}

// Overrides returns a copy of the active preset overrides.
func (s *Service) Overrides() map[Preset]config.ToneOverride {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[Preset]config.ToneOverride, len(s.overrides))
	maps.Copy(out, s.overrides)
	return out
}

// Close releases the output. The service stays disabled afterwards.
func (s *Service) Close() error {
	s.mu.Lock()
	out := s.out
	s.out = nil
	s.enabled = false
	s.mu.Unlock()

	if out == nil {
		return nil
	}
	return out.Close()
}

func clampVolume(volume float64) float64 {
	if volume < 0 {
		return 0
	}
	if volume > 1 {
		return 1
	}
	return volume
}

// Shoot plays the weapon fire sound.
func (s *Service) Shoot() bool { return s.PlayPreset(PresetShoot, 0) }

// GunSelect plays the weapon switch sound; the pitch rises with gunID.
func (s *Service) GunSelect(gunID int) bool { return s.PlayPreset(PresetGunSelect, gunID) }

// Fusion plays the fusion sound; the pitch rises with the new atomic number.
func (s *Service) Fusion(newZ int) bool { return s.PlayPreset(PresetFusion, newZ) }

func (s *Service) NucleusFormed() bool    { return s.PlayPreset(PresetNucleusFormed, 0) }
func (s *Service) ElectronCaptured() bool { return s.PlayPreset(PresetElectronCaptured, 0) }
func (s *Service) Annihilation() bool     { return s.PlayPreset(PresetAnnihilation, 0) }
func (s *Service) BlackHoleFormed() bool  { return s.PlayPreset(PresetBlackHoleFormed, 0) }
func (s *Service) WhiteHoleFormed() bool  { return s.PlayPreset(PresetWhiteHoleFormed, 0) }
func (s *Service) HoleMerged() bool       { return s.PlayPreset(PresetHoleMerged, 0) }
func (s *Service) GravityOrb() bool       { return s.PlayPreset(PresetGravityOrb, 0) }
func (s *Service) TimeZone() bool         { return s.PlayPreset(PresetTimeZone, 0) }
func (s *Service) TargetAchieved() bool   { return s.PlayPreset(PresetTargetAchieved, 0) }
func (s *Service) Click() bool            { return s.PlayPreset(PresetClick, 0) }
func (s *Service) Warning() bool          { return s.PlayPreset(PresetWarning, 0) }
func (s *Service) Success() bool          { return s.PlayPreset(PresetSuccess, 0) }
