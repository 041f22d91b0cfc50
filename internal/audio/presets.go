package audio

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmylchreest/chemsfx/internal/config"
)

// Preset names a sound effect tied to a game event.
type Preset string

const (
	PresetShoot            Preset = "shoot"
	PresetGunSelect        Preset = "gunSelect"
	PresetFusion           Preset = "fusion"
	PresetNucleusFormed    Preset = "nucleusFormed"
	PresetElectronCaptured Preset = "electronCaptured"
	PresetAnnihilation     Preset = "annihilation"
	PresetBlackHoleFormed  Preset = "blackHoleFormed"
	PresetWhiteHoleFormed  Preset = "whiteHoleFormed"
	PresetHoleMerged       Preset = "holeMerged"
	PresetGravityOrb       Preset = "gravityOrb"
	PresetTimeZone         Preset = "timeZone"
	PresetTargetAchieved   Preset = "targetAchieved"
	PresetClick            Preset = "click"
	PresetWarning          Preset = "warning"
	PresetSuccess          Preset = "success"
)

// presetSpec is a base tone plus the frequency added per unit of argument.
type presetSpec struct {
	tone ToneRequest
	step float64
	arg  string // name of the integer argument, empty if none
}

var presetOrder = []Preset{
	PresetShoot,
	PresetGunSelect,
	PresetFusion,
	PresetNucleusFormed,
	PresetElectronCaptured,
	PresetAnnihilation,
	PresetBlackHoleFormed,
	PresetWhiteHoleFormed,
	PresetHoleMerged,
	PresetGravityOrb,
	PresetTimeZone,
	PresetTargetAchieved,
	PresetClick,
	PresetWarning,
	PresetSuccess,
}

var presets = map[Preset]presetSpec{
	PresetShoot:            {tone: ToneRequest{Frequency: 600, Duration: 100 * time.Millisecond, Waveform: WaveSquare}},
	PresetGunSelect:        {tone: ToneRequest{Frequency: 440, Duration: 80 * time.Millisecond, Waveform: WaveSquare}, step: 50, arg: "gunId"},
	PresetFusion:           {tone: ToneRequest{Frequency: 800, Duration: 150 * time.Millisecond, Waveform: WaveSine}, step: 5, arg: "newZ"},
	PresetNucleusFormed:    {tone: ToneRequest{Frequency: 1000, Duration: 200 * time.Millisecond, Waveform: WaveSine}},
	PresetElectronCaptured: {tone: ToneRequest{Frequency: 1200, Duration: 100 * time.Millisecond, Waveform: WaveSine}},
	PresetAnnihilation:     {tone: ToneRequest{Frequency: 200, Duration: 300 * time.Millisecond, Waveform: WaveSawtooth}},
	PresetBlackHoleFormed:  {tone: ToneRequest{Frequency: 80, Duration: 500 * time.Millisecond, Waveform: WaveSawtooth}},
	PresetWhiteHoleFormed:  {tone: ToneRequest{Frequency: 1500, Duration: 400 * time.Millisecond, Waveform: WaveSine}},
	PresetHoleMerged:       {tone: ToneRequest{Frequency: 150, Duration: 300 * time.Millisecond, Waveform: WaveTriangle}},
	PresetGravityOrb:       {tone: ToneRequest{Frequency: 300, Duration: 150 * time.Millisecond, Waveform: WaveTriangle}},
	PresetTimeZone:         {tone: ToneRequest{Frequency: 500, Duration: 200 * time.Millisecond, Waveform: WaveTriangle}},
	PresetTargetAchieved:   {tone: ToneRequest{Frequency: 880, Duration: 300 * time.Millisecond, Waveform: WaveSine}},
	PresetClick:            {tone: ToneRequest{Frequency: 1000, Duration: 50 * time.Millisecond, Waveform: WaveSquare, Volume: 0.1}},
	PresetWarning:          {tone: ToneRequest{Frequency: 300, Duration: 200 * time.Millisecond, Waveform: WaveSawtooth}},
	PresetSuccess:          {tone: ToneRequest{Frequency: 660, Duration: 250 * time.Millisecond, Waveform: WaveSine}},
}

// Presets returns all presets in catalog order.
func Presets() []Preset {
	return append([]Preset(nil), presetOrder...)
}

// ParsePreset looks up a preset by name. Matching ignores case, dashes and
// underscores, so "gun-select", "gun_select" and "gunSelect" are equivalent.
func ParsePreset(name string) (Preset, error) {
	key := normalizePresetName(name)
	for _, p := range presetOrder {
		if normalizePresetName(string(p)) == key {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown preset %q", name)
}

func normalizePresetName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}

// TakesArg reports whether the preset derives its frequency from an argument.
func (p Preset) TakesArg() bool {
	return presets[p].arg != ""
}

// ArgName returns the name of the preset's integer argument, if any.
func (p Preset) ArgName() string {
	return presets[p].arg
}

// Step returns the frequency added per unit of argument.
func (p Preset) Step() float64 {
	return presets[p].step
}

// Tone returns the preset's tone for the given argument.
// The argument is ignored by presets that take none.
func (p Preset) Tone(arg int) ToneRequest {
	spec := presets[p]
	req := spec.tone
	req.Frequency += spec.step * float64(arg)
	return req
}

// ToneWith returns the preset's tone with an override applied to the base
// tone before the argument step.
func (p Preset) ToneWith(o config.ToneOverride, arg int) (ToneRequest, error) {
	spec := presets[p]
	req := spec.tone

	if o.Frequency > 0 {
		req.Frequency = o.Frequency
	}
	if o.Duration > 0 {
		req.Duration = o.Duration.Duration()
	}
	if o.Waveform != "" {
		w, err := ParseWaveform(o.Waveform)
		if err != nil {
			return ToneRequest{}, fmt.Errorf("preset %s: %w", p, err)
		}
		req.Waveform = w
	}
	if o.Volume > 0 {
		req.Volume = o.Volume
	}

	req.Frequency += spec.step * float64(arg)
	return req, nil
}
