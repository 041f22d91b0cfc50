package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/chemsfx/internal/audio"
)

func testPresets() []PresetInfo {
	return []PresetInfo{
		NewPresetInfo(audio.PresetShoot, audio.PresetShoot.Tone(0), false),
		NewPresetInfo(audio.PresetFusion, audio.PresetFusion.Tone(0), false),
		NewPresetInfo(audio.PresetWhiteHoleFormed, audio.PresetWhiteHoleFormed.Tone(0), true),
		NewPresetInfo(audio.PresetClick, audio.PresetClick.Tone(0), false),
	}
}

func TestNewPresetInfo(t *testing.T) {
	info := NewPresetInfo(audio.PresetGunSelect, audio.PresetGunSelect.Tone(0), false)

	assert.Equal(t, "gunSelect", info.Name)
	assert.Equal(t, "gunId", info.Arg)
	assert.Equal(t, 50.0, info.StepHz)
	assert.Equal(t, 440.0, info.Frequency)
	assert.Equal(t, int64(80), info.DurationMS)
	assert.Equal(t, "square", info.Waveform)
	assert.Zero(t, info.Volume)

	// Unset waveform is reported as square
	info = NewPresetInfo(audio.PresetShoot, audio.ToneRequest{Frequency: 1, Duration: 1}, false)
	assert.Equal(t, "square", info.Waveform)
}

func TestPlainFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	err := NewPlainFormatter().Format(&buf, testPresets())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "shoot "))
	assert.Contains(t, lines[0], "600 Hz")
	assert.Contains(t, lines[0], "100ms")
	assert.Contains(t, lines[0], "square")
	assert.Contains(t, lines[0], "vol=master")

	assert.Contains(t, lines[1], "800 Hz +5 Hz/newZ")
	assert.Contains(t, lines[1], "sine")

	assert.Contains(t, lines[2], "1.5 kHz")
	assert.Contains(t, lines[2], "(config)")

	assert.Contains(t, lines[3], "vol=0.1")

	// Names are padded to a common width
	assert.Equal(t, strings.Index(lines[0], "600"), strings.Index(lines[3], "1 kHz"))
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONFormatter().Format(&buf, testPresets())
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 4)

	assert.Equal(t, "fusion", decoded[1]["name"])
	assert.Equal(t, "newZ", decoded[1]["arg"])
	assert.Equal(t, 5.0, decoded[1]["step_hz"])
	assert.Equal(t, 150.0, decoded[1]["duration_ms"])
	assert.NotContains(t, decoded[0], "arg")
	assert.Equal(t, true, decoded[2]["overridden"])
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	err := NewYAMLFormatter().Format(&buf, testPresets())
	require.NoError(t, err)

	var decoded []PresetInfo
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testPresets(), decoded)
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &PlainFormatter{}, NewFormatter(FormatPlain))
	assert.IsType(t, &JSONFormatter{}, NewFormatter(FormatJSON))
	assert.IsType(t, &YAMLFormatter{}, NewFormatter(FormatYAML))
	assert.IsType(t, &PlainFormatter{}, NewFormatter("unknown"))
}
