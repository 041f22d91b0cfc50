package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drain streams s to completion and returns the left channel.
func drain(t *testing.T, s beep.Streamer) []float64 {
	t.Helper()
	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, buf[i][0])
		}
		if !ok {
			break
		}
		require.Less(t, len(out), 10_000_000, "streamer never finished")
	}
	require.NoError(t, s.Err())
	return out
}

func TestVoiceStreamer_LengthAndEnvelope(t *testing.T) {
	sr := beep.SampleRate(44100)
	v := Voice{Waveform: WaveSquare, Frequency: 600, Gain: 0.5, Start: 0, Stop: 100 * time.Millisecond}

	s, err := newVoiceStreamer(sr, v, 0)
	require.NoError(t, err)

	samples := drain(t, s)
	assert.Len(t, samples, sr.N(100*time.Millisecond))

	// Square wave: magnitude follows the envelope from the gain down to the floor
	assert.InDelta(t, 0.5, peak(samples[:50]), 0.01)
	tail := peak(samples[len(samples)-50:])
	assert.Less(t, tail, 0.0011)
	assert.Greater(t, tail, 0.0009)
}

func peak(samples []float64) float64 {
	p := 0.0
	for _, x := range samples {
		p = math.Max(p, math.Abs(x))
	}
	return p
}

func TestVoiceStreamer_DelayedStart(t *testing.T) {
	sr := beep.SampleRate(8000)
	v := Voice{Waveform: WaveSine, Frequency: 440, Gain: 1, Start: 50 * time.Millisecond, Stop: 60 * time.Millisecond}

	s, err := newVoiceStreamer(sr, v, 0)
	require.NoError(t, err)

	samples := drain(t, s)
	delay := sr.N(50 * time.Millisecond)
	assert.Len(t, samples, delay+sr.N(10*time.Millisecond))
	for _, x := range samples[:delay] {
		assert.Zero(t, x)
	}
}

func TestVoiceStreamer_AllWaveforms(t *testing.T) {
	sr := beep.SampleRate(44100)
	for _, w := range ValidWaveforms() {
		t.Run(string(w), func(t *testing.T) {
			v := Voice{Waveform: w, Frequency: 440, Gain: 0.8, Stop: 20 * time.Millisecond}
			s, err := newVoiceStreamer(sr, v, 0)
			require.NoError(t, err)

			samples := drain(t, s)
			assert.LessOrEqual(t, peak(samples), 0.8+1e-9)
			assert.Greater(t, peak(samples), 0.1)
		})
	}
}

func TestVoiceStreamer_Rejects(t *testing.T) {
	sr := beep.SampleRate(8000)

	_, err := newVoiceStreamer(sr, Voice{Waveform: WaveSine, Frequency: 5000, Gain: 1, Stop: time.Second}, 0)
	assert.Error(t, err, "frequency above nyquist")

	_, err = newVoiceStreamer(sr, Voice{Waveform: "pulse", Frequency: 440, Gain: 1, Stop: time.Second}, 0)
	assert.Error(t, err)

	_, err = newVoiceStreamer(sr, Voice{Waveform: WaveSine, Frequency: 440, Gain: 1}, 0)
	assert.Error(t, err)
}
