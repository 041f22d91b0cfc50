package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/chemsfx/internal/adapter/input"
	"github.com/jmylchreest/chemsfx/internal/audio"
	"github.com/jmylchreest/chemsfx/internal/config"
)

func newNullService(t *testing.T) *audio.Service {
	t.Helper()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	c := config.DefaultConfig()
	c.Audio.Backend = config.BackendNone
	svc := audio.NewService(c.Audio, audio.NewOpener(c.Audio, logger), logger)
	svc.Init()
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestHandleEvent_Toggle(t *testing.T) {
	svc := newNullService(t)
	require.True(t, svc.Enabled())

	handleEvent(svc, input.Event{Control: input.ControlToggle})
	assert.False(t, svc.Enabled())
	assert.False(t, svc.Shoot())

	handleEvent(svc, input.Event{Control: input.ControlToggle})
	assert.True(t, svc.Enabled())
	assert.True(t, svc.Shoot())
}

func TestHandleEvent_SuspendResume(t *testing.T) {
	svc := newNullService(t)

	handleEvent(svc, input.Event{Control: input.ControlSuspend})
	assert.Equal(t, audio.StateSuspended, svc.State())

	handleEvent(svc, input.Event{Control: input.ControlResume})
	assert.Equal(t, audio.StateRunning, svc.State())
}

func TestHandleEvent_PresetAndResume(t *testing.T) {
	svc := newNullService(t)

	assert.NotPanics(t, func() {
		handleEvent(svc, input.Event{Preset: audio.PresetFusion, Arg: 6, Line: 1})
		handleEvent(svc, input.Event{Control: input.ControlResume})
		handleEvent(svc, input.Event{Preset: audio.Preset("laser"), Line: 2})
	})
	assert.True(t, svc.Enabled())
}
