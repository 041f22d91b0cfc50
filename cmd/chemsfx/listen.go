package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chemsfx/internal/adapter/input"
	"github.com/jmylchreest/chemsfx/internal/audio"
	"github.com/jmylchreest/chemsfx/internal/config"
)

var listenOpts struct {
	source   string
	noReload bool
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Play sounds for events read from stdin",
	Long: `Read game events line by line and play the matching preset for each.

Each line is "<preset> [arg]". Blank lines and lines starting with '#' are
skipped. The line "toggle" switches sound on or off; "suspend" pauses the
audio output and "resume" starts it again.

The config file is watched while listening; volume and preset overrides are
applied without restarting.

Examples:
  printf 'shoot\nfusion 6\n' | chemsfx listen
  game-server --events | chemsfx listen -v`,
	Args: cobra.NoArgs,
	RunE: runListen,
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().StringVar(&listenOpts.source, "source", "stdin",
		"Event source")
	listenCmd.Flags().BoolVar(&listenOpts.noReload, "no-reload", false,
		"Do not watch the config file for changes")
}

func runListen(cmd *cobra.Command, args []string) error {
	adapter, err := input.NewAdapter(listenOpts.source)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := newService()
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Warn("failed to close audio output", "error", err)
		}
	}()

	if path := configFile(); !listenOpts.noReload && path != "" {
		watcher, err := config.NewWatcher(path, svc.UpdateConfig, logger)
		if err != nil {
			logger.Warn("config hot reload unavailable", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("config hot reload unavailable", "error", err)
			_ = watcher.Stop()
		} else {
			defer func() { _ = watcher.Stop() }()
		}
	}

	logger.Debug("listening for events", "source", adapter.Name(), "enabled", svc.Enabled())

	err = adapter.Run(ctx, func(ev input.Event) {
		handleEvent(svc, ev)
	}, func(err error) {
		logger.Warn("skipping event", "error", err)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// handleEvent applies a single event to the service.
func handleEvent(svc *audio.Service, ev input.Event) {
	switch ev.Control {
	case input.ControlToggle:
		logger.Info("sound toggled", "enabled", svc.Toggle())
	case input.ControlSuspend:
		svc.Suspend()
		logger.Debug("audio output suspended", "state", svc.State())
	case input.ControlResume:
		svc.Resume()
		logger.Debug("audio output resumed", "state", svc.State())
	default:
		if !svc.PlayPreset(ev.Preset, ev.Arg) {
			logger.Debug("event not played", "preset", ev.Preset, "line", ev.Line)
		}
	}
}
