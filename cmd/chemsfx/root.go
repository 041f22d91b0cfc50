// Package main provides the CLI entrypoint for chemsfx.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chemsfx/internal/audio"
	"github.com/jmylchreest/chemsfx/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		backend    string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "chemsfx",
	Short: "Synthesized sound effects for CHEMVENTUR",
	Long: `chemsfx plays the synthesized sound effects of CHEMVENTUR.

Every sound is a single oscillator tone with an exponential decay. Sounds are
cosmetic: when no audio device is available chemsfx keeps running silently.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if globalOpts.backend != "" {
			if !slices.Contains(config.ValidBackends(), globalOpts.backend) {
				return fmt.Errorf("invalid backend %q (valid: %v)", globalOpts.backend, config.ValidBackends())
			}
			cfg.Audio.Backend = globalOpts.backend
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/chemsfx/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.backend, "backend", "",
		"Audio backend: speaker, oto or none (overrides config)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// configFile returns the config path in effect.
func configFile() string {
	if globalOpts.configPath != "" {
		return globalOpts.configPath
	}
	return config.ConfigPath()
}

// newService builds an audio service from the loaded config and acquires
// the output. A missing device leaves the service disabled, not failed.
func newService() *audio.Service {
	svc := audio.NewService(cfg.Audio, audio.NewOpener(cfg.Audio, logger), logger)
	svc.UpdateConfig(cfg)
	svc.Init()
	return svc
}
