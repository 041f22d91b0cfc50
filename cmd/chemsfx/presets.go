package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chemsfx/internal/adapter/output"
	"github.com/jmylchreest/chemsfx/internal/audio"
)

var presetsOpts struct {
	format string
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the preset sounds",
	Long: `List every preset sound with the tone it plays.

Overrides from the [presets] section of the config file are applied and
marked. Frequencies are shown at argument 0; presets that take an argument
show how far each step shifts the pitch.`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)

	presetsCmd.Flags().StringVarP(&presetsOpts.format, "output", "o", string(output.FormatPlain),
		fmt.Sprintf("Output format: %v", output.ValidFormats()))
}

func runPresets(cmd *cobra.Command, args []string) error {
	format := output.FormatType(presetsOpts.format)
	if !slices.Contains(output.ValidFormats(), format) {
		return fmt.Errorf("invalid output format %q (valid: %v)", presetsOpts.format, output.ValidFormats())
	}

	// The catalog only needs overrides; no output device is opened.
	svc := audio.NewService(cfg.Audio, nil, logger)
	svc.UpdateConfig(cfg)
	overrides := svc.Overrides()

	infos := make([]output.PresetInfo, 0, len(audio.Presets()))
	for _, p := range audio.Presets() {
		req, _ := svc.PresetTone(p, 0)
		_, overridden := overrides[p]
		infos = append(infos, output.NewPresetInfo(p, req, overridden))
	}

	return output.NewFormatter(format).Format(os.Stdout, infos)
}
