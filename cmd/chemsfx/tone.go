package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chemsfx/internal/audio"
)

var toneOpts struct {
	frequency float64
	duration  time.Duration
	waveform  string
	volume    float64
}

var toneCmd = &cobra.Command{
	Use:   "tone",
	Short: "Play an arbitrary tone",
	Long: `Play a single decaying tone with the given parameters.

A volume of 0 uses the configured master volume.

Examples:
  chemsfx tone --frequency 440 --duration 250ms
  chemsfx tone -f 80 -d 500ms -w sawtooth --volume 0.5`,
	Args: cobra.NoArgs,
	RunE: runTone,
}

func init() {
	rootCmd.AddCommand(toneCmd)

	toneCmd.Flags().Float64VarP(&toneOpts.frequency, "frequency", "f", 440,
		"Frequency in Hz")
	toneCmd.Flags().DurationVarP(&toneOpts.duration, "duration", "d", 200*time.Millisecond,
		"Tone duration")
	toneCmd.Flags().StringVarP(&toneOpts.waveform, "waveform", "w", string(audio.WaveSquare),
		fmt.Sprintf("Waveform: %v", audio.ValidWaveforms()))
	toneCmd.Flags().Float64Var(&toneOpts.volume, "volume", 0,
		"Peak volume 0..1 (0 = master volume)")
}

func runTone(cmd *cobra.Command, args []string) error {
	waveform, err := audio.ParseWaveform(toneOpts.waveform)
	if err != nil {
		return err
	}

	req := audio.ToneRequest{
		Frequency: toneOpts.frequency,
		Duration:  toneOpts.duration,
		Waveform:  waveform,
		Volume:    toneOpts.volume,
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid tone: %w", err)
	}

	svc := newService()
	waitAndClose(svc, req, svc.PlayTone(req))
	return nil
}
