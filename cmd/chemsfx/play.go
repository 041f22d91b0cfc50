package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/chemsfx/internal/audio"
)

// releaseTail is added to a tone's duration before closing the output so
// buffered samples reach the device.
const releaseTail = 100 * time.Millisecond

var playCmd = &cobra.Command{
	Use:   "play <preset> [arg]",
	Short: "Play a preset sound",
	Long: `Play one of the built-in preset sounds and wait for it to finish.

Presets that take an argument (gunSelect, fusion) shift their pitch with it.
Preset names are case-insensitive and may use dashes or underscores.

Examples:
  chemsfx play shoot
  chemsfx play fusion 26
  chemsfx play gun-select 3`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	p, err := audio.ParsePreset(args[0])
	if err != nil {
		return err
	}

	arg := 0
	if len(args) == 2 {
		if !p.TakesArg() {
			return fmt.Errorf("preset %s takes no argument", p)
		}
		arg, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", p.ArgName(), args[1], err)
		}
	}

	svc := newService()
	req, _ := svc.PresetTone(p, arg)
	played := svc.PlayPreset(p, arg)
	waitAndClose(svc, req, played)
	return nil
}

// waitAndClose blocks until a played tone has rendered, then releases the output.
func waitAndClose(svc *audio.Service, req audio.ToneRequest, played bool) {
	if played {
		time.Sleep(req.Duration + releaseTail)
	} else {
		logger.Debug("tone not played", "enabled", svc.Enabled())
	}
	if err := svc.Close(); err != nil {
		logger.Warn("failed to close audio output", "error", err)
	}
}
