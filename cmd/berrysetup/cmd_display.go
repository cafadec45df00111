package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/berrysetup/berrysetup/internal/domain-adapters/sysconfig"
	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// newDisplayCmd creates the `display` command.
// Usage: berrysetup display --overlay piscreen --rotation 90
func newDisplayCmd() *cobra.Command {
	var (
		overlay  string
		rotation int
		speedHz  int
		params   []string
		remove   bool
	)

	cmd := &cobra.Command{
		Use:   "display",
		Short: "Configure an SPI display overlay in the boot config",
		Long: `Writes a managed dtoverlay block into the Raspberry Pi boot config.
Re-running replaces the block; everything else in the file is left
alone. Takes effect on the next reboot.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			writer := sysconfig.NewDisplayWriter(a.cfg.BootConfigPath, a.log)
			if remove {
				if err := writer.Remove(); err != nil {
					return err
				}
				fmt.Println("Display configuration removed. Reboot to apply.")
				return nil
			}

			cfg := entities.DisplayConfig{
				Overlay:  overlay,
				Rotation: rotation,
				SpeedHz:  speedHz,
				Params:   map[string]string{},
			}
			for _, p := range params {
				key, value, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("invalid --param %q, expected key=value", p)
				}
				cfg.Params[key] = value
			}

			if err := writer.Apply(cfg); err != nil {
				return err
			}
			fmt.Printf("Display configuration written to %s. Reboot to apply.\n", a.cfg.BootConfigPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&overlay, "overlay", "", "Device tree overlay name (e.g. piscreen)")
	cmd.Flags().IntVar(&rotation, "rotation", 0, "Screen rotation in degrees (0, 90, 180, 270)")
	cmd.Flags().IntVar(&speedHz, "speed", 0, "SPI bus speed in Hz (0 uses the overlay default)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "Extra overlay parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the managed display block instead")

	return cmd
}
