package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	sim "github.com/paintshop-sim/paintshop-sim/sim"
)

var defaultsPreset string

// defaultsCmd prints a configuration as YAML, ready to be edited and passed
// back with --config.
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default shop configuration (or a preset) as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := sim.DefaultShopConfig()
		if defaultsPreset != "" {
			var err error
			cfg, err = loadPreset(defaultsFilePath, defaultsPreset, cfg)
			if err != nil {
				logrus.Fatalf("Loading preset failed: %v", err)
			}
		}
		if err := writeConfig(os.Stdout, cfg); err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
	},
}

// writeConfig marshals a ShopConfig to YAML.
func writeConfig(w io.Writer, cfg sim.ShopConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}

func init() {
	defaultsCmd.Flags().StringVar(&defaultsPreset, "preset", "", "Print this preset (baseline, rush-hour, understaffed, double-painting) instead of the built-in defaults")
	defaultsCmd.Flags().StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to the defaults file holding presets")
}
