package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	sim "github.com/paintshop-sim/paintshop-sim/sim"
)

// Environment variables that override file configuration.
const (
	EnvSeed           = "PAINTSHOP_SEED"
	EnvShiftDuration  = "PAINTSHOP_SHIFT_DURATION"
	EnvAlertThreshold = "PAINTSHOP_QUEUE_ALERT_THRESHOLD"
	EnvDrain          = "PAINTSHOP_DRAIN"
)

// DefaultsFile represents the full defaults.yaml structure.
// Presets are kept as raw nodes so each one overlays DefaultShopConfig
// under strict decoding.
type DefaultsFile struct {
	Version string               `yaml:"version"`
	Presets map[string]yaml.Node `yaml:"presets"`
}

// runOptions carries everything resolveShopConfig needs from the command line.
type runOptions struct {
	ConfigPath   string
	Preset       string
	DefaultsPath string
	EnvFile      string

	Seed      int64
	Shift     float64
	Threshold int
	Drain     bool

	// Changed reports whether a flag was set explicitly.
	Changed func(name string) bool
	// LookupEnv reads the process environment.
	LookupEnv func(key string) (string, bool)
}

// resolveShopConfig layers configuration sources in increasing precedence:
// defaults, preset, config file, environment, explicitly changed flags.
// The result is validated.
func resolveShopConfig(o runOptions) (sim.ShopConfig, error) {
	cfg := sim.DefaultShopConfig()
	var err error

	if o.Preset != "" {
		if cfg, err = loadPreset(o.DefaultsPath, o.Preset, cfg); err != nil {
			return cfg, err
		}
	}
	if o.ConfigPath != "" {
		if cfg, err = LoadShopConfig(o.ConfigPath, cfg); err != nil {
			return cfg, err
		}
	}

	lookup := o.LookupEnv
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	if o.EnvFile != "" {
		fileVars, err := godotenv.Read(o.EnvFile)
		if err != nil {
			return cfg, fmt.Errorf("reading env file %s: %w", o.EnvFile, err)
		}
		lookup = chainLookup(lookup, fileVars)
	}
	if err := applyEnvOverrides(&cfg, lookup); err != nil {
		return cfg, err
	}

	changed := o.Changed
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if changed("seed") {
		cfg.Seed = o.Seed
	}
	if changed("shift-duration") {
		cfg.ShiftDuration = o.Shift
	}
	if changed("alert-threshold") {
		cfg.QueueAlertThreshold = o.Threshold
	}
	if changed("drain") {
		cfg.Drain = o.Drain
	}

	return cfg, cfg.Validate()
}

// LoadShopConfig reads a YAML shop configuration from path on top of base.
// Keys absent from the file keep their base values; unknown keys are errors.
func LoadShopConfig(path string, base sim.ShopConfig) (sim.ShopConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := base
	if err := decodeStrict(data, &cfg); err != nil {
		return base, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// loadDefaultsFile parses defaults.yaml with strict field checking.
func loadDefaultsFile(path string) (*DefaultsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading defaults file %s: %w", path, err)
	}
	var df DefaultsFile
	if err := decodeStrict(data, &df); err != nil {
		return nil, fmt.Errorf("parsing defaults file %s: %w", path, err)
	}
	return &df, nil
}

// loadPreset overlays the named preset from the defaults file onto base.
func loadPreset(defaultsPath, name string, base sim.ShopConfig) (sim.ShopConfig, error) {
	df, err := loadDefaultsFile(defaultsPath)
	if err != nil {
		return base, err
	}
	node, ok := df.Presets[name]
	if !ok {
		return base, fmt.Errorf("unknown preset %q in %s (available: %v)", name, defaultsPath, presetNames(df))
	}
	// yaml.Node.Decode cannot reject unknown fields, so re-encode the
	// preset and run it through the strict decoder.
	raw, err := yaml.Marshal(&node)
	if err != nil {
		return base, fmt.Errorf("preset %q: %w", name, err)
	}
	cfg := base
	if err := decodeStrict(raw, &cfg); err != nil {
		return base, fmt.Errorf("preset %q: %w", name, err)
	}
	return cfg, nil
}

func presetNames(df *DefaultsFile) []string {
	names := make([]string, 0, len(df.Presets))
	for name := range df.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// applyEnvOverrides replaces fields whose PAINTSHOP_* variable is set.
func applyEnvOverrides(cfg *sim.ShopConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvSeed, v, err)
		}
		cfg.Seed = n
	}
	if v, ok := lookup(EnvShiftDuration); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvShiftDuration, v, err)
		}
		cfg.ShiftDuration = f
	}
	if v, ok := lookup(EnvAlertThreshold); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvAlertThreshold, v, err)
		}
		cfg.QueueAlertThreshold = n
	}
	if v, ok := lookup(EnvDrain); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvDrain, v, err)
		}
		cfg.Drain = b
	}
	return nil
}

// chainLookup consults primary first and falls back to vars, so variables
// already in the process environment win over the dotenv file.
func chainLookup(primary func(string) (string, bool), vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}
}

// decodeStrict decodes YAML into out, rejecting unknown fields.
// An empty document leaves out untouched.
func decodeStrict(data []byte, out any) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
