package cmd

import (
	"os"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/paintshop-sim/paintshop-sim/sim"
	"github.com/paintshop-sim/paintshop-sim/sim/report"
	"github.com/paintshop-sim/paintshop-sim/sim/trace"
)

var (
	// CLI flags for the shop configuration
	configPath       string  // YAML file with a ShopConfig
	presetName       string  // Named preset from defaults.yaml
	defaultsFilePath string  // Path to defaults.yaml
	seed             int64   // Master seed for arrivals and service samplers
	shiftDuration    float64 // Minutes during which cars arrive
	alertThreshold   int     // Queue depth above which an alert fires
	drain            bool    // Keep running after the shift until every car exits
	envFile          string  // dotenv file with PAINTSHOP_* overrides

	// CLI flags for output
	logLevel        string // Log verbosity level
	logFile         string // Log destination (stderr when empty)
	traceLevel      string // Trace verbosity: none, events
	metricsTextfile string // Prometheus textfile destination
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "paintshop-sim",
	Short: "Discrete-event simulator for a three-stage vehicle paint shop",
}

// runCmd executes one shift using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one shift of the paint shop",
	Run: func(cmd *cobra.Command, args []string) {
		runID := xid.New().String()
		closer, err := setupLogging(logLevel, logFile, runID)
		if err != nil {
			logrus.Fatalf("Logging setup failed: %v", err)
		}
		defer closer.Close()

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level %q (want none or events)", traceLevel)
		}

		cfg, err := resolveShopConfig(runOptions{
			ConfigPath:   configPath,
			Preset:       presetName,
			DefaultsPath: defaultsFilePath,
			EnvFile:      envFile,
			Seed:         seed,
			Shift:        shiftDuration,
			Threshold:    alertThreshold,
			Drain:        drain,
			Changed:      cmd.Flags().Changed,
			LookupEnv:    os.LookupEnv,
		})
		if err != nil {
			logrus.Fatalf("Configuration rejected: %v", err)
		}

		logrus.Infof("Starting shift: duration=%.2f min, interarrival=[%.2f, %.2f], threshold=%d, seed=%d, drain=%v",
			cfg.ShiftDuration, cfg.Interarrival.Low, cfg.Interarrival.High, cfg.QueueAlertThreshold, cfg.Seed, cfg.Drain)

		traceSink := sim.NewTraceSink(trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		shop, err := sim.NewPaintShop(cfg, sim.MultiSink{sim.NewLogrusSink(nil), traceSink})
		if err != nil {
			logrus.Fatalf("Configuration rejected: %v", err)
		}

		startTime := time.Now()
		m := shop.Run()
		logrus.Infof("Shift simulated in %v", time.Since(startTime))

		r := report.Build(m, cfg)
		r.RunID = runID
		r.Print(os.Stdout)

		if traceSink.Trace.Config.Enabled() {
			printTraceSummary(os.Stdout, trace.Summarize(traceSink.Trace))
		}

		if metricsTextfile != "" {
			if err := report.WriteTextfile(metricsTextfile, r); err != nil {
				logrus.Fatalf("Writing metrics textfile %s: %v", metricsTextfile, err)
			}
			logrus.Infof("Metrics written to %s", metricsTextfile)
		}

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultShopConfig()

	// Shop configuration
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML file with a shop configuration (overrides preset values)")
	runCmd.Flags().StringVar(&presetName, "preset", "", "Named preset from the defaults file (baseline, rush-hour, understaffed, double-painting)")
	runCmd.Flags().StringVar(&defaultsFilePath, "defaults-filepath", "defaults.yaml", "Path to the defaults file holding presets")
	runCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file with PAINTSHOP_* overrides")
	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for arrival and service sampling")
	runCmd.Flags().Float64Var(&shiftDuration, "shift-duration", defaults.ShiftDuration, "Shift length in minutes; arrivals stop at this time")
	runCmd.Flags().IntVar(&alertThreshold, "alert-threshold", defaults.QueueAlertThreshold, "Raise an alert when a station queue exceeds this many cars")
	runCmd.Flags().BoolVar(&drain, "drain", defaults.Drain, "Keep simulating after the shift until every car has exited")

	// Output
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file instead of stderr")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Trace verbosity (none, events); events prints a trace summary")
	runCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "", "Write end-of-run metrics in Prometheus text format to this file")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
}
