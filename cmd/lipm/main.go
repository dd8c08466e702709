package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/san-kum/lipm/internal/config"
	"github.com/san-kum/lipm/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	preset     string
	overrides  []string
	seed       int64
	steps      int
	logLevel   string
	logFormat  string
	resetFall  bool

	logger *zap.Logger
)

// main registers the lipm commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lipm",
		Short:         "linear inverted pendulum balance simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(config.LogConfig{Level: logLevel, Format: logFormat})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "demo", "start from a preset configuration (empty for defaults)")
	pf.StringArrayVar(&overrides, "set", nil, "override a config option, e.g. --set push_prob=0.2")
	pf.Int64Var(&seed, "seed", config.DefaultSeed, "push generator seed")
	pf.IntVar(&steps, "steps", 0, "number of steps (0 uses the config)")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one experiment and print the mission report",
		RunE:  runExperiment,
	}
	runCmd.Flags().BoolVar(&resetFall, "reset-on-fall", false, "restart at the origin after each fall")
	runCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the p/v/u plots")
	runCmd.Flags().BoolVar(&showMetrics, "metrics", false, "print collected prometheus metrics")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare Euler and exact dynamics across step sizes",
		RunE:  compareDynamics,
	}
	compareCmd.Flags().Float64SliceVar(&compareDts, "dts", []float64{0.001, 0.005, 0.01, 0.02, 0.05}, "step sizes to compare")
	compareCmd.Flags().Float64Var(&compareTime, "time", 2.0, "simulated seconds per comparison")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run seeded experiments concurrently and report fall statistics",
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&ensembleRuns, "runs", 32, "number of seeded runs")
	ensembleCmd.Flags().BoolVar(&resetFall, "reset-on-fall", false, "restart each member after a fall")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param] [min] [max]",
		Short: "sweep one config option and measure falls",
		Args:  cobra.ExactArgs(3),
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 11, "number of values")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 8, "seeded runs per value")

	tuneCmd := &cobra.Command{
		Use:   "tune [param=lo:hi:n]...",
		Short: "grid search config options for the fewest falls",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&objective, "objective", "falls", "objective (falls, effort)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of experiments",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run from randomly perturbed initial states",
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturbation", 0.1, "largest initial state offset")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		RunE:  printConfig,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "run and write the logged history to stdout",
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format (csv, json, svg)")

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "plot the (p, v) phase portrait of a run",
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&plotWidth, "width", 60, "plot width")
	phaseCmd.Flags().IntVar(&plotHeight, "height", 20, "plot height")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, ensembleCmd, sweepCmd, tuneCmd,
		scenarioCmd, monteCarloCmd, presetsCmd, configCmd, exportCmd, phaseCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig resolves the configuration. A config file replaces the defaults
// or preset; --set overrides and explicit --seed and --steps apply on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("override %q must look like key=value", kv)
		}
		if err := cfg.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
