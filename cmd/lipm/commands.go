package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/san-kum/lipm/internal/analysis"
	"github.com/san-kum/lipm/internal/automation"
	"github.com/san-kum/lipm/internal/config"
	"github.com/san-kum/lipm/internal/control"
	"github.com/san-kum/lipm/internal/dynamo"
	"github.com/san-kum/lipm/internal/experiment"
	"github.com/san-kum/lipm/internal/export"
	"github.com/san-kum/lipm/internal/models"
	"github.com/san-kum/lipm/internal/optim"
	"github.com/san-kum/lipm/internal/sim"
	"github.com/san-kum/lipm/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	noPlot       bool
	showMetrics  bool
	compareDts   []float64
	compareTime  float64
	ensembleRuns int
	sweepPoints  int
	sweepRuns    int
	trials       int
	perturbation float64
	objective    string
	exportFormat string
	plotWidth    int
	plotHeight   int
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")).Bold(true)
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func runExperiment(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []experiment.Option{experiment.WithLogger(logger)}
	if resetFall {
		opts = append(opts, experiment.WithResetOnFall())
	}
	var reg *prometheus.Registry
	if showMetrics {
		reg = prometheus.NewRegistry()
		opts = append(opts, experiment.WithRegisterer(reg))
	}

	exp, err := experiment.New(cfg, opts...)
	if err != nil {
		return err
	}
	report, err := exp.Run(cmd.Context(), cfg.Steps)
	if err != nil {
		return err
	}

	printReport(cfg, report)

	if !noPlot && exp.Log.Len() > 1 {
		_, p, v, u := exp.Log.Arrays()
		for _, series := range []struct {
			name string
			data []float64
		}{{"position p [m]", p}, {"velocity v [m/s]", v}, {"foot placement u [m]", u}} {
			fmt.Println()
			fmt.Println(asciigraph.Plot(series.data, asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption(series.name)))
		}
	}

	if reg != nil {
		return printMetrics(reg)
	}
	return nil
}

func printReport(cfg *config.Config, r *experiment.Report) {
	row := func(label, value string) {
		fmt.Println(labelStyle.Render(label) + valueStyle.Render(value))
	}

	fmt.Println(titleStyle.Render("MISSION REPORT"))
	row("Run", r.RunID)
	row("Setup", fmt.Sprintf("%s dynamics, %s policy", cfg.DynamicsType, cfg.PolicyType))
	row("Steps", fmt.Sprintf("%d (%.2fs simulated, %v wall)", r.Steps, float64(r.Steps)*cfg.Dt, r.Elapsed))
	row("Pushes", strconv.Itoa(r.Pushes))
	if r.Falls == 0 {
		row("Falls", goodStyle.Render("0"))
	} else {
		row("Falls", badStyle.Render(strconv.Itoa(r.Falls)))
	}
	if r.Resets > 0 {
		row("Resets", strconv.Itoa(r.Resets))
	}
	row("Max |v|", fmt.Sprintf("%.4f m/s", r.MaxAbsV))
	row("Mean |u|", fmt.Sprintf("%.4f m", r.MeanEffort))
	row("Energy drift", fmt.Sprintf("%.3e", r.EnergyDrift))
	row("Final state", r.Final.String())
}

func printMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(titleStyle.Render("METRICS"))
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				fmt.Printf("%s %g\n", mf.GetName(), m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Printf("%s %g\n", mf.GetName(), m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Printf("%s_count %d\n%s_sum %g\n", mf.GetName(), h.GetSampleCount(), mf.GetName(), h.GetSampleSum())
			}
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	exp, err := experiment.New(cfg, experiment.WithLogger(logger), experiment.WithResetOnFall())
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(exp), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = p.Run()
	return err
}

func compareDynamics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	omega, err := dynamo.NaturalFrequency(cfg.G, cfg.H)
	if err != nil {
		return err
	}
	policy, err := control.NewCapturePoint(omega, cfg.UMin, cfg.UMax)
	if err != nil {
		return err
	}
	x0 := dynamo.State(cfg.InitialState())

	fmt.Printf("Euler vs exact, omega=%.4f, %.1fs from %s\n\n", omega, compareTime, x0)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "dt\tmax |dp|\tmax |dv|\trate euler\trate exact")

	for _, dt := range compareDts {
		euler, err := models.NewEuler(omega, dt)
		if err != nil {
			return err
		}
		exact, err := models.NewExact(omega, dt)
		if err != nil {
			return err
		}

		n := int(math.Round(compareTime / dt))
		dp, dv := analysis.MaxGap(analysis.Compare(euler, exact, policy, x0, dt, n))
		fmt.Fprintf(w, "%g\t%.3e\t%.3e\t%.4f\t%.4f\n", dt, dp, dv,
			analysis.DivergenceRate(euler, dynamo.State{}, dt, n, 1e-6),
			analysis.DivergenceRate(exact, dynamo.State{}, dt, n, 1e-6))
	}
	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(experiment.SeededBuilder(cfg, logger), ensembleRuns, cfg.Seed, cfg.H, cfg.LimitFactor)
	ens.ResetOnFall = resetFall
	outcomes, err := ens.Run(cmd.Context(), cfg.Steps)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "seed\tfalls\tpushes\tmax |v|\tfinal")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.4f\t%s\n", o.Seed, o.Falls, o.Pushes, o.MaxAbsV, o.Final)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nfall rate: %.1f%% of %d runs fell, %.2f falls per run\n",
		100*sim.FallRate(outcomes), len(outcomes), sim.MeanFalls(outcomes))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lo, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("max: %w", err)
	}

	results, err := automation.RunSweep(cmd.Context(), cfg, &automation.ParameterSweep{
		ParamName:    args[0],
		ParamMin:     lo,
		ParamMax:     hi,
		NumSteps:     sweepPoints,
		RunsPerValue: sweepRuns,
		Steps:        cfg.Steps,
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tfall rate\tmean falls\tmean pushes\tmax |v|\n", args[0])
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%.2f\t%.2f\t%.1f\t%.4f\n", r.ParamValue, r.FallRate, r.MeanFalls, r.MeanPushes, r.MaxAbsV)
	}
	return w.Flush()
}

// parseGridArg parses name=lo:hi:n.
func parseGridArg(arg string) (string, []float64, error) {
	name, bounds, ok := strings.Cut(arg, "=")
	parts := strings.Split(bounds, ":")
	if !ok || len(parts) != 3 {
		return "", nil, fmt.Errorf("grid %q must look like name=lo:hi:n", arg)
	}
	lo, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, err
	}
	hi, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, err
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", nil, err
	}
	return name, optim.Linspace(lo, hi, n), nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var score optim.Objective
	switch objective {
	case "falls":
		score = optim.Falls
	case "effort":
		score = optim.Effort
	default:
		return fmt.Errorf("unknown objective: %s", objective)
	}

	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		name, values, err := parseGridArg(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	best, value, err := gs.Search(cmd.Context(), func(params map[string]float64) (*experiment.Experiment, error) {
		c := cfg.Clone()
		for k, v := range params {
			if err := c.Set(k, v); err != nil {
				return nil, err
			}
		}
		return experiment.New(c, experiment.WithLogger(logger))
	}, cfg.Steps, score)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("BEST PARAMETERS"))
	for _, name := range names {
		fmt.Println(labelStyle.Render(name) + valueStyle.Render(fmt.Sprintf("%.4g", best[name])))
	}
	fmt.Println(labelStyle.Render(objective) + valueStyle.Render(fmt.Sprintf("%.4f", value)))
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	reports, err := automation.RunScenario(cmd.Context(), cfg, sc, logger)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(strings.ToUpper(sc.Name)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "step\tname\tsteps\tfalls\tpushes\tmean |u|")
	for i, r := range reports {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.4f\n", i+1, sc.Steps[i].Name, r.Steps, r.Falls, r.Pushes, r.MeanEffort)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), cfg, &automation.MonteCarloConfig{
		Perturbation: perturbation,
		NumTrials:    trials,
		Steps:        cfg.Steps,
		Seed:         cfg.Seed,
	}, logger)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("%d trials: %s stable, %s fell\n", len(results),
		goodStyle.Render(strconv.Itoa(stable)), badStyle.Render(strconv.Itoa(unstable)))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\tdynamics\tpolicy\tdt\tpush_prob\tsteps")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\t%d\n", name, p.DynamicsType, p.PolicyType, p.Dt, p.PushProb, p.Steps)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

// runLogged runs the configured experiment and returns it for its logs.
func runLogged(cmd *cobra.Command) (*config.Config, *experiment.Experiment, *experiment.Report, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	exp, err := experiment.New(cfg, experiment.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}
	report, err := exp.Run(cmd.Context(), cfg.Steps)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, exp, report, nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	cfg, exp, report, err := runLogged(cmd)
	if err != nil {
		return err
	}
	t, p, v, u := exp.Log.Arrays()
	history := export.History{T: t, P: p, V: v, U: u}

	switch exportFormat {
	case "csv":
		return export.WriteCSV(os.Stdout, history)
	case "json":
		return export.WriteJSON(os.Stdout, export.Run{
			RunID:    report.RunID,
			Dynamics: cfg.DynamicsType,
			Policy:   cfg.PolicyType,
			Dt:       cfg.Dt,
			Seed:     cfg.Seed,
			Steps:    report.Steps,
			Metrics: map[string]float64{
				"falls":           float64(report.Falls),
				"pushes":          float64(report.Pushes),
				"max_abs_v":       report.MaxAbsV,
				exp.Effort.Name(): exp.Effort.Value(),
				exp.Energy.Name(): exp.Energy.Value(),
			},
			History: history,
		})
	case "svg":
		return export.WritePhaseSVG(os.Stdout, analysis.FromSeries(p, v), 600, 400, "#00ff88")
	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}
}

func phasePlot(cmd *cobra.Command, args []string) error {
	cfg, exp, _, err := runLogged(cmd)
	if err != nil {
		return err
	}
	_, p, v, _ := exp.Log.Arrays()
	portrait := analysis.FromSeries(p, v)

	fmt.Println(titleStyle.Render("PHASE PORTRAIT") + "  p across, v up, o = start")
	fmt.Print(analysis.PhasePortraitToASCII(portrait, plotWidth, plotHeight))
	fmt.Printf("velocity reversals: %d\n", len(analysis.VelocityReversals(portrait)))
	if f := analysis.DominantFrequency(p, cfg.Dt); f > 0 {
		fmt.Printf("dominant sway frequency: %.3f Hz\n", f)
	}
	return nil
}
