package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cranesim/internal/analysis"
	"github.com/san-kum/cranesim/internal/config"
	"github.com/san-kum/cranesim/internal/control"
	"github.com/san-kum/cranesim/internal/crane"
	"github.com/san-kum/cranesim/internal/metrics"
	"github.com/san-kum/cranesim/internal/sim"
	"github.com/san-kum/cranesim/internal/storage"
	"github.com/san-kum/cranesim/internal/viz"
)

var (
	dataDir  string
	dt       float64
	duration float64
	// open-loop force profile
	frail float64
	fcart float64
	fwind float64
	// controller selection and gains
	controller string
	kp         float64
	ki         float64
	kd         float64
	railTarget float64
	cartTarget float64
	lineTarget float64
	forceMax   float64
	// config sources
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cranesim",
		Short: "3-axis overhead crane simulation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cranesim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [variant]",
		Short: "run a simulation",
		Long:  "run a simulation with one of the dynamics variants: linear, constline, complete, original",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [variant]",
		Short: "interactive live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultFixedStep, "fixed timestep")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the swing",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "run all dynamics variants under one force profile",
		RunE:  compareVariants,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultFixedStep, "fixed timestep")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	compareCmd.Flags().Float64Var(&frail, "frail", 30.0, "rail force (N)")
	compareCmd.Flags().Float64Var(&fcart, "fcart", 25.0, "cart force (N)")
	compareCmd.Flags().Float64Var(&fwind, "fwind", 0.0, "winch force (N)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, compareCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultFixedStep, "fixed timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&frail, "frail", 0.0, "rail force (N)")
	cmd.Flags().Float64Var(&fcart, "fcart", 0.0, "cart force (N)")
	cmd.Flags().Float64Var(&fwind, "fwind", 0.0, "winch force (N)")
	cmd.Flags().StringVar(&controller, "controller", "manual", "controller (none, manual, pid)")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	cmd.Flags().Float64Var(&railTarget, "rail-target", 0.0, "pid rail target (m)")
	cmd.Flags().Float64Var(&cartTarget, "cart-target", 0.0, "pid cart target (m)")
	cmd.Flags().Float64Var(&lineTarget, "line-target", crane.DefaultLineLength, "pid line target (m)")
	cmd.Flags().Float64Var(&forceMax, "force-max", config.DefaultForceMax, "pid force limit (N)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig merges preset, config file, and CLI flags. Flags win over the
// config file, the config file wins over the preset.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		copied := *p
		cfg = &copied
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.FixedStep = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("controller") {
		cfg.Controller = controller
	}
	if cmd.Flags().Changed("frail") {
		cfg.Forces.Rail = frail
	}
	if cmd.Flags().Changed("fcart") {
		cfg.Forces.Cart = fcart
	}
	if cmd.Flags().Changed("fwind") {
		cfg.Forces.Wind = fwind
	}
	if cmd.Flags().Changed("kp") {
		cfg.ControllerParams.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.ControllerParams.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.ControllerParams.Kd = kd
	}
	if cmd.Flags().Changed("rail-target") {
		cfg.ControllerParams.RailTarget = railTarget
	}
	if cmd.Flags().Changed("cart-target") {
		cfg.ControllerParams.CartTarget = cartTarget
	}
	if cmd.Flags().Changed("line-target") {
		cfg.ControllerParams.LineTarget = lineTarget
	}
	if cmd.Flags().Changed("force-max") {
		cfg.ControllerParams.ForceMax = forceMax
	}

	if len(args) > 0 {
		cfg.Model = args[0]
	}

	return cfg, nil
}

func buildSource(cfg *config.Config) (sim.ForceSource, error) {
	switch cfg.Controller {
	case "", "none":
		return control.NewNone(), nil
	case "manual":
		return control.NewManual(cfg.ForceProfile()), nil
	case "pid":
		p := cfg.ControllerParams
		gains := control.Gains{Kp: p.Kp, Ki: p.Ki, Kd: p.Kd}
		fmax := p.ForceMax
		if fmax <= 0 {
			fmax = config.DefaultForceMax
		}
		return control.NewPID(gains, p.RailTarget, p.CartTarget, p.LineTarget, fmax), nil
	default:
		return nil, fmt.Errorf("unknown controller: %s", cfg.Controller)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	model, err := cfg.BuildModel()
	if err != nil {
		return err
	}

	source, err := buildSource(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(model, source)
	runner.AddMetric(metrics.NewSway())
	runner.AddMetric(metrics.NewControlEffort())
	runner.AddMetric(metrics.NewLimitDwell(model))
	runner.AddMetric(metrics.NewSwingEnergy(model))

	fmt.Printf("running %s variant...\n", model.Type)
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{
		FixedStep: cfg.FixedStep,
		Duration:  cfg.Duration,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(model.Type.String(), cfg.FixedStep, cfg.Duration, cfg.Controller, result)
	if err != nil {
		return err
	}

	final := result.States[len(result.States)-1]

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("final: rail=%.4f cart=%.4f line=%.4f\n",
		final.RailOffset, final.CartOffset, final.LiftLine)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	model, err := cfg.BuildModel()
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(model, cfg.FixedStep))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tDURATION\tDT\tCTRL\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Controller,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	header, states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("variant: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	// skip the applied-force columns, plot state only
	numVars := len(header) - 1
	if numVars > 8 {
		numVars = 8
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(header[varIdx+1]+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 || len(states[0]) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("variant: %s\n\n", meta.Model)

	// swing angles are the first two columns
	alfa := make([]float64, len(states))
	for i := range states {
		alfa[i] = states[i][0]
	}

	ps := analysis.PowerSpectrum(alfa)
	if len(ps) < 2 {
		return fmt.Errorf("run too short for analysis")
	}

	plotData := ps[:len(ps)/4]
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("swing power spectrum (alfa)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(alfa, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	header, states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := storage.RowsToResult(states, times, meta.Metrics)
	return storage.ExportJSONStdout(meta.Model, meta.Controller, meta.Dt, meta.Duration, result)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVARIANT\tCTRL\tDURATION\tFORCES (N)")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%.0f/%.0f/%.0f\n",
			name, p.Model, p.Controller, p.Duration,
			p.Forces.Rail, p.Forces.Cart, p.Forces.Wind)
	}

	return w.Flush()
}

func compareVariants(cmd *cobra.Command, args []string) error {
	fmt.Printf("comparing variants (dt=%.4f, duration=%.1fs, F=%.0f/%.0f/%.0f N)\n\n",
		dt, duration, frail, fcart, fwind)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tRAIL\tCART\tLINE\tSWAY_PEAK\tSTEPS\tTIME_MS")

	for _, vt := range crane.ModelTypes {
		cfg := config.Default()
		cfg.Model = vt.String()
		cfg.FixedStep = dt
		cfg.Duration = duration
		cfg.Forces = config.ForcesConfig{Rail: frail, Cart: fcart, Wind: fwind}

		model, err := cfg.BuildModel()
		if err != nil {
			return err
		}

		runner := sim.New(model, control.NewManual(cfg.ForceProfile()))
		sway := metrics.NewSway()
		runner.AddMetric(sway)

		start := time.Now()
		result, err := runner.Run(context.Background(), sim.Config{
			FixedStep: cfg.FixedStep,
			Duration:  cfg.Duration,
		})
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", vt, err)
			continue
		}

		final := result.States[len(result.States)-1]
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%d\t%.2f\n",
			vt, final.RailOffset, final.CartOffset, final.LiftLine,
			sway.Value(), result.StepsTaken,
			float64(elapsed.Microseconds())/1000)
	}

	return w.Flush()
}
