package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/experiment"
	"github.com/san-kum/rigidsim/internal/optim"
	"github.com/san-kum/rigidsim/internal/rigidbody"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/vecmath"
	"github.com/san-kum/rigidsim/internal/viz"
)

var (
	dataDir  string
	verbose  bool
	dt       float64
	duration float64
	seed     int64
	workers  int
	jitter   float64
	runs     int
	// Config file
	configFile string
	// Plot options
	column string
	// Frame rate for live view
	frameRate int
	// Save the final state of a run as a scenario
	saveFinal string
	// Sweep options
	sweepParams   []string
	sweepMetric   string
	sweepParallel int

	logger = zap.NewNop()
)

// main registers the rigidsim commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "rigidsim",
		Short:         "rigid body kinematics lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigidsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().StringVar(&saveFinal, "save-final", "", "write the final state as a scenario yaml")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [preset]",
		Short: "run perturbed copies of a scenario in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of runs")
	ensembleCmd.Flags().Float64Var(&jitter, "jitter", 0.1, "velocity perturbation")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "grid search scenario parameters for the lowest metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "parameter grid, e.g. dt=0.1,0.05,0.01 (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_drift", "metric to minimise")
	sweepCmd.Flags().IntVar(&sweepParallel, "parallel", runtime.NumCPU(), "grid points run at once")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded column",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "column to plot, e.g. ball.py (default: every position of the first body)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tDT\tDURATION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.4fs\t%.2fs\n", name, len(p.Bodies), p.Dt, p.Duration)
			}
			return w.Flush()
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the integrator",
		RunE:  bench,
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, sweepCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd, benchCmd)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().IntVar(&workers, "workers", config.DefaultWorkers, "goroutines stepping bodies")
}

// loadScenario resolves the scenario from a preset or a config file, then
// applies any flags the user set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case len(args) == 1:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}
	if f := cmd.Flags().Lookup("jitter"); f != nil && (f.Changed || cfg.Jitter == 0) {
		cfg.Jitter = jitter
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger.Debug("scenario resolved", zap.String("name", cfg.Name), zap.String("config", configFile))
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation...\n", cfg.Name)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(exp.Metadata(), result)
	if err != nil {
		return err
	}
	logger.Info("run stored", zap.String("id", runID), zap.String("dir", dataDir))

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Println("\nfinal state:")
	final := result.Final()
	names := exp.World().Names
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPOS\tVEL\tORI\tTOR")
	for i, b := range final.Bodies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", names[i], fmtVec(b.Pos), fmtVec(b.Vel), fmtAtt(b.Ori), fmtAtt(b.Tor))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if saveFinal != "" {
		out := *cfg
		out.Name = cfg.Name + "_final"
		out.Bodies = make([]config.BodyConfig, len(final.Bodies))
		for i, b := range final.Bodies {
			out.Bodies[i] = config.FromBody(names[i], b)
		}
		if err := config.Save(saveFinal, &out); err != nil {
			return err
		}
		fmt.Printf("\nfinal state written to %s\n", saveFinal)
	}

	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	results, err := exp.RunEnsemble(ctx, runs)
	if err != nil {
		return err
	}
	fmt.Printf("%d runs of %s in %v\n\n", len(results), cfg.Name, time.Since(start))

	names := exp.World().Names
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tBODY\tFINAL POS\tFINAL VEL")
	for i, r := range results {
		for j, b := range r.Final().Bodies {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, names[j], fmtVec(b.Pos), fmtVec(b.Vel))
		}
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, logger)
	if err != nil {
		return err
	}

	m := viz.NewModel(exp.Simulator(), exp.World(), cfg.Dt, cfg.Workers, frameRate, cfg.Name)
	return viz.Run(m)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	params := make([]optim.Param, 0, len(sweepParams))
	for _, s := range sweepParams {
		p, err := optim.ParseParam(s)
		if err != nil {
			return err
		}
		params = append(params, p)
	}

	base, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	build := func(p map[string]float64) (*experiment.Experiment, error) {
		cfg, err := optim.Apply(base, p)
		if err != nil {
			return nil, err
		}
		return experiment.New(cfg, logger)
	}

	search := optim.NewGridSearch(params, sweepParallel)
	start := time.Now()
	best, points, err := search.Search(ctx, build, sweepMetric)
	if err != nil && len(points) == 0 {
		return err
	}
	fmt.Printf("%d points of %s in %v\n\n", len(points), base.Name, time.Since(start))

	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, pt := range points {
		for _, n := range names {
			fmt.Fprintf(w, "%g\t", pt.Params[n])
		}
		if pt.Err != nil {
			fmt.Fprintf(w, "error: %v\n", pt.Err)
			continue
		}
		fmt.Fprintf(w, "%.6g\n", pt.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(best.Params))
	for k := range best.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Print("\nbest:")
	for _, k := range keys {
		fmt.Printf(" %s=%g", k, best.Params[k])
	}
	fmt.Printf(" %s=%.6g\n", sweepMetric, best.Value)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	metas, err := st.List()
	if err != nil {
		return err
	}

	if len(metas) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tBODIES\tSTEPS")

	for _, run := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Bodies),
			run.StepsTaken,
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
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(states))

	cols := []string{column}
	if column == "" && len(meta.Bodies) > 0 {
		b := meta.Bodies[0]
		cols = []string{b + ".px", b + ".py", b + ".pz"}
	}

	for _, name := range cols {
		idx := storage.Column(header, name)
		if idx < 0 {
			return fmt.Errorf("unknown column: %s", name)
		}

		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][idx]
		}

		graph, err := viz.Plot(data, name, 80, 10)
		if err != nil {
			return err
		}
		fmt.Println(graph)
		fmt.Println()
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

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, frames)
}

func bench(cmd *cobra.Command, args []string) error {
	counts := []int{1, 100, 10000}
	steps := 1000

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSTEPS\tTIME\tBODY-STEPS/SEC")

	for _, n := range counts {
		bodies := make([]rigidbody.Body[float64], n)
		for i := range bodies {
			bodies[i] = rigidbody.Body[float64]{
				Vel: vecmath.Vec3(1.0, 0.0, 0.0),
				Acc: vecmath.Vec3(0.0, -9.81, 0.0),
				Ori: rigidbody.Attitude[float64]{Axis: vecmath.Vec3(0.0, 0.0, 1.0)},
				Tor: rigidbody.Attitude[float64]{Angle: 1, Axis: vecmath.Vec3(0.0, 1.0, 0.0)},
				Wre: rigidbody.Attitude[float64]{Angle: 0.1, Axis: vecmath.Vec3(1.0, 0.0, 0.0)},
			}
		}

		start := time.Now()
		for s := 0; s < steps; s++ {
			for i := range bodies {
				bodies[i].Update(0.001)
			}
		}
		elapsed := time.Since(start)

		rate := float64(n*steps) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, steps, elapsed, rate)
	}

	return w.Flush()
}

func fmtVec(v vecmath.Vector3[float64]) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v[0], v[1], v[2])
}

func fmtAtt(a rigidbody.Attitude[float64]) string {
	return fmt.Sprintf("%.4f@%s", a.Angle, fmtVec(a.Axis))
}
