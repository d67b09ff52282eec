package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/algo"
	"github.com/san-kum/sortviz/internal/analysis"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/dataset"
	"github.com/san-kum/sortviz/internal/experiment"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/gui"
	"github.com/san-kum/sortviz/internal/optim"
	"github.com/san-kum/sortviz/internal/palette"
	"github.com/san-kum/sortviz/internal/step"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	size      int
	dataType  string
	seed      int64
	pivot     string
	cutoff    int
	scheme    string
	speed     float64
	sound     bool
	sizesFlag []int
	trials    int
	metric    string
	cutoffs   []int
	pivots    []string
	svgWidth  int
	svgHeight int
	workers   int
	// Config file
	configFile string
	// Preset name
	preset string
)

// main is the entry point for the sortviz CLI; it registers commands and
// flags, and launches the interactive GUI when no subcommand is provided.
func main() {
	rootCmd := &cobra.Command{
		Use:   "sortviz",
		Short: "sorting algorithm visualization lab",
		Run: func(cmd *cobra.Command, args []string) {
			// Default to interactive GUI mode when no command given
			gui.RunInteractive(config.DefaultConfig())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sortviz", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [algorithm]",
		Short: "execute a sort headless and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSort,
	}
	addRunFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [algorithm]",
		Short: "animated sort in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().StringVar(&scheme, "scheme", "rainbow", "color scheme")
	liveCmd.Flags().Float64Var(&speed, "speed", 1.0, "animation speed multiplier")

	guiCmd := &cobra.Command{
		Use:   "gui [algorithm]",
		Short: "animated sort in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addRunFlags(guiCmd)
	guiCmd.Flags().StringVar(&scheme, "scheme", "rainbow", "color scheme")
	guiCmd.Flags().Float64Var(&speed, "speed", 1.0, "animation speed multiplier")
	guiCmd.Flags().BoolVar(&sound, "sound", false, "sonify steps")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	infoCmd := &cobra.Command{
		Use:   "info [algorithm]",
		Short: "show algorithm properties",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showInfo,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's cost curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run steps to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the run's final array to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 320, "image height")
	exportSVGCmd.Flags().StringVar(&scheme, "scheme", "rainbow", "color scheme")

	benchCmd := &cobra.Command{
		Use:   "bench [algorithm]",
		Short: "measure cost growth over input sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchAlgorithm,
	}
	benchCmd.Flags().IntSliceVar(&sizesFlag, "sizes", []int{16, 32, 64, 128, 256, 512}, "input sizes")
	benchCmd.Flags().StringVar(&dataType, "data-type", "random", "dataset generator")
	benchCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	benchCmd.Flags().IntVar(&trials, "trials", 3, "trials per size")
	benchCmd.Flags().StringVar(&metric, "metric", "comparisons", "cost metric (comparisons|swaps|accesses)")

	compareCmd := &cobra.Command{
		Use:   "compare [algorithm1] [algorithm2] ...",
		Short: "compare algorithms on the same workload",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareAlgorithms,
	}
	compareCmd.Flags().IntSliceVar(&sizesFlag, "sizes", []int{32, 64, 128, 256}, "input sizes")
	compareCmd.Flags().StringVar(&dataType, "data-type", "random", "dataset generator")
	compareCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	compareCmd.Flags().IntVar(&trials, "trials", 3, "trials per size")
	compareCmd.Flags().StringVar(&metric, "metric", "comparisons", "cost metric (comparisons|swaps|accesses)")

	tuneCmd := &cobra.Command{
		Use:   "tune [algorithm]",
		Short: "grid-search tuning parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  tuneAlgorithm,
	}
	tuneCmd.Flags().IntVar(&size, "size", 256, "input size")
	tuneCmd.Flags().StringVar(&dataType, "data-type", "random", "dataset generator")
	tuneCmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	tuneCmd.Flags().IntVar(&trials, "trials", 3, "trials per grid point")
	tuneCmd.Flags().IntSliceVar(&cutoffs, "cutoffs", []int{4, 8, 12, 16, 24, 32}, "insertion cutoffs to try")
	tuneCmd.Flags().StringSliceVar(&pivots, "pivots", []string{"first", "last", "random", "median3"}, "pivot policies to try")
	tuneCmd.Flags().StringVar(&metric, "metric", "comparisons", "cost metric (comparisons|accesses)")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scenario file and print a summary CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 = all cores)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, listCmd, infoCmd, plotCmd,
		exportJSONCmd, exportCSVCmd, exportSVGCmd, benchCmd, compareCmd,
		tuneCmd, batchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&size, "size", 64, "input size")
	cmd.Flags().StringVar(&dataType, "data-type", "random", "dataset generator")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano()%100000, "random seed")
	cmd.Flags().StringVar(&pivot, "pivot", "median3", "quicksort pivot policy")
	cmd.Flags().IntVar(&cutoff, "cutoff", 12, "insertion sort cutoff")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// loadConfig assembles the effective configuration: defaults, then
// preset, then config file, then any flag the user actually set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("size") {
		cfg.DataSize = size
	}
	if cmd.Flags().Changed("data-type") {
		cfg.DataType = dataType
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("pivot") {
		cfg.Tuning.PivotPolicy = pivot
	}
	if cmd.Flags().Changed("cutoff") {
		cfg.Tuning.InsertionCutoff = cutoff
	}
	if cmd.Flags().Changed("scheme") {
		cfg.ColorScheme = scheme
	}
	if cmd.Flags().Changed("speed") {
		cfg.AnimationSpeed = speed
	}
	if cmd.Flags().Changed("sound") {
		cfg.Sound = sound
	}

	return cfg, cfg.Validate()
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Algorithm = args[0]

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := algo.NewRegistry()
	sorter, err := registry.Get(cfg.Algorithm)
	if err != nil {
		return err
	}

	input, err := dataset.Generate(dataset.Kind(cfg.DataType), cfg.DataSize, cfg.Seed)
	if err != nil {
		return err
	}

	fmt.Printf("running %s on %s[%d]...\n", cfg.Algorithm, cfg.DataType, cfg.DataSize)
	eng := algo.New(sorter)
	derived := []algo.Metric{algo.NewDisorder(), algo.NewRunCount(), algo.NewSwapDistance()}
	for _, d := range derived {
		eng.AddObserver(algo.MetricObserver(d))
	}
	start := time.Now()
	if _, err := eng.Execute(context.Background(), input, cfg.EngineOptions()); err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(export.NewRun(eng, cfg.DataType, cfg.Seed), eng.History())
	if err != nil {
		return err
	}

	m := eng.Metrics()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", eng.History().Len())
	fmt.Println("\nmetrics:")
	fmt.Printf("  comparisons: %d\n", m.Comparisons)
	fmt.Printf("  swaps:       %d\n", m.Swaps)
	fmt.Printf("  reads:       %d\n", m.Reads)
	fmt.Printf("  writes:      %d\n", m.Writes)
	for _, d := range derived {
		fmt.Printf("  %-12s %.2f\n", d.Name()+":", d.Value())
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	return tui.RunInteractive(cfg)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Algorithm = args[0]
		if err := cfg.Validate(); err != nil {
			return err
		}
		gui.Run(cfg, cfg.Algorithm)
		return nil
	}
	gui.RunInteractive(cfg)
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
	fmt.Fprintln(w, "ALGORITHM\tTIME\tDATA\tSIZE\tSTEPS\tCOMPARISONS\tSWAPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.Algorithm,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.DataType,
			run.DataSize,
			run.Steps,
			run.Metrics.Comparisons,
			run.Metrics.Swaps,
		)
	}

	return w.Flush()
}

func showInfo(cmd *cobra.Command, args []string) error {
	registry := algo.NewRegistry()

	names := registry.List()
	if len(args) > 0 {
		names = args[:1]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tSTABLE\tIN-PLACE\tBEST\tAVERAGE\tWORST\tSPACE")

	for _, name := range names {
		sorter, err := registry.Get(name)
		if err != nil {
			return err
		}
		info := sorter.Info()
		fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%s\t%s\t%s\t%s\n",
			info.Name, info.Category, info.Stable, info.InPlace,
			info.Complexity.Time.Best, info.Complexity.Time.Average,
			info.Complexity.Time.Worst, info.Complexity.Space.Average,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	run, err := st.Load(runID)
	if err != nil {
		return err
	}
	h, err := st.LoadHistory(runID)
	if err != nil {
		return err
	}
	if h.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("algorithm: %s on %s[%d]\n\n", run.Algorithm, run.DataType, run.DataSize)

	// Cumulative comparisons over the step stream.
	cmps := make([]float64, h.Len())
	total := 0.0
	for i := 0; i < h.Len(); i++ {
		s := h.Step(i)
		if s.Kind == step.KindCompare {
			total++
		}
		cmps[i] = total
	}
	fmt.Println(asciigraph.Plot(cmps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("cumulative comparisons"),
	))
	fmt.Println()

	fmt.Println(asciigraph.Plot(run.Final,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("final array"),
	))

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, *run)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	h, err := st.LoadHistory(args[0])
	if err != nil {
		return err
	}
	return export.WriteStepsCSV(os.Stdout, h)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Print(export.BarsToSVG(run.Final, palette.Scheme(scheme), svgWidth, svgHeight))
	return nil
}

func benchAlgorithm(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry := algo.NewRegistry()
	if _, err := registry.Get(name); err != nil {
		return err
	}

	sel, err := metricSelector()
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s on %s data\n\n", name, dataType)

	samples, err := analysis.Measure(context.Background(),
		func() algo.Sorter { s, _ := registry.Get(name); return s },
		dataset.Kind(dataType), sizesFlag, seed, trials)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tCOMPARISONS\tSWAPS\tREADS\tWRITES\tTIME")
	for _, s := range samples {
		fmt.Fprintf(w, "%d\t%.0f\t%.0f\t%.0f\t%.0f\t%v\n",
			s.N, s.Comparisons, s.Swaps, s.Reads, s.Writes, s.Elapsed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if fit, ok := analysis.BestFit(samples, sel); ok {
		fmt.Printf("\nbest fit: %s (scale %.3f, residual %.4f)\n", fit.Model, fit.Scale, fit.Residual)
	}

	return nil
}

func compareAlgorithms(cmd *cobra.Command, args []string) error {
	registry := algo.NewRegistry()

	sel, err := metricSelector()
	if err != nil {
		return err
	}

	fmt.Printf("comparing on %s data (sizes %v, %d trials)\n\n", dataType, sizesFlag, trials)

	results, err := analysis.CompareAlgorithms(context.Background(), registry, args,
		dataset.Kind(dataType), sizesFlag, seed, trials)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s  %-14s  %-12s  %-12s\n", "algorithm", "growth", "total_"+metric, "residual")
	fmt.Println(strings.Repeat("-", 56))
	for _, r := range results {
		fmt.Printf("%-12s  %-14s  %12.0f  %12.4f\n",
			r.Algorithm, r.Best.Model, analysis.TotalCost(r.Samples, sel), r.Best.Residual)
	}

	return nil
}

func tuneAlgorithm(cmd *cobra.Command, args []string) error {
	registry := algo.NewRegistry()

	cost := optim.CostComparisons
	if metric == "accesses" {
		cost = optim.CostAccesses
	}

	policies := make([]algo.PivotPolicy, len(pivots))
	for i, p := range pivots {
		policies[i] = algo.PivotPolicy(p)
	}

	g := &optim.GridSearch{
		Algorithm: args[0],
		DataType:  dataset.Kind(dataType),
		DataSize:  size,
		Seed:      seed,
		Trials:    trials,
		Cutoffs:   cutoffs,
		Pivots:    policies,
	}

	fmt.Printf("tuning %s on %s[%d] (%d trials)\n\n", args[0], dataType, size, trials)

	best, evals, err := g.Search(context.Background(), registry, cost)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CUTOFF\tPIVOT\tCOST")
	for _, e := range evals {
		fmt.Fprintf(w, "%d\t%s\t%.0f\n", e.Candidate.InsertionCutoff, e.Candidate.PivotPolicy, e.Cost)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: cutoff=%d pivot=%s\n", best.InsertionCutoff, best.PivotPolicy)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := experiment.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "scenario: %s (%d runs)\n", scenario.Name, len(scenario.Runs))

	results, err := experiment.RunScenarioParallel(context.Background(), scenario, algo.NewRegistry(), workers)
	if err != nil {
		return err
	}

	return experiment.WriteSummaryCSV(os.Stdout, results)
}

func metricSelector() (analysis.MetricSelector, error) {
	switch metric {
	case "comparisons":
		return analysis.MetricComparisons, nil
	case "swaps":
		return analysis.MetricSwaps, nil
	case "accesses":
		return analysis.MetricAccesses, nil
	default:
		return nil, fmt.Errorf("unknown metric: %s", metric)
	}
}
