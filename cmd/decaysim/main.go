package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/san-kum/decaysim/internal/catalog"
	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/decay"
	"github.com/san-kum/decaysim/internal/export"
	"github.com/san-kum/decaysim/internal/logger"
	"github.com/san-kum/decaysim/internal/server"
	"github.com/san-kum/decaysim/internal/storage"
	"github.com/san-kum/decaysim/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	// model parameters
	n0       float64
	unit     string
	multiple float64
	samples  int
	// display
	logScale   bool
	plotWidth  int
	plotHeight int
	saveRun    bool
	theme      string
	outFile    string
	addr       string
)

// modelFlags are the flags that preselect the interactive explorer.
var modelFlags = []string{"n0", "unit", "multiple", "samples", "log", "preset"}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the commands. With no subcommand the interactive
// explorer starts.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "decaysim",
		Short:        "radioactive decay explorer",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	runCmd := &cobra.Command{
		Use:   "run [isotope]",
		Short: "compute and plot a decay curve",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCurve,
	}
	addModelFlags(runCmd)
	addPlotFlags(runCmd)
	runCmd.Flags().BoolVar(&saveRun, "save", false, "save the run to the data directory")

	tuiCmd := &cobra.Command{
		Use:   "tui [isotope]",
		Short: "interactive explorer",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	addModelFlags(tuiCmd)
	tuiCmd.Flags().StringVar(&theme, "theme", viz.CurrentTheme.Name,
		"color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	isotopesCmd := &cobra.Command{
		Use:   "isotopes",
		Short: "list the isotope catalog",
		RunE:  listIsotopes,
	}

	unitsCmd := &cobra.Command{
		Use:   "units",
		Short: "list time units",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "UNIT\tSYMBOL\tSECONDS")
			for _, u := range catalog.Units() {
				fmt.Fprintf(w, "%s\t%s\t%.0f\n", u.Name, u.Symbol, u.Seconds)
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PRESET\tISOTOPE\tUNIT\tMULTIPLE\tLOG")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%v\n", name, p.Isotope, p.Unit, p.Multiple, p.LogScale)
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	addPlotFlags(plotCmd)
	plotCmd.Flags().BoolVar(&logScale, "log", false, "logarithmic y axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved run to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a saved run as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&logScale, "log", false, "logarithmic y axis")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare every catalog isotope under the same parameters",
		RunE:  compare,
	}
	addModelFlags(compareCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve decay curves over HTTP",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	rootCmd.AddCommand(runCmd, tuiCmd, isotopesCmd, unitsCmd, presetsCmd, listCmd, compareCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, serveCmd)
	return rootCmd
}

func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&n0, "n0", decay.DefaultInitial, "initial number of nuclei")
	cmd.Flags().StringVar(&unit, "unit", config.DefaultUnit, "time unit (seconds, minutes, hours, days, years)")
	cmd.Flags().Float64Var(&multiple, "multiple", decay.DefaultMultiple, "time window in half-lives (0.5 to 10, step 0.5)")
	cmd.Flags().IntVar(&samples, "samples", decay.DefaultSamples, "number of grid points")
	cmd.Flags().BoolVar(&logScale, "log", false, "logarithmic y axis")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func addPlotFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&plotWidth, "width", config.DefaultPlotWidth, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", config.DefaultPlotHeight, "plot height")
}

// loadConfig layers defaults, config file, preset and explicitly set flags,
// in that order. A positional arg names the isotope.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Isotope = args[0]
	}
	if flags.Changed("n0") {
		cfg.Initial = n0
	}
	if flags.Changed("unit") {
		cfg.Unit = unit
	}
	if flags.Changed("multiple") {
		cfg.Multiple = multiple
	}
	if flags.Changed("samples") {
		cfg.Samples = samples
	}
	if flags.Changed("log") {
		cfg.LogScale = logScale
	}
	if flags.Changed("width") {
		cfg.Plot.Width = plotWidth
	}
	if flags.Changed("height") {
		cfg.Plot.Height = plotHeight
	}
	if flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") || configFile == "" {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") || configFile == "" {
		cfg.Log.Format = logFormat
	}
	return cfg, nil
}

// setup loads the config and builds the logger for a command.
func setup(cmd *cobra.Command, args []string) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	if configFile != "" {
		log.Debug("config loaded", zap.String("path", configFile))
	}
	return cfg, log, nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()

	iso, p, err := cfg.Resolve()
	if err != nil {
		return err
	}

	curve, err := decay.NewCurve(iso, p)
	if err != nil {
		return err
	}

	fmt.Println(viz.PlotCurve(curve, viz.PlotOptions{
		Width:    cfg.Plot.Width,
		Height:   cfg.Plot.Height,
		LogScale: cfg.LogScale,
		Color:    viz.CurrentTheme.Curve,
	}))
	fmt.Println()
	fmt.Println(viz.PreviewTable(curve, 10))
	fmt.Println(viz.SummaryPanel(curve, iso.Application))

	if saveRun {
		st := storage.New(cfg.DataDir, log)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(curve, cfg.LogScale)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

// preselect reports whether the explorer should open on the parameter
// screen instead of the isotope menu.
func preselect(cmd *cobra.Command, args []string) bool {
	if len(args) > 0 || configFile != "" {
		return true
	}
	for _, name := range modelFlags {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func runTUI(cmd *cobra.Command, args []string) error {
	if theme != "" {
		th, err := viz.GetTheme(theme)
		if err != nil {
			return err
		}
		viz.CurrentTheme = th
	}

	cfg, log, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()

	opts := []viz.Option{
		viz.WithStore(storage.New(cfg.DataDir, log)),
	}
	if preselect(cmd, args) {
		iso, p, err := cfg.Resolve()
		if err != nil {
			return err
		}
		opts = append(opts, viz.WithParams(iso, p, cfg.LogScale))
	}
	return viz.RunInteractive(opts...)
}

func listIsotopes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tNAME\tHALF-LIFE\tMODE\tλ [1/s]\tAPPLICATION")
	for _, iso := range catalog.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.3e\t%s\n",
			iso.Symbol,
			iso.Name,
			iso.HalfLifeNote,
			iso.DecayMode,
			decay.DecayConstant(iso.HalfLife),
			iso.Application,
		)
	}
	return w.Flush()
}

func compare(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()

	_, p, err := cfg.Resolve()
	if err != nil {
		return err
	}

	curves, err := decay.NewEnsemble(catalog.All(), p).Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SYMBOL\tT_MAX [%s]\tλ [1/s]\tτ [s]\tN(T_MAX)\tREMAINING\n", p.Unit)
	for _, c := range curves {
		last := c.Last()
		fmt.Fprintf(w, "%s\t%.4g\t%.3e\t%.3e\t%.4g\t%.2f%%\n",
			c.Isotope.Symbol,
			c.MaxUnit,
			c.Lambda,
			c.Tau,
			last.N,
			100*last.N/p.Initial,
		)
	}
	return w.Flush()
}

// openStore resolves the data directory through the config layers. The
// run commands take a run id, not an isotope, so no args are passed on.
func openStore(cmd *cobra.Command) (*storage.Store, *config.Config, error) {
	cfg, log, err := setup(cmd, nil)
	if err != nil {
		return nil, nil, err
	}
	return storage.New(cfg.DataDir, log), cfg, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tISOTOPE\tTIME\tN0\tUNIT\tMULTIPLE\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4g\t%s\t%.1f\t%d\n",
			run.ID,
			run.Isotope.Symbol,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Initial,
			run.Params.Unit,
			run.Params.Multiple,
			run.Params.Samples,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	curve, meta, err := st.LoadCurve(args[0])
	if err != nil {
		return err
	}
	if curve.Len() < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("isotope: %s\n", meta.Isotope.Name)
	fmt.Printf("samples: %d\n\n", curve.Len())

	fmt.Println(viz.PlotCurve(curve, viz.PlotOptions{
		Width:    cfg.Plot.Width,
		Height:   cfg.Plot.Height,
		LogScale: cfg.LogScale || meta.LogScale,
		Color:    viz.CurrentTheme.Curve,
	}))
	return nil
}

// writeOutput runs write against --out, or stdout when unset. The file's
// close error is returned when write succeeded.
func writeOutput(write func(io.Writer) error) (err error) {
	if outFile == "" {
		return write(os.Stdout)
	}
	if err := os.MkdirAll(filepath.Dir(outFile), 0755); err != nil {
		return err
	}
	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	curve, _, err := st.LoadCurve(args[0])
	if err != nil {
		return err
	}
	if curve.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	return writeOutput(func(w io.Writer) error {
		return export.WriteCSV(w, curve)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	curve, _, err := st.LoadCurve(args[0])
	if err != nil {
		return err
	}

	return writeOutput(func(w io.Writer) error {
		return export.WriteJSON(w, curve)
	})
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	curve, meta, err := st.LoadCurve(args[0])
	if err != nil {
		return err
	}

	return writeOutput(func(w io.Writer) error {
		_, err := fmt.Fprintln(w, export.CurveToSVG(curve, 720, 440, cfg.LogScale || meta.LogScale))
		return err
	})
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid defaults: %w", err)
	}

	srv, err := server.New(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx)
}
