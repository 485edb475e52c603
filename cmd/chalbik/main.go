package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"
	"github.com/san-kum/chalbik/internal/config"
	"github.com/san-kum/chalbik/internal/experiment"
	"github.com/san-kum/chalbik/internal/metrics"
	"github.com/san-kum/chalbik/internal/palette"
	"github.com/san-kum/chalbik/internal/rain"
	"github.com/san-kum/chalbik/internal/storage"
	"github.com/san-kum/chalbik/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir    string
	configFile string
	preset     string
	// rain flags, applied over preset, config file and environment
	tailColor  string
	headColor  string
	background string
	speed      string
	tailLength string
	charset    string
	curve      string
	fps        int
	flicker    time.Duration
	seed       int64
	debug      bool
	status     bool
	// bench
	benchWidth  int
	benchHeight int
	benchFrames int
	benchSave   bool
	// config
	writePath string
)

// main runs the animation when no subcommand is given. It exits with status 1
// if the command returns an error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "chalbik",
		Short:        "Klingon digital rain for the terminal",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runRain,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".chalbik", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	colours := strings.Join(palette.Names(), ", ")
	pf.StringVarP(&tailColor, "tail-color", "t", config.DefaultTailColor, "trail colour, #rrggbb or one of: "+colours)
	pf.StringVarP(&headColor, "head-color", "d", config.DefaultHeadColor, "head colour, #rrggbb or one of: "+colours)
	pf.StringVar(&background, "background", config.DefaultBackground, "background colour trails fade into")
	pf.StringVarP(&speed, "speed", "s", config.DefaultSpeed, "drop speed: slow or fast")
	pf.StringVarP(&tailLength, "tail-length", "l", config.DefaultTailLength, "trail lifespan in seconds or as a duration")
	pf.StringVar(&charset, "charset", config.DefaultCharset, "literal characters or one of: "+strings.Join(rain.CharsetNames(), ", "))
	pf.StringVar(&curve, "curve", config.DefaultCurve, "fade curve: linear or exponential")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.DurationVar(&flicker, "flicker", config.DefaultFlicker, "glyph change period (0 disables)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.BoolVar(&debug, "debug", false, "log to chalbik.log")
	rootCmd.Flags().BoolVar(&status, "status", false, "start with the status line shown")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tHEAD\tTAIL\tSPEED\tCHARSET")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, p.HeadColor, p.TailColor, p.Speed, p.Charset)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "save the configuration to this file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "render frames headless and report timings",
		RunE:  benchRain,
	}
	benchCmd.Flags().IntVar(&benchWidth, "width", 80, "grid width")
	benchCmd.Flags().IntVar(&benchHeight, "height", 24, "grid height")
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames to compose")
	benchCmd.Flags().BoolVar(&benchSave, "save", false, "store the report under --data")

	reportsCmd := &cobra.Command{
		Use:   "reports [report_id]",
		Short: "list saved bench reports, or plot one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listReports,
	}

	rootCmd.AddCommand(presetsCmd, configCmd, benchCmd, reportsCmd)
	return rootCmd
}

// setupLogging discards log output unless debugging, in which case it goes
// to chalbik.log. The returned closer is never nil.
func setupLogging(cfg *config.Config) (io.Closer, error) {
	if !cfg.Debug {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile("chalbik.log", "chalbik")
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return f, nil
}

// loadConfig layers defaults, preset, config file, environment and the flags
// the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		if err := cfg.Merge(configFile); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("tail-color") {
		cfg.TailColor = tailColor
	}
	if flags.Changed("head-color") {
		cfg.HeadColor = headColor
	}
	if flags.Changed("background") {
		cfg.Background = background
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("tail-length") {
		cfg.TailLength = tailLength
	}
	if flags.Changed("charset") {
		cfg.Charset = charset
	}
	if flags.Changed("curve") {
		cfg.Curve = curve
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("flicker") {
		cfg.Flicker = flicker
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	return cfg, nil
}

func runRain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	resolved, err := cfg.Resolve()
	if err != nil {
		return err
	}
	s := resolved.Settings
	runSeed := resolved.Seed
	if runSeed == 0 {
		runSeed = time.Now().UnixNano()
	}
	log.Printf("start: speed=%s lifespan=%v curve=%s charset=%q glyphs=%d interval=%v seed=%d",
		s.Speed, s.TailLifespan, s.Curve, cfg.Charset, resolved.Catalog.Len(), resolved.Interval, runSeed)

	comp := rain.NewCompositor(resolved.Catalog, rand.New(rand.NewSource(runSeed)))
	model := viz.NewModel(comp, viz.Options{
		Settings:   s,
		Interval:   resolved.Interval,
		Profile:    termenv.ColorProfile(),
		Charset:    cfg.Charset,
		ShowStatus: status,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", writePath)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func benchRain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	resolved, err := cfg.Resolve()
	if err != nil {
		return err
	}
	runSeed := resolved.Seed
	if runSeed == 0 {
		runSeed = 42
	}

	exp := experiment.New(experiment.Config{
		Width:    benchWidth,
		Height:   benchHeight,
		Frames:   benchFrames,
		Interval: resolved.Interval,
		Seed:     runSeed,
		Settings: resolved.Settings,
		Catalog:  resolved.Catalog,
	})
	if err := exp.Setup(metrics.Defaults()); err != nil {
		return err
	}

	fmt.Printf("benchmarking %dx%d, %d frames at %v\n\n", benchWidth, benchHeight, benchFrames, resolved.Interval)
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, result.Metrics[name])
	}
	fmt.Fprintf(w, "wall\t%v\n", result.Wall)
	if secs := result.Wall.Seconds(); secs > 0 {
		fmt.Fprintf(w, "frames/sec\t%.0f\n", float64(len(result.Samples))/secs)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	took := make([]float64, len(result.Samples))
	for i, smp := range result.Samples {
		took[i] = float64(smp.Took.Microseconds())
	}
	if len(took) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(took, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("compose time (µs)")))
	}

	if !benchSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.ReportMetadata{
		Seed:       runSeed,
		Width:      benchWidth,
		Height:     benchHeight,
		Frames:     benchFrames,
		IntervalMs: float64(resolved.Interval.Microseconds()) / 1000,
		Speed:      resolved.Settings.Speed.String(),
		TailLength: resolved.Settings.TailLifespan.String(),
		Charset:    cfg.Charset,
	}, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nreport saved: %s\n", id)
	return nil
}

func listReports(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if len(args) == 1 {
		return plotReport(cmd.OutOrStdout(), st, args[0])
	}
	reports, err := st.List()
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Println("no reports found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSIZE\tFRAMES\tSPEED\tLIT\tCOMPOSE")

	for _, r := range reports {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\t%.3f\t%.1fµs\n",
			r.ID,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Width, r.Height,
			r.Frames,
			r.Speed,
			r.Metrics["lit_fraction"],
			r.Metrics["compose_us"],
		)
	}

	return w.Flush()
}

// plotReport prints a saved report's summary and its per-frame compose times.
func plotReport(out io.Writer, st *storage.Store, id string) error {
	meta, err := st.Load(id)
	if err != nil {
		return fmt.Errorf("load report %s: %w", id, err)
	}
	frames, err := st.LoadFrames(id)
	if err != nil {
		return fmt.Errorf("load frames %s: %w", id, err)
	}

	fmt.Fprintf(out, "%s: %dx%d, %d frames, speed %s, tail %s, seed %d\n",
		meta.ID, meta.Width, meta.Height, meta.Frames, meta.Speed, meta.TailLength, meta.Seed)
	if len(frames) < 2 {
		fmt.Fprintln(out, "not enough frames to plot")
		return nil
	}

	took := make([]float64, len(frames))
	lit := make([]float64, len(frames))
	for i, f := range frames {
		took[i] = float64(f.Took.Microseconds())
		lit[i] = float64(f.Lit)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(took, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("compose time (µs)")))
	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(lit, asciigraph.Height(6), asciigraph.Width(60), asciigraph.Caption("lit cells")))
	return nil
}
