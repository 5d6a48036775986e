package cli

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/bwlat/bwlat/internal/config"
	"github.com/bwlat/bwlat/internal/metrics"
	"github.com/bwlat/bwlat/internal/report"
	"github.com/bwlat/bwlat/internal/scan"
)

// options holds the persistent flag values.
type options struct {
	configPath  string
	marker      string
	exclude     []string
	skipEmpty   bool
	metricsFile string
	logLevel    string
}

// Main runs the command tree with args and returns the process exit code.
// A failing command is logged as JSON on stderr, like every other
// diagnostic.
func Main(args []string, stdout, stderr io.Writer) int {
	setupLogging(config.Default(), stderr)

	cmd := NewRootCommand(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		slog.Error("bwlat: run failed", "err", err)
		return 1
	}
	return 0
}

// NewRootCommand returns the bwlat root command writing reports to stdout and
// logs to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bwlat [root]",
		Short: "Report transfer latency statistics from bandwidth-test logs",
		Long: `bwlat walks a directory tree, parses every log file whose name
contains the marker (default "txt") and prints the minimum, maximum and
average time each logged transfer took.

Examples:
  bwlat
  bwlat ./results
  bwlat --exclude "archive/**" --metrics-file /var/lib/node_exporter/bwlat.prom`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			setupLogging(cfg, stderr)
			return runScan(cmd.Context(), cfg, stdout)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to YAML config file")
	flags.StringVar(&opts.marker, "marker", config.DefaultMarker, "substring a file name must contain to be scanned")
	flags.StringArrayVar(&opts.exclude, "exclude", nil, "doublestar pattern of paths to skip, relative to root (repeatable)")
	flags.BoolVar(&opts.skipEmpty, "skip-empty", false, "skip log files with no lines instead of failing")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus run metrics to this file after each run")
	flags.StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "log level: debug|info|warn|error")

	cmd.AddCommand(newWatchCommand(opts, stdout, stderr))
	return cmd
}

// resolveConfig loads the config file if one was given, then applies flags
// the user set explicitly and the positional root.
func resolveConfig(cmd *cobra.Command, opts *options, args []string) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyOverrides(cmd, opts, cfg)
	if len(args) == 1 {
		cfg.Scan.Root = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverrides copies explicitly set flags onto cfg.
func applyOverrides(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("marker") {
		cfg.Scan.Marker = opts.marker
	}
	if flags.Changed("exclude") {
		cfg.Scan.Exclude = opts.exclude
	}
	if flags.Changed("skip-empty") {
		cfg.Scan.SkipEmpty = opts.skipEmpty
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.Textfile = opts.metricsFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
}

func setupLogging(cfg *config.Config, stderr io.Writer) {
	logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)
}

// runScan performs one scan and, when configured, records its run metrics.
// The scan error takes precedence over a metrics write error.
func runScan(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	sum, err := scan.New(cfg.Scan, report.NewTextReporter(stdout)).Run(ctx)
	if err == nil {
		slog.Info("scan: run complete",
			"root", cfg.Scan.Root,
			"files", sum.Files,
			"lines", sum.Lines,
			"skipped", sum.Skipped,
			"duration", sum.Duration,
		)
	}

	if cfg.Metrics.Textfile == "" {
		return err
	}
	run := metrics.Run{
		Files:      sum.Files,
		Lines:      sum.Lines,
		Skipped:    sum.Skipped,
		Duration:   sum.Duration,
		Success:    err == nil,
		FinishedAt: time.Now(),
	}
	if merr := metrics.WriteTextfile(cfg.Metrics.Textfile, run); merr != nil {
		slog.Error("metrics: write failed", "path", cfg.Metrics.Textfile, "err", merr)
		if err == nil {
			return merr
		}
	}
	return err
}
