package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bwlat/bwlat/internal/config"
	"github.com/bwlat/bwlat/internal/watch"
)

func newWatchCommand(opts *options, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [root]",
		Short: "Re-run the report whenever log files change",
		Long: `Watch scans once, then re-scans the tree every time a log file is
written, created, removed or renamed. Bursts of changes are debounced
(watch.debounce in the config file). A failing run is logged and watching
continues. When --config is given the file is reloaded on change; the watched
root, marker and debounce stay fixed for the life of the process.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts, args)
			if err != nil {
				return err
			}
			setupLogging(cfg, stderr)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			var current atomic.Pointer[config.Config]
			current.Store(cfg)

			if opts.configPath != "" {
				go func() {
					err := config.Watch(ctx, opts.configPath, func(updated *config.Config) {
						applyOverrides(cmd, opts, updated)
						updated.Scan.Root = cfg.Scan.Root
						updated.Scan.Marker = cfg.Scan.Marker
						if err := updated.Validate(); err != nil {
							slog.Error("config: reloaded config rejected", "err", err)
							return
						}
						current.Store(updated)
					})
					if err != nil {
						slog.Error("config: watcher stopped", "err", err)
					}
				}()
			}

			err = watch.Watch(ctx, cfg.Scan.Root, cfg.Scan.Marker, cfg.Watch.Debounce,
				func(ctx context.Context) error {
					return runScan(ctx, current.Load(), stdout)
				})
			slog.Info("watch: stopped", "root", cfg.Scan.Root)
			return err
		},
	}
}
