package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwlat/bwlat/internal/config"
	"github.com/bwlat/bwlat/internal/discovery"
	"github.com/bwlat/bwlat/internal/parser"
	"github.com/bwlat/bwlat/internal/report"
	"github.com/bwlat/bwlat/internal/stats"
	"github.com/bwlat/bwlat/pkg/types"
)

// Summary describes one completed (or aborted) run.
type Summary struct {
	Files    int // files reported
	Lines    int // latency values parsed across reported files
	Skipped  int // empty files skipped
	Duration time.Duration
}

// discoverFunc and parseFunc match discovery.Discover and parser.ParseFile.
type (
	discoverFunc func(root string, opts discovery.Options) ([]types.LogFileRef, error)
	parseFunc    func(path string) ([]float64, error)
)

// Scanner runs the pipeline for one ScanConfig.
type Scanner struct {
	cfg      config.ScanConfig
	reporter report.Reporter

	discover discoverFunc     // injectable for tests
	parse    parseFunc        // injectable for tests
	now      func() time.Time // injectable for deterministic tests
}

// New returns a Scanner that reports to r.
func New(cfg config.ScanConfig, r report.Reporter) *Scanner {
	return &Scanner{
		cfg:      cfg,
		reporter: r,
		discover: discovery.Discover,
		parse:    parser.ParseFile,
		now:      time.Now,
	}
}

// Run executes one scan. ctx is checked between files.
func (s *Scanner) Run(ctx context.Context) (Summary, error) {
	start := s.now()
	var sum Summary

	refs, err := s.discover(s.cfg.Root, discovery.Options{
		Marker:  s.cfg.Marker,
		Exclude: s.cfg.Exclude,
	})
	if err != nil {
		return s.finish(start, sum), err
	}
	slog.Debug("scan: discovered log files", "root", s.cfg.Root, "count", len(refs))

	for _, ref := range refs {
		if err := ctx.Err(); err != nil {
			return s.finish(start, sum), err
		}

		values, err := s.parse(ref.Path)
		if err != nil {
			return s.finish(start, sum), fmt.Errorf("scan: %w", err)
		}

		st, err := stats.Summarize(values)
		if err != nil {
			if errors.Is(err, types.ErrEmptySequence) && s.cfg.SkipEmpty {
				slog.Warn("scan: skipped empty log file", "path", ref.Path)
				sum.Skipped++
				continue
			}
			return s.finish(start, sum), fmt.Errorf("scan: %s: %w", ref.Path, err)
		}

		if err := s.reporter.Report(ref, st); err != nil {
			return s.finish(start, sum), fmt.Errorf("scan: %w", err)
		}
		sum.Files++
		sum.Lines += st.Count
		slog.Debug("scan: file reported", "path", ref.Path, "values", st.Count)
	}

	return s.finish(start, sum), nil
}

// finish stamps the run duration onto sum.
func (s *Scanner) finish(start time.Time, sum Summary) Summary {
	sum.Duration = s.now().Sub(start)
	return sum
}
