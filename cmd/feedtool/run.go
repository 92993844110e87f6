package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/spurintel/feed-tools/internal/config"
	"github.com/spurintel/feed-tools/internal/feed"
	"github.com/spurintel/feed-tools/internal/fetch"
	"github.com/spurintel/feed-tools/internal/observability"
	"github.com/spurintel/feed-tools/internal/process"
)

// Run modes, also used as subcommand names.
const (
	modeStream   = "stream"
	modeParallel = "parallel"
)

var (
	flagFeedType   string
	flagBaseURL    string
	flagConfigPath string
	flagVerbose    bool
)

// registerCommonFlags attaches the flags shared by both run modes.
func registerCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagFeedType, "feed-type", "f", "", "Feed to process: anonymous or anonymous-residential (default: anonymous)")
	cmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Override the feed base URL")
	cmd.Flags().StringVarP(&flagConfigPath, "config", "c", "", "Path to JSON config file")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print detailed run information")
}

// resolveConfig layers the config file, environment, and CLI flags over
// the defaults, then validates the result. batchSize and workers are
// zero for the serial mode.
func resolveConfig(batchSize, workers int) (config.Config, error) {
	cfg := config.Default()

	if flagConfigPath != "" {
		fileCfg, err := config.Load(flagConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	cfg.Token = config.TokenFromEnv()

	if flagFeedType != "" {
		cfg.FeedType = flagFeedType
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if batchSize > 0 {
		cfg.BatchSize = batchSize
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if flagVerbose {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// runFeed opens the feed stream and processes it in the given mode,
// printing the run summary to out on success. cfg must already be
// validated. fetchOpts is nil outside of tests.
func runFeed(ctx context.Context, cfg config.Config, mode string, out io.Writer, fetchOpts *fetch.Options) error {
	start := time.Now()

	runID := uuid.New().String()
	logger := observability.NewLogger(cfg.Verbose).With("run_id", runID)

	feedType, err := feed.ParseType(cfg.FeedType)
	if err != nil {
		return err
	}
	url, err := feedType.LatestURL(cfg.BaseURL)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(out)
	if cfg.Verbose {
		printer.PrintRunInfo(runID, mode, url, cfg.BatchSize, cfg.Workers)
	}

	logger.Debug("opening feed stream", "url", url, "mode", mode)
	stream, err := fetch.Open(ctx, url, cfg.Token, fetchOpts)
	if err != nil {
		return err
	}
	defer func() { _ = stream.Close() }()

	var count int
	switch mode {
	case modeStream:
		count, err = process.NewSerial(process.NopProcessor{}, logger).Run(ctx, stream)
	case modeParallel:
		count, err = process.NewParallel(process.NopProcessor{}, cfg.BatchSize, cfg.Workers, logger).Run(ctx, stream)
	default:
		return fmt.Errorf("unknown run mode %q", mode)
	}
	if err != nil {
		return fmt.Errorf("feed run failed: %w", err)
	}

	printer.PrintSummary(count, time.Since(start))
	return nil
}
