package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	flagBatchSize int
	flagWorkers   int
)

var parallelCmd = &cobra.Command{
	Use:   "parallel",
	Short: "Stream a feed and process it with a worker pool",
	Long: "Stream a feed export, group the lines into fixed-size batches, and fan the batches out to a " +
		"bounded pool of workers for parsing. The total line count is reported once every batch has completed.",
	RunE: runParallel,
}

func init() {
	registerCommonFlags(parallelCmd)
	parallelCmd.Flags().IntVarP(&flagBatchSize, "batch-size", "b", 0, "Lines per batch (default: 100000)")
	parallelCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "Worker pool size (default: 4)")
	rootCmd.AddCommand(parallelCmd)
}

func runParallel(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(flagBatchSize, flagWorkers)
	if err != nil {
		return err
	}
	return runFeed(cmd.Context(), cfg, modeParallel, os.Stdout, nil)
}
