package main

import (
	"os"

	"github.com/spf13/cobra"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Stream a feed and process it serially",
	Long:  "Stream a feed export and parse it line by line on a single goroutine, reporting the total line count at the end.",
	RunE:  runStream,
}

func init() {
	registerCommonFlags(streamCmd)
	rootCmd.AddCommand(streamCmd)
}

func runStream(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(0, 0)
	if err != nil {
		return err
	}
	return runFeed(cmd.Context(), cfg, modeStream, os.Stdout, nil)
}
