// Package main provides the entry point for the feedtool CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "feedtool",
	Short: "Stream and process Spur feed exports",
	Long: "feedtool streams newline-delimited JSON feed exports over HTTP and counts the records, " +
		"either serially (stream) or through a fixed-size worker pool (parallel). " +
		"The API token is read from the API_TOKEN environment variable.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
