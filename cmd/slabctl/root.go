package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:   "slabctl",
	Short: "Exercise slabkit containers and inspect growth policies",
	Long: `slabctl drives slabkit's stacks and allocators through scripted
operation sequences and prints how length and capacity evolve. It is a
tool for choosing a backend and a growth policy for a workload.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log container activity to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging routes the library's debug records to a terminal logger when
// --verbose is given.
func setupLogging() {
	if !verbose || quiet {
		logger.Init(logger.Options{})
		return
	}
	h := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.DebugLevel,
		Prefix:          "slabctl",
		ReportTimestamp: true,
	})
	logger.Init(logger.Options{Enabled: true, Handler: h, Level: slog.LevelDebug})
}

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
