// Package cli implements the splitqueued command-line interface using
// Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "splitqueued",
	Short: "splitqueued — a multilevel feedback scheduling queue service",
	Long: `splitqueued runs a multilevel feedback scheduling queue behind an HTTP
introspection surface, and includes a synthetic load generator for exercising
the selection algorithm under load.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
