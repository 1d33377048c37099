// Package main provides the entry point for the contribfang CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/contribfang/cmd/contribfang/commands"
	"github.com/Sumatoshi-tech/contribfang/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "contribfang",
		Short: "Contribfang - branch-aware git contribution statistics",
		Long: `Contribfang computes commit and line-change statistics per committer
and per email domain across the remote-tracking branches of a git
repository, over a trailing time window, and writes CSV tables and
pie charts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "contribfang %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
