// Package commands provides the CLI commands for the rewrite-core driver.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "galac [fixture.json]",
	Short: "Semantic rewrite core driver",
	Long: `galac drives the semantic AST-rewriting core end to end against a
fixture frontend (a JSON-encoded typed AST plus index-oracle responses,
standing in for a real compiler frontend).

Usage:
  galac [fixture.json]             Transpile a fixture (shorthand)
  galac transpile -i dir -o out/   Transpile every fixture in a directory
  galac version                    Print version`,
	Args:          cobra.ArbitraryArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if transpileInput != "" || len(args) > 0 {
			return runTranspile(cmd, args)
		}
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.Flags().StringVarP(&transpileInput, "input", "i", "", "Fixture file or directory of fixture files")
	rootCmd.Flags().StringVarP(&transpileOutputDir, "output", "o", "", "Directory to write rewritten files to (stdout if empty)")
	rootCmd.Flags().BoolVar(&transpileSummary, "summary", false, "Print a diagnostic count summary grouped by message substring")
}
