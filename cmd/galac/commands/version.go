package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information - can be set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the driver's version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("galac version %s\n", Version)
		if GitCommit != "unknown" {
			fmt.Printf("  Git commit: %s\n", GitCommit)
		}
	},
}
