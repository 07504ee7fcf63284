package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build metadata, stamped by the release build with -ldflags -X.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the petd build this binary came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "petd %s\n  commit: %s\n  built:  %s\n", Version, Commit, BuildDate)
		return err
	},
}

// VersionString is the short form reported by /api/health and the startup log.
func VersionString() string {
	if Commit == "unknown" {
		return Version
	}
	return Version + "+" + Commit
}
