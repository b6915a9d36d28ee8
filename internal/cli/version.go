package cli

import (
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version information for stash",
		Run:   runVersion,
	}

	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) {
	cmd.Printf("stash version %s\n", Version)
	cmd.Printf("Build date: %s\n", BuildDate)
	cmd.Printf("Git commit: %s\n", GitCommit)
}
