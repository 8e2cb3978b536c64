package cli

import (
	"github.com/spf13/cobra"
)

// buildVersion is stamped by the release process; the default marks dev builds.
var buildVersion = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the licensecrawl version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("licensecrawl " + buildVersion)
		},
	}
}
