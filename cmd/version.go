package cmd

import (
	"fmt"

	"github.com/pohlang/plhub/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the plhub version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("plhub %s (%s) %s\n", version.Version, version.Commit, version.BuildTime)
	},
}
