package cmd

import (
	"os"

	"github.com/pohlang/plhub/internal/release"
	"github.com/pohlang/plhub/internal/runtime"
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:          "release",
	Short:        "Run the plhub release pipeline",
	Long:         `Verify the working tree, run the test suite, tag the release and push the tag.`,
	SilenceUsage: true,
	RunE:         runRelease,
}

func init() {
	releaseCmd.Flags().Bool("dry-run", false, "Run checks and tests without tagging or pushing")
	releaseCmd.Flags().Bool("no-push", false, "Do not push the release tag")
	releaseCmd.Flags().Bool("skip-tests", false, "Skip running tests")
	releaseCmd.Flags().String("tag", "", "Override the tag name (default: v<plhub>-poh<runtime>)")
}

func runRelease(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noPush, _ := cmd.Flags().GetBool("no-push")
	skipTests, _ := cmd.Flags().GetBool("skip-tests")
	tag, _ := cmd.Flags().GetString("tag")

	p := release.NewPipeline(cwd, runtime.DefaultRoot(), os.Stdout)

	return p.Run(release.Options{
		DryRun:    dryRun,
		NoPush:    noPush,
		SkipTests: skipTests,
		Tag:       tag,
	})
}
