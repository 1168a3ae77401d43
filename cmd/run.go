package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/pohlang/plhub/internal/config"
	"github.com/pohlang/plhub/internal/runtime"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:          "run <file.poh>",
	Short:        "Run a PohLang program",
	Long:         `Run a PohLang source file with the installed PohLang runtime.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runRun,
}

func init() {
	runCmd.Flags().Bool("debug", false, "Enable debug tracing")
}

func runRun(cmd *cobra.Command, args []string) error {
	file := args[0]

	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("file %q not found", file)
	}

	if !strings.HasSuffix(file, ".poh") {
		fmt.Printf("Warning: File %q does not have .poh extension.\nProceeding anyway...\n", file)
	}

	cwd, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := config.NewLoader().LoadForCommand(cmd, cwd)
	if err != nil {
		return err
	}

	binary := cfg.RuntimePath
	if binary == "" {
		binary, err = runtime.FindBinary(runtime.DefaultRoot())
		if err != nil {
			return err
		}
	}

	if cfg.Verbose {
		fmt.Printf("plhub: running %s\n\n", file)
	}

	return runtime.NewInvoker(binary, cwd).Run(file, cfg.Debug)
}
