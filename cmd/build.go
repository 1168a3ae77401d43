package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pohlang/plhub/internal/builder"
	"github.com/pohlang/plhub/internal/cache"
	"github.com/pohlang/plhub/internal/config"
	"github.com/pohlang/plhub/internal/logging"
	"github.com/pohlang/plhub/internal/project"
	"github.com/pohlang/plhub/internal/runtime"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:          "build",
	Short:        "Build the current project",
	Long:         `Incrementally compile the project's .poh sources with the PohLang runtime, rebuilding only changed files and their dependents.`,
	SilenceUsage: true,
	RunE:         runBuild,
}

func init() {
	buildCmd.Flags().Bool("force", false, "Compile all files regardless of the cache")
	buildCmd.Flags().Bool("no-cache", false, "Disable the build cache")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")

	b, store, err := newBuilder(cmd, cwd, force)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	result, err := b.Build()
	if err != nil {
		return err
	}

	printResult(result)

	if result.Failed > 0 {
		return fmt.Errorf("build completed with %d failure(s)", result.Failed)
	}

	return nil
}

// newBuilder assembles a builder for the project containing dir. The
// returned store is nil when caching is disabled and must be closed by the
// caller otherwise.
func newBuilder(cmd *cobra.Command, dir string, force bool) (*builder.Builder, *cache.Store, error) {
	root, err := project.FindRoot(dir)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.NewLoader().LoadForCommand(cmd, root)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(cfg.Verbose)

	binary := cfg.RuntimePath
	if binary == "" {
		// A missing runtime is reported per file by the invoker, the cycle
		// itself still runs
		binary, _ = runtime.FindBinary(runtime.DefaultRoot())
	}

	b := builder.New(root, runtime.NewInvoker(binary, root), logger)
	b.Ignore = cfg.Ignore
	b.Force = force
	b.NoCache = cfg.NoCache

	var store *cache.Store
	if !cfg.NoCache {
		store, err = cache.OpenStore(filepath.Join(root, filepath.FromSlash(cache.DirName)))
		if err != nil {
			logger.Warn("artifact store unavailable", "error", err)
		} else {
			b.Artifacts = store
		}
	}

	return b, store, nil
}

func printResult(result *builder.Result) {
	if result.Failed == 0 {
		fmt.Printf("Build successful: %d file(s) compiled\n", result.Succeeded)
	} else {
		fmt.Printf("Build completed with errors: %d ok, %d failed\n", result.Succeeded, result.Failed)
	}

	for _, msg := range result.Messages {
		fmt.Printf("   %s\n", msg)
	}
}
