package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/pohlang/plhub/internal/watch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:          "watch",
	Short:        "Rebuild on source changes",
	Long:         `Watch the project for .poh changes and run an incremental build after each quiet period.`,
	SilenceUsage: true,
	RunE:         runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	cwd, err := workingDir()
	if err != nil {
		return err
	}

	b, store, err := newBuilder(cmd, cwd, false)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	doBuild := func(changed int) {
		if changed > 0 {
			fmt.Printf("\nChanges detected: %d file(s)\n", changed)
		}

		result, err := b.Build()
		if err != nil {
			fmt.Printf("Build error: %v\n", err)
			return
		}

		printResult(result)
		fmt.Printf("\nWatching for changes in %s\n", b.Root)
	}

	w, err := watch.New(b.Root, watch.DefaultDebounce, doBuild, b.Logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("Watching for changes in %s\n", b.Root)
	fmt.Println("Press Ctrl+C to stop")

	// Initial build before settling into the watch loop
	doBuild(0)

	err = w.Start(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Println("\nWatch mode stopped")
	}

	return err
}
