package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"codescope/internal/blocks"
	"codescope/internal/gitdiff"
	"codescope/internal/source"
	"codescope/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run change analysis whenever source files change",
	Long: `Watch monitors the project tree and re-runs the staged-change analysis
after each debounced burst of file writes. Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ac, err := newAnalysisContext()
	if err != nil {
		return err
	}
	defer ac.provider.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	w, err := watcher.New(ac.root, source.SourceExtensions)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Stop()

	analyze := func(files []string) {
		// Edited files need a fresh parse; re-running against a fresh
		// provider keeps the cache's append-only contract intact.
		provider, err := source.NewProvider()
		if err != nil {
			log.Printf("Warning: failed to create source provider: %v", err)
			return
		}
		defer provider.Close()

		extractor := gitdiff.NewExtractor(ac.root, nil)
		changes, err := extractor.StagedChanges()
		if err != nil {
			log.Printf("Warning: change analysis failed: %v", err)
			return
		}

		analysis := blocks.AnalyzeChanges(provider, ac.root, changes)
		if err := printJSON(analysis); err != nil {
			log.Printf("Warning: failed to write analysis: %v", err)
		}
	}

	if err := w.Start(ctx, analyze); err != nil {
		return err
	}

	if !quietFlag {
		log.Printf("Watching %s for changes...", ac.root)
	}

	<-ctx.Done()
	return nil
}
