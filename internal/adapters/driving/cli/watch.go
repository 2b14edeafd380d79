package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/verity-labs/claimlens-cli/internal/core/ports/driving"
	"github.com/verity-labs/claimlens-cli/internal/logger"
)

// watchSettle is how long a file must be quiet before it is ingested,
// so partially written files are not picked up mid-copy.
const watchSettle = 500 * time.Millisecond

var watchCompany string

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest new documents",
	Long: `Watches a directory and ingests every file that is created or
modified in it. The version label is derived from the file name.
Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchCompany, "company", "c", "", "company ingested documents belong to (required)")
	_ = watchCmd.MarkFlagRequired("company")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s for company %s. Press Ctrl+C to stop.\n", dir, watchCompany)

	// Coalesce write bursts per path; ingest once the file settles.
	pending := make(map[string]*time.Timer)
	done := make(chan string)

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-done:
			delete(pending, path)
			ingestWatched(ctx, cmd, path)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			path := event.Name
			if timer, exists := pending[path]; exists {
				timer.Reset(watchSettle)
				continue
			}
			pending[path] = time.AfterFunc(watchSettle, func() {
				select {
				case done <- path:
				case <-ctx.Done():
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

func ingestWatched(ctx context.Context, cmd *cobra.Command, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Reading %s: %v", path, err)
		return
	}

	result, err := ingestService.Ingest(ctx, driving.IngestRequest{
		CompanyID:    watchCompany,
		VersionLabel: versionLabelFromPath(path),
		Bytes:        data,
	})
	if err != nil {
		cmd.Printf("Failed to ingest %s: %v\n", path, err)
		return
	}

	if result.Status == driving.IngestExists {
		cmd.Printf("Skipped %s (already ingested as %s)\n", path, result.DocumentID)
		return
	}
	cmd.Printf("Ingested %s as document %s\n", path, result.DocumentID)
}

// versionLabelFromPath derives a version label from the file name,
// without its extension.
func versionLabelFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
