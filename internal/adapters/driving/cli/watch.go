package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driving"
	"github.com/nivalis-labs/gcdctl/internal/logger"
)

// watchSettleDelay is how long a file must be quiet before it is
// imported. Exports are written incrementally; importing too early
// reads a truncated document.
const watchSettleDelay = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Watch a directory and import new XML exports",
	Long: `Watches a directory and imports every XML file that appears in it.
Files are imported once they have stopped changing. Conversion and
destination inference work exactly as for 'gcdctl import'.

Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&importTypeFlag, "type", "t", "",
		"XML schema override applied to every imported file")
	watchCmd.Flags().StringVarP(&importEndpointFlag, "endpoint", "e", "",
		"destination override (calibration, detector-status, geometry)")
	watchCmd.Flags().IntVarP(&importRunFlag, "run", "r", 0,
		"run number (required for baseline imports)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}
	if err := requireUpload(); err != nil {
		return err
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", dir)
	}

	opts, err := importOptions(cmd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for XML exports (Ctrl-C to stop)\n", dir)

	// pending maps paths to their last write time; a file is imported
	// once it has been quiet for watchSettleDelay.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(watchSettleDelay / 2)
	defer ticker.Stop()

	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".xml") {
				continue
			}
			pending[event.Name] = time.Now()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < watchSettleDelay {
					continue
				}
				delete(pending, path)
				importWatchedFile(cmd, path, opts)
			}
		}
	}
}

// importWatchedFile imports one settled file. Failures are reported and
// swallowed; the watch keeps running.
func importWatchedFile(cmd *cobra.Command, path string, opts driving.ImportOptions) {
	content, err := os.ReadFile(path)
	if err != nil {
		cmd.PrintErrf("%s %s: %v\n", errorStyle.Render("failed"), path, err)
		return
	}

	declared := domain.TypeUnknown
	if importTypeFlag != "" {
		if parsed, err := domain.ParseRecordType(importTypeFlag); err == nil {
			declared = parsed
		}
	}

	doc := domain.RawDocument{
		Source:       path,
		Content:      string(content),
		DeclaredType: declared,
	}

	res := importService.ImportOne(cmd.Context(), doc, opts)
	switch {
	case res.Success:
		detail := ""
		if res.Upload != nil {
			detail = fmt.Sprintf(" (%d records to %s)",
				res.Upload.Succeeded, res.Endpoint.Path())
		}
		cmd.Printf("%s %s%s\n",
			successStyle.Render("ok"), path, mutedStyle.Render(detail))
	case res.Err != nil:
		cmd.PrintErrf("%s %s: %v\n", errorStyle.Render("failed"), path, res.Err)
	default:
		cmd.PrintErrf("%s %s\n", errorStyle.Render("failed"), path)
	}
}
