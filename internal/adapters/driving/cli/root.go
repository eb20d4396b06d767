// Package cli implements the command-line interface for gcdctl.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nivalis-labs/gcdctl/internal/adapters/driven/config/file"
	"github.com/nivalis-labs/gcdctl/internal/adapters/driven/rest"
	"github.com/nivalis-labs/gcdctl/internal/adapters/driven/storage/sqlite"
	"github.com/nivalis-labs/gcdctl/internal/converters"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driven"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driving"
	"github.com/nivalis-labs/gcdctl/internal/core/services"
	"github.com/nivalis-labs/gcdctl/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by the commands. Wired by Setup; tests inject their own.
var (
	configStore      driven.ConfigStore
	historyStore     driven.HistoryStore
	apiClient        *rest.Client
	dispatcher       driving.ConversionDispatcher
	importService    driving.Importer
	verboseFlag      bool
	uploadConfigured bool
)

var rootCmd = &cobra.Command{
	Use:   "gcdctl",
	Short: "Import detector GCD exports into the collection service",
	Long: `gcdctl converts detector XML exports (geometry, calibration and
detector-status data) into normalised JSON and uploads the records to
the collection service.

Supported schemas: VEM calibration, ATWD/FADC baselines, DOMCal,
SPE fits and detector geometry.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"enable verbose output")
}

// Setup wires the services behind the commands. Conversion always
// works; the upload path is wired only once api.url is configured.
func Setup() error {
	store, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	configStore = store

	dispatcher = services.NewDispatcher(converters.NewRegistry())

	history, err := sqlite.NewHistoryStore("")
	if err != nil {
		// History is best effort; imports still run without it.
		logger.Warn("Import history unavailable: %v", err)
	} else {
		historyStore = history
	}

	var uploader driving.Uploader
	if apiURL := store.GetString("api.url"); apiURL != "" {
		timeout := time.Duration(store.GetInt("api.timeout_seconds")) * time.Second
		apiClient = rest.NewClient(
			context.Background(),
			apiURL,
			store.GetString("api.token"),
			timeout,
		)
		uploader = services.NewUploadService(apiClient, store.GetInt("upload.concurrency"))
		uploadConfigured = true
	}

	importService = services.NewImportService(dispatcher, uploader, historyStore)
	return nil
}

// Teardown releases resources acquired by Setup.
func Teardown() {
	if historyStore != nil {
		_ = historyStore.Close()
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// requireUpload guards commands that need a configured API endpoint.
func requireUpload() error {
	if !uploadConfigured {
		return fmt.Errorf("API URL not configured; run 'gcdctl config set api.url <url>' first")
	}
	return nil
}
