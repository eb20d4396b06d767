package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driving"
)

var (
	importTypeFlag        string
	importEndpointFlag    string
	importRunFlag         int
	importConvertOnlyFlag bool
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Convert XML exports and upload the records",
	Long: `Converts one or more XML export files and uploads every record to
the collection service. The schema is detected from the root tag unless
--type is given; the destination endpoint is inferred from the schema
unless --endpoint is given.

Baseline imports produce detector-status entries and require --run.
Each file is processed independently: a failure in one file never stops
the others. The exit code is non-zero unless every file fully succeeds.

Use "-" as the file argument to read XML from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importTypeFlag, "type", "t", "",
		"XML schema override (vemcalibom, baseline, domcal, spefit, geometry)")
	importCmd.Flags().StringVarP(&importEndpointFlag, "endpoint", "e", "",
		"destination override (calibration, detector-status, geometry)")
	importCmd.Flags().IntVarP(&importRunFlag, "run", "r", 0,
		"run number (required for baseline imports)")
	importCmd.Flags().BoolVar(&importConvertOnlyFlag, "convert-only", false,
		"convert and print JSON without uploading")
	importCmd.Flags().StringVarP(&convertOutputFlag, "output", "o", "",
		"with --convert-only, write JSON to a file instead of stdout")
	importCmd.Flags().BoolVar(&convertPrettyFlag, "pretty", false,
		"with --convert-only, indent the JSON output")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}
	if !importConvertOnlyFlag {
		if err := requireUpload(); err != nil {
			return err
		}
	}

	opts, err := importOptions(cmd)
	if err != nil {
		return err
	}
	opts.ConvertOnly = importConvertOnlyFlag

	docs, err := readDocuments(cmd, args, opts)
	if err != nil {
		return err
	}

	summary := importService.ImportAll(cmd.Context(), docs, opts)

	if importConvertOnlyFlag {
		if convertOutputFlag != "" {
			return writeConverted(cmd, summary, convertOutputFlag)
		}
		return printConverted(cmd, summary)
	}

	printSummary(cmd, summary)
	if !summary.AllSucceeded() {
		return fmt.Errorf("%d of %d files failed",
			summary.Total-summary.Succeeded, summary.Total)
	}
	return nil
}

// importOptions resolves the endpoint and run-number overrides. The
// --type override travels on each document instead (see readDocuments).
func importOptions(cmd *cobra.Command) (driving.ImportOptions, error) {
	var opts driving.ImportOptions

	if importEndpointFlag != "" {
		endpoint, err := domain.ParseEndpoint(importEndpointFlag)
		if err != nil {
			return opts, err
		}
		opts.Endpoint = endpoint
	}

	if cmd.Flags().Changed("run") {
		run := importRunFlag
		opts.RunNumber = &run
	}

	return opts, nil
}

// readDocuments loads every source named on the command line. Arguments
// carrying glob metacharacters are expanded; "-" reads stdin.
func readDocuments(cmd *cobra.Command, args []string, opts driving.ImportOptions) ([]domain.RawDocument, error) {
	declared := domain.TypeUnknown
	if importTypeFlag != "" {
		parsed, err := domain.ParseRecordType(importTypeFlag)
		if err != nil {
			return nil, err
		}
		declared = parsed
	}

	paths, err := expandPaths(args)
	if err != nil {
		return nil, err
	}

	docs := make([]domain.RawDocument, 0, len(paths))
	for _, path := range paths {
		if path == "-" {
			content, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			docs = append(docs, domain.RawDocument{
				Source:       "<stdin>",
				Content:      string(content),
				DeclaredType: declared,
			})
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		docs = append(docs, domain.RawDocument{
			Source:       path,
			Content:      string(content),
			DeclaredType: declared,
		})
	}
	return docs, nil
}

// expandPaths expands glob patterns in arguments that carry
// metacharacters. A pattern matching nothing is an error; shells that
// already expanded the glob pass plain paths through untouched.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[") {
			paths = append(paths, arg)
			continue
		}

		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

// printSummary renders the per-file outcome lines and the batch tally.
func printSummary(cmd *cobra.Command, summary *domain.ImportSummary) {
	for _, res := range summary.Results {
		switch {
		case res.Success:
			detail := ""
			if res.Upload != nil {
				detail = fmt.Sprintf(" (%d records to %s)",
					res.Upload.Succeeded, res.Endpoint.Path())
			}
			cmd.Printf("%s %s%s\n",
				successStyle.Render("ok"), res.Source, mutedStyle.Render(detail))
		case res.Err != nil:
			cmd.Printf("%s %s: %v\n",
				errorStyle.Render("failed"), res.Source, res.Err)
		default:
			detail := ""
			if res.Upload != nil {
				detail = fmt.Sprintf(": %d of %d records failed",
					res.Upload.Failed, res.Upload.Count)
			}
			cmd.Printf("%s %s%s\n",
				errorStyle.Render("failed"), res.Source, detail)
		}
	}

	line := fmt.Sprintf("%d/%d files succeeded", summary.Succeeded, summary.Total)
	if summary.AllSucceeded() {
		cmd.Println(successStyle.Render(line))
	} else {
		cmd.Println(errorStyle.Render(line))
	}
}
