package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nivalis-labs/gcdctl/internal/core/domain"
	"github.com/nivalis-labs/gcdctl/internal/core/ports/driving"
)

var (
	convertTypeFlag   string
	convertOutputFlag string
	convertPrettyFlag bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>...",
	Short: "Convert XML exports to JSON without uploading",
	Long: `Converts one or more XML export files to their normalised JSON form
and prints the result to stdout. Nothing is uploaded and no API
configuration is needed.

The schema is detected from the root tag unless --type is given.
Use "-" as the file argument to read XML from stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertTypeFlag, "type", "t", "",
		"XML schema override (vemcalibom, baseline, domcal, spefit, geometry)")
	convertCmd.Flags().StringVarP(&convertOutputFlag, "output", "o", "",
		"write JSON to a file instead of stdout")
	convertCmd.Flags().BoolVar(&convertPrettyFlag, "pretty", false,
		"indent the JSON output")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	// Reuse the import reader; convert is import with upload disabled.
	importTypeFlag = convertTypeFlag
	defer func() { importTypeFlag = "" }()

	docs, err := readDocuments(cmd, args, driving.ImportOptions{})
	if err != nil {
		return err
	}

	summary := importService.ImportAll(cmd.Context(), docs,
		driving.ImportOptions{ConvertOnly: true})

	if convertOutputFlag != "" {
		return writeConverted(cmd, summary, convertOutputFlag)
	}
	return printConverted(cmd, summary)
}

// printConverted renders each converted document as JSON, reporting
// conversion failures per source without stopping the rest.
func printConverted(cmd *cobra.Command, summary *domain.ImportSummary) error {
	var failed int
	for _, res := range summary.Results {
		if res.Err != nil {
			failed++
			cmd.PrintErrf("%s %s: %v\n",
				errorStyle.Render("failed"), res.Source, res.Err)
			continue
		}

		data, err := marshalResult(res.Converted)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", res.Source, err)
		}
		cmd.Println(string(data))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, summary.Total)
	}
	return nil
}

// writeConverted writes the converted JSON to a single output file.
// Multiple documents are written as a JSON array.
func writeConverted(cmd *cobra.Command, summary *domain.ImportSummary, path string) error {
	var failed int
	converted := make([]*domain.ConversionResult, 0, len(summary.Results))
	for _, res := range summary.Results {
		if res.Err != nil {
			failed++
			cmd.PrintErrf("%s %s: %v\n",
				errorStyle.Render("failed"), res.Source, res.Err)
			continue
		}
		converted = append(converted, res.Converted)
	}

	var data []byte
	var err error
	if len(converted) == 1 {
		data, err = marshalResult(converted[0])
	} else if convertPrettyFlag {
		data, err = json.MarshalIndent(converted, "", "  ")
	} else {
		data, err = json.Marshal(converted)
	}
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	cmd.Printf("Wrote %d converted document(s) to %s\n", len(converted), path)

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failed, summary.Total)
	}
	return nil
}

func marshalResult(res *domain.ConversionResult) ([]byte, error) {
	if convertPrettyFlag {
		return json.MarshalIndent(res, "", "  ")
	}
	return json.Marshal(res)
}
