package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent imports",
	Long:  `Lists recent import runs recorded in the local history database, newest first.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", 20,
		"maximum number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("import history not available")
	}

	records, err := historyStore.ListImports(cmd.Context(), historyLimitFlag)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		cmd.Println("No imports recorded yet.")
		return nil
	}

	cmd.Println(headerStyle.Render("WHEN                 STATUS  TYPE        RECORDS  SOURCE"))
	for _, rec := range records {
		status := successStyle.Render("ok    ")
		if !rec.Success {
			status = errorStyle.Render("failed")
		}
		cmd.Printf("%s  %s  %-10s  %7d  %s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			string(rec.Type),
			rec.Records,
			rec.Source,
		)
	}
	return nil
}
