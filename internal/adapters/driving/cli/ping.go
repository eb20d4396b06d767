package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nivalis-labs/gcdctl/internal/adapters/driven/rest"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check connectivity to the collection service",
	RunE:  runPing,
}

func init() {
	rootCmd.AddCommand(pingCmd)
}

func runPing(cmd *cobra.Command, _ []string) error {
	if err := requireUpload(); err != nil {
		return err
	}

	if err := apiClient.Validate(cmd.Context()); err != nil {
		if rest.IsUnauthorized(err) {
			return fmt.Errorf("authentication failed; run 'gcdctl config set-token' (%w)", err)
		}
		return fmt.Errorf("collection service unreachable: %w", err)
	}

	cmd.Println(successStyle.Render("Collection service is reachable."))
	return nil
}
