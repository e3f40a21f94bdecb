// Package dedup implements the duplicate-removal command.
package dedup

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mirri-tools/strainsync/internal/biolomics"
	"github.com/mirri-tools/strainsync/internal/conf"
	"github.com/mirri-tools/strainsync/internal/upload"
)

// Command returns the delete-duplicate subcommand. For each given accession
// number it keeps the last catalog record and deletes the rest.
func Command(settings *conf.Settings, credentials *conf.Credentials) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-duplicate <accession>...",
		Short: "Delete all but the last catalog record sharing an accession number",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.ValidateSettings(settings); err != nil {
				return err
			}
			client, err := biolomics.NewClientFromSettings(settings, credentials)
			if err != nil {
				return err
			}
			total := 0
			for _, accession := range args {
				deleted, err := upload.DeleteDuplicates(cmd.Context(), client, accession)
				total += deleted
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %d duplicates deleted\n", accession, deleted)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d records deleted\n", total)
			return nil
		},
	}
}
