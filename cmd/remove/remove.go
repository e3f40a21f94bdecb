// Package remove implements the catalog deletion command.
package remove

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mirri-tools/strainsync/internal/biolomics"
	"github.com/mirri-tools/strainsync/internal/conf"
	"github.com/mirri-tools/strainsync/internal/parser"
	"github.com/mirri-tools/strainsync/internal/upload"
)

// Command returns the delete subcommand. It removes the workbook's strains
// from the catalog, looked up by accession number.
func Command(settings *conf.Settings, credentials *conf.Credentials) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <workbook.xlsx>",
		Short: "Delete the workbook's strains from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.ValidateSettings(settings); err != nil {
				return err
			}
			content, log, err := parser.ParseFile(args[0], false)
			if err != nil {
				return err
			}
			if content == nil || !log.IsEmpty() {
				if err := log.Render(os.Stdout); err != nil {
					return err
				}
				return fmt.Errorf("validation failed with %d errors", log.Count())
			}

			client, err := biolomics.NewClientFromSettings(settings, credentials)
			if err != nil {
				return err
			}
			deleted, err := upload.DeleteStrains(cmd.Context(), client, content.Strains)
			fmt.Fprintf(cmd.OutOrStdout(), "%d strains deleted\n", deleted)
			return err
		},
	}
}
