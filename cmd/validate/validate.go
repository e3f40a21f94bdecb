// Package validate implements the workbook validation command.
package validate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mirri-tools/strainsync/internal/conf"
	"github.com/mirri-tools/strainsync/internal/validation"
)

// Command returns the validate subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <workbook.xlsx>",
		Short: "Validate a MIRRI workbook without touching the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.ValidateSettings(settings); err != nil {
				return err
			}
			log := validation.ValidateFile(args[0])
			if log.IsEmpty() {
				fmt.Fprintln(cmd.OutOrStdout(), "workbook is valid")
				return nil
			}
			if err := log.Render(os.Stdout); err != nil {
				return err
			}
			return fmt.Errorf("validation failed with %d errors", log.Count())
		},
	}
}
