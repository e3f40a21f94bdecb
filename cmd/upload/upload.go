// Package upload implements the workbook upload command.
package upload

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mirri-tools/strainsync/internal/biolomics"
	"github.com/mirri-tools/strainsync/internal/conf"
	"github.com/mirri-tools/strainsync/internal/parser"
	uploader "github.com/mirri-tools/strainsync/internal/upload"
)

// Command returns the upload subcommand.
func Command(settings *conf.Settings, credentials *conf.Credentials) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <workbook.xlsx>",
		Short: "Validate a workbook and push its content to the catalog",
		Long: "Validates the workbook, then synchronizes growth media and strains " +
			"with the catalog. Existing records are left alone unless --force_update is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd, settings, credentials, args[0])
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&settings.Upload.ForceUpdate, "force_update", viper.GetBool("upload.forceupdate"), "Diff existing records and update the changed ones")
	flags.IntVar(&settings.Upload.Skip, "skip", viper.GetInt("upload.skip"), "Skip the first N strains, resuming a previous run")
	return cmd
}

func runUpload(cmd *cobra.Command, settings *conf.Settings, credentials *conf.Credentials, path string) error {
	if err := conf.ValidateSettings(settings); err != nil {
		return err
	}

	content, log, err := parser.ParseFile(path, false)
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

	u := uploader.New(client)
	u.ForceUpdate = settings.Upload.ForceUpdate
	u.Skip = settings.Upload.Skip

	report, err := u.Upload(cmd.Context(), content)
	if report != nil {
		fmt.Fprint(cmd.OutOrStdout(), report.String())
	}
	return err
}
