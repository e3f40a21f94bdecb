package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mirri-tools/strainsync/cmd/dedup"
	"github.com/mirri-tools/strainsync/cmd/remove"
	"github.com/mirri-tools/strainsync/cmd/upload"
	"github.com/mirri-tools/strainsync/cmd/validate"
	"github.com/mirri-tools/strainsync/internal/conf"
	"github.com/mirri-tools/strainsync/internal/logging"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "strainsync",
		Short: "MIRRI strain workbook validation and catalog synchronization",
	}

	credentials := &conf.Credentials{}
	setupFlags(rootCmd, settings, credentials)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if settings.Debug {
			logging.Init(slog.LevelDebug)
		}
	}

	rootCmd.AddCommand(
		validate.Command(settings),
		upload.Command(settings, credentials),
		remove.Command(settings, credentials),
		dedup.Command(settings, credentials),
	)
	return rootCmd
}

// setupFlags defines the flags shared by every subcommand. Credentials fall
// back to the environment so they stay out of shell history.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings, credentials *conf.Credentials) {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	flags.BoolVarP(&settings.Debug, "verbose", "v", viper.GetBool("debug"), "Alias for --debug")
	flags.BoolVar(&settings.Catalog.Production, "prod", viper.GetBool("catalog.production"), "Target the production catalog instead of the test one")
	flags.StringVar(&settings.Catalog.WebsiteID, "website_id", viper.GetString("catalog.websiteid"), "Catalog tenant id sent with every request")
	flags.StringVar(&settings.Upload.SpecVersion, "spec_version", viper.GetString("upload.specversion"), "Workbook schema version")

	flags.StringVar(&credentials.Username, "ws_user", os.Getenv("STRAINSYNC_WS_USER"), "Catalog username")
	flags.StringVar(&credentials.Password, "ws_password", os.Getenv("STRAINSYNC_WS_PASSWORD"), "Catalog password")
	flags.StringVar(&credentials.ClientID, "client_id", os.Getenv("STRAINSYNC_CLIENT_ID"), "OAuth client id")
	flags.StringVar(&credentials.ClientSecret, "client_secret", os.Getenv("STRAINSYNC_CLIENT_SECRET"), "OAuth client secret")
}
