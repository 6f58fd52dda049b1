// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ksismad/tallycsv/internal/common"
	"github.com/ksismad/tallycsv/internal/config"
	"github.com/ksismad/tallycsv/internal/logging"
)

// CommonFlags represents the flags shared by the subcommands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// SharedFlags holds the persistent flag values.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "tallycsv",
		Short: "Convert arbitrary bank transaction exports into the fixed statement schema.",
		Long: `tallycsv normalizes a bank's delimited transaction export into canonical
transaction records and renders them as the fixed-schema statement expected
by the downstream banking importer. Column layout is described by a mapping
descriptor, detected by an external service or supplied as a JSON file.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to tallycsv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg

			Log = config.ConfigureLogging(cfg)
			logging.SetLogger(logging.NewLogrusAdapterFromLogger(Log))

			common.SetDelimiter(cfg.Delimiter())
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input export file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file path")
}
