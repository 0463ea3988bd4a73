package commands

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamops/dreamops/internal/app"
	"github.com/dreamops/dreamops/internal/output"
)

// Execute runs the CLI application.
func Execute(version string) error {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	root := &cobra.Command{
		Use:           "dreamops",
		Short:         "Incident response demo engine (scripted walkthroughs, api keys, integrations)",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				type resp struct {
					Version string `json:"version"`
				}
				return output.PrintSuccess(resp{Version: version})
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.EnsureConfigDir(); err != nil {
				return err
			}

			// Wire --db-path into app-level resolver.
			if dbPath, err := cmd.Flags().GetString("db-path"); err == nil && dbPath != "" {
				app.SetDBPathOverride(dbPath)
			}

			return nil
		},
	}

	root.PersistentFlags().String("db-path", "", "Override database path")
	root.Flags().BoolP("version", "v", false, "version for dreamops")

	root.AddCommand(NewDemoCmd())
	root.AddCommand(NewAPIKeyCmd())
	root.AddCommand(NewIntegrationCmd())
	root.AddCommand(NewRunsCmd())
	root.AddCommand(NewBackendCmd())
	root.AddCommand(NewUpgradeCmd())
	// Added last so --schema sees every registered command.
	root.AddCommand(NewStatusCmd(root))

	err := root.Execute()
	if err != nil {
		var pe printedError
		if !errors.As(err, &pe) {
			slog.Error("command failed", "error", err.Error())
		}
	}
	return err
}
