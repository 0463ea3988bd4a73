package commands

import (
	"github.com/spf13/cobra"

	"github.com/dreamops/dreamops/internal/actions"
	"github.com/dreamops/dreamops/internal/models"
	"github.com/dreamops/dreamops/internal/output"
)

// NewIntegrationCmd creates the integration command with subcommands.
func NewIntegrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "integration",
		Short: "Manage the integration catalog",
	}

	cmd.AddCommand(newIntegrationListCmd())
	cmd.AddCommand(newIntegrationEnableCmd())
	cmd.AddCommand(newIntegrationDisableCmd())

	return cmd
}

func newIntegrationListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the integration catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []models.Integration
			if err := withDB(func(db *DB) error {
				l, err := actions.IntegrationList(db)
				if err != nil {
					return err
				}
				list = l
				return nil
			}); err != nil {
				return err
			}

			type resp struct {
				Count        int                  `json:"count"`
				Integrations []models.Integration `json:"integrations"`
			}
			if list == nil {
				list = []models.Integration{}
			}
			return output.PrintSuccess(resp{Count: len(list), Integrations: list})
		},
	}
}

func newIntegrationEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable <name>",
		Short: "Enable an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updated *models.Integration
			if err := withDB(func(db *DB) error {
				in, err := actions.IntegrationEnable(db, args[0])
				if err != nil {
					return err
				}
				updated = in
				return nil
			}); err != nil {
				return err
			}
			return output.PrintSuccess(updated)
		},
	}
}

func newIntegrationDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable <name>",
		Short: "Disable an integration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var updated *models.Integration
			if err := withDB(func(db *DB) error {
				in, err := actions.IntegrationDisable(db, args[0])
				if err != nil {
					return err
				}
				updated = in
				return nil
			}); err != nil {
				return err
			}
			return output.PrintSuccess(updated)
		},
	}
}
