package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dreamops/dreamops/internal/actions"
	"github.com/dreamops/dreamops/internal/models"
	"github.com/dreamops/dreamops/internal/output"
)

// NewAPIKeyCmd creates the apikey command with subcommands.
func NewAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "Manage model-provider API keys",
		Long: "Store, list, promote, and remove provider API keys. Keys are hashed " +
			"before storage; only masked forms are ever displayed. Supported providers: " +
			strings.Join(actions.KnownProviders(), ", ") + ".",
	}

	cmd.AddCommand(newAPIKeyAddCmd())
	cmd.AddCommand(newAPIKeyListCmd())
	cmd.AddCommand(newAPIKeyPromoteCmd())
	cmd.AddCommand(newAPIKeyRemoveCmd())

	return cmd
}

func newAPIKeyAddCmd() *cobra.Command {
	var (
		provider string
		key      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Store a new provider API key",
		RunE: func(cmd *cobra.Command, args []string) error {
			var created *models.APIKey
			if err := withDB(func(db *DB) error {
				k, err := actions.APIKeyAdd(db, provider, key)
				if err != nil {
					return err
				}
				created = k
				return nil
			}); err != nil {
				return err
			}
			return output.PrintSuccess(created)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider name (required)")
	cmd.Flags().StringVar(&key, "key", "", "Plaintext API key (required; stored hashed)")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func newAPIKeyListCmd() *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored keys (masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var keys []models.APIKey
			if err := withDB(func(db *DB) error {
				k, err := actions.APIKeyList(db, provider)
				if err != nil {
					return err
				}
				keys = k
				return nil
			}); err != nil {
				return err
			}

			type resp struct {
				Provider string          `json:"provider,omitempty"`
				Count    int             `json:"count"`
				Keys     []models.APIKey `json:"keys"`
			}
			if keys == nil {
				keys = []models.APIKey{}
			}
			return output.PrintSuccess(resp{Provider: provider, Count: len(keys), Keys: keys})
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Filter by provider")

	return cmd
}

func newAPIKeyPromoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <key-id>",
		Short: "Make a stored key its provider's primary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var promoted *models.APIKey
			if err := withDB(func(db *DB) error {
				k, err := actions.APIKeyPromote(db, args[0])
				if err != nil {
					return err
				}
				promoted = k
				return nil
			}); err != nil {
				return err
			}
			return output.PrintSuccess(promoted)
		},
	}
}

func newAPIKeyRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <key-id>",
		Short: "Delete a stored key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := withDB(func(db *DB) error {
				return actions.APIKeyRemove(db, args[0])
			}); err != nil {
				return err
			}

			type resp struct {
				ID      string `json:"id"`
				Removed bool   `json:"removed"`
			}
			return output.PrintSuccess(resp{ID: args[0], Removed: true})
		},
	}
}
