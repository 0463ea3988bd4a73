package commands

import (
	"github.com/spf13/cobra"

	"github.com/dreamops/dreamops/internal/actions"
	"github.com/dreamops/dreamops/internal/models"
	"github.com/dreamops/dreamops/internal/output"
)

// NewRunsCmd creates the runs command.
func NewRunsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent demo runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			var runs []models.DemoRun
			if err := withDB(func(db *DB) error {
				r, err := actions.DemoRunList(db, limit)
				if err != nil {
					return err
				}
				runs = r
				return nil
			}); err != nil {
				return err
			}

			type resp struct {
				Count int              `json:"count"`
				Runs  []models.DemoRun `json:"runs"`
			}
			if runs == nil {
				runs = []models.DemoRun{}
			}
			return output.PrintSuccess(resp{Count: len(runs), Runs: runs})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Max runs to return")

	return cmd
}
