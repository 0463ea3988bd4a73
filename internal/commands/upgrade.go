package commands

import (
	"github.com/spf13/cobra"

	"github.com/dreamops/dreamops/internal/app"
	"github.com/dreamops/dreamops/internal/output"
	"github.com/dreamops/dreamops/internal/store"
)

// NewUpgradeCmd creates the upgrade command. Migrations also run on every
// DB open; this command exists to upgrade explicitly and report versions.
func NewUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, err := app.GetDBPath()
			if err != nil {
				return cmdErr(err)
			}

			db, err := store.InitDBWithPath(dbPath)
			if err != nil {
				return cmdErr(err)
			}
			defer func() { _ = db.Close() }()

			if err := store.MigrateDB(db, dbPath); err != nil {
				return cmdErr(err)
			}

			current, latest, err := store.SchemaVersion(db)
			if err != nil {
				return cmdErr(err)
			}

			type resp struct {
				Path     string `json:"path"`
				Current  int64  `json:"current"`
				Latest   int64  `json:"latest"`
				UpToDate bool   `json:"up_to_date"`
			}
			return output.PrintSuccess(resp{
				Path:     dbPath,
				Current:  current,
				Latest:   latest,
				UpToDate: current == latest,
			})
		},
	}
}
