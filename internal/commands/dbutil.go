package commands

import (
	"database/sql"
	"log/slog"

	"github.com/dreamops/dreamops/internal/app"
	"github.com/dreamops/dreamops/internal/output"
	"github.com/dreamops/dreamops/internal/store"
)

// DB is an alias so command code doesn't need to import database/sql.
type DB = sql.DB

type printedError struct {
	err error
}

func (e printedError) Error() string {
	// Intentionally hide the original error: the JSON error response is the output.
	return "error already printed"
}

func openDB() (*DB, func(), error) {
	dbPath, err := app.GetDBPath()
	if err != nil {
		return nil, nil, err
	}

	db, err := store.InitDBWithPath(dbPath)
	if err != nil {
		return nil, nil, err
	}

	return db, func() { _ = db.Close() }, nil
}

func withDB(fn func(db *DB) error) error {
	db, closeDB, err := openDB()
	if err != nil {
		return cmdErr(err)
	}
	defer closeDB()

	if err := fn(db); err != nil {
		return cmdErr(err)
	}
	return nil
}

// cmdErr prints the JSON error envelope and logs it, then returns a marker
// error so root doesn't log twice.
func cmdErr(err error) error {
	if err == nil {
		return nil
	}
	_ = output.PrintError(err)
	slog.Error("command error", "error", err.Error())
	return printedError{err: err}
}
