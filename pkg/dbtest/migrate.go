package dbtest

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
)

// MigrateFromFile executes the SQL files over a database connection in the
// given order. Each file runs as a single statement batch.
func MigrateFromFile(ctx context.Context, db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		fileBytes, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("os.ReadFile: %w", err)
		}

		if _, err = db.ExecContext(ctx, string(fileBytes)); err != nil {
			return fmt.Errorf("db.ExecContext(%s): %w", fileName, err)
		}
	}

	return nil
}
