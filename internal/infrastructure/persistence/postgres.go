package persistence

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"

	"github.com/jmoiron/sqlx"

	"nycschools/internal/domain"
	"nycschools/pkg/errcodes"
)

//go:embed migrations/001_favorite_slots.sql
var favoriteSlotsSchema string

// PostgresStore keeps each slot as one row of favorite_slots.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the favorite_slots table when missing.
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, favoriteSlotsSchema); err != nil {
		return domain.WrapError(err, errcodes.StorageError, "failed to create favorite_slots")
	}
	return nil
}

func (r *PostgresStore) Get(ctx context.Context, key string) ([]string, bool, error) {
	query := `SELECT key, ids, updated_at FROM favorite_slots WHERE key = $1`

	var schema slotSchema
	if err := r.db.GetContext(ctx, &schema, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, domain.WrapError(err, errcodes.StorageError, "failed to get favorite slot")
	}

	ids, err := schema.toDomain()
	if err != nil {
		return nil, false, domain.WrapError(err, errcodes.StorageError, "failed to decode favorite slot")
	}

	return ids, true, nil
}

// Set upserts the slot row.
func (r *PostgresStore) Set(ctx context.Context, key string, ids []string) error {
	schema, err := newSlotSchema(key, ids)
	if err != nil {
		return domain.WrapError(err, errcodes.StorageError, "failed to encode favorite slot")
	}

	query := `
		INSERT INTO favorite_slots (key, ids, updated_at)
		VALUES (:key, :ids, :updated_at)
		ON CONFLICT (key) DO UPDATE SET
			ids = EXCLUDED.ids,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, schema); err != nil {
		return domain.WrapError(err, errcodes.StorageError, "failed to save favorite slot")
	}

	return nil
}
