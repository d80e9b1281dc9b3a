package favorites

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/moviedeck/internal/dbx"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, userID string) (models.Favorites, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT fields FROM user_favorites WHERE user_id = $1`, userID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	fav := models.Favorites{}
	if err := json.Unmarshal(raw, &fav); err != nil {
		return nil, fmt.Errorf("decode favorites of %s: %w", userID, err)
	}
	return fav, nil
}

func (r *PostgresRepository) Set(ctx context.Context, userID, movieID string) error {
	query := `INSERT INTO user_favorites (user_id, fields)
         VALUES ($1, jsonb_build_object($2::text, true))
    ON CONFLICT (user_id) DO UPDATE
            SET fields = user_favorites.fields || EXCLUDED.fields,
                updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, userID, movieID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Unset(ctx context.Context, userID, movieID string) error {
	query := `INSERT INTO user_favorites (user_id, fields)
         VALUES ($1, '{}'::jsonb)
    ON CONFLICT (user_id) DO UPDATE
            SET fields = user_favorites.fields - $2::text,
                updated_at = now()`

	if _, err := r.db.ExecContext(ctx, query, userID, movieID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
