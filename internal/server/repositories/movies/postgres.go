package movies

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/dbx"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

const selectMovie = `SELECT id, title, description, image_url, release_year, rating,
       COALESCE(created_by::text, ''), created_at
  FROM movies`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*models.Movie, error) {
	m := &models.Movie{}
	err := s.Scan(&m.ID, &m.Title, &m.Description, &m.ImageURL, &m.ReleaseYear, &m.Rating, &m.CreatedBy, &m.CreatedAt)
	return m, err
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Movie, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []*models.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Movie, error) {
	return r.query(ctx, selectMovie+" ORDER BY title, id")
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx, selectMovie+" WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) GetByIDs(ctx context.Context, ids []string) ([]*models.Movie, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	return r.query(ctx, selectMovie+" WHERE id IN ("+strings.Join(placeholders, ", ")+") ORDER BY title, id", args...)
}

// escapeLike neutralises LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *PostgresRepository) SearchTitlePrefix(ctx context.Context, prefix string) ([]*models.Movie, error) {
	p := escapeLike(prefix)
	return r.query(ctx,
		selectMovie+` WHERE lower(title) LIKE $1 ESCAPE '\' OR lower(title) LIKE $2 ESCAPE '\' ORDER BY title, id`,
		p+"%", "% "+p+"%")
}

func (r *PostgresRepository) Create(ctx context.Context, m *models.Movie) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO movies (id, title, description, image_url, release_year, rating, created_by)
         VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid)
      RETURNING created_at`,
		m.ID, m.Title, m.Description, m.ImageURL, m.ReleaseYear, m.Rating, m.CreatedBy,
	).Scan(&m.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpsertMany(ctx context.Context, ms []*models.Movie) error {
	query := `INSERT INTO movies (id, title, description, image_url, release_year, rating)
         VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (id) DO UPDATE
            SET title = EXCLUDED.title,
                description = EXCLUDED.description,
                image_url = EXCLUDED.image_url,
                release_year = EXCLUDED.release_year,
                rating = EXCLUDED.rating`

	for _, m := range ms {
		if _, err := r.db.ExecContext(ctx, query, m.ID, m.Title, m.Description, m.ImageURL, m.ReleaseYear, m.Rating); err != nil {
			return fmt.Errorf("upsert movie %s: %w", m.ID, err)
		}
	}
	return nil
}
