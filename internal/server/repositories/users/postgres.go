package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/dbx"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
)

const selectUser = `SELECT id, COALESCE(email, ''), display_name, password_hash,
       COALESCE(federated_provider, ''), COALESCE(federated_subject, ''),
       last_login_at, created_at
  FROM users`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `INSERT INTO users (email, display_name, password_hash, federated_provider, federated_subject)
         VALUES ($1, $2, $3, $4, $5)
      RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		nullable(user.Email), user.DisplayName, user.PasswordHash,
		nullable(user.FederatedProvider), nullable(user.FederatedSubject),
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, args ...any) (*models.User, error) {
	u := &models.User{}
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, selectUser+" "+where, args...).Scan(
		&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash,
		&u.FederatedProvider, &u.FederatedSubject, &lastLogin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return u, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, "WHERE id = $1", id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "WHERE email = $1", email)
}

func (r *PostgresRepository) GetByFederatedSubject(ctx context.Context, provider, subject string) (*models.User, error) {
	return r.getOne(ctx, "WHERE federated_provider = $1 AND federated_subject = $2", provider, subject)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) LinkFederated(ctx context.Context, userID, provider, subject string) error {
	return r.exec(ctx,
		`UPDATE users SET federated_provider = $2, federated_subject = $3 WHERE id = $1`,
		userID, provider, subject)
}

func (r *PostgresRepository) UpdateDisplayName(ctx context.Context, userID, displayName string) (*models.User, error) {
	if err := r.exec(ctx, `UPDATE users SET display_name = $2 WHERE id = $1`, userID, displayName); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, userID)
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, userID string, hash []byte) error {
	return r.exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, userID, hash)
}

func (r *PostgresRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.exec(ctx, `UPDATE users SET last_login_at = $2 WHERE id = $1`, userID, at)
}
