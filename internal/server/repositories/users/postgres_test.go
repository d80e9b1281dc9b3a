package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/moviedeck/internal/common"
	"github.com/dmitrijs2005/moviedeck/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "email", "display_name", "password_hash", "federated_provider", "federated_subject", "last_login_at", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	q := `(?s)^INSERT\s+INTO\s+users\s*\(email,\s*display_name,\s*password_hash,\s*federated_provider,\s*federated_subject\).*RETURNING\s+id,\s*created_at$`
	mock.ExpectQuery(q).
		WithArgs("neo@example.com", "Neo", []byte("hash"), nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("u-1", created))

	got, err := repo.Create(context.Background(), &models.User{Email: "neo@example.com", DisplayName: "Neo", PasswordHash: []byte("hash")})
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.User{Email: "neo@example.com"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+users`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{Email: "neo@example.com"})
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	last := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)

	mock.ExpectQuery(`(?s)SELECT\s+id,.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1`).
		WithArgs("trinity@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-2", "trinity@example.com", "Trinity", []byte("h"), "", "", last, last))

	u, err := repo.GetByEmail(context.Background(), "trinity@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Trinity", u.DisplayName)
	require.NotNil(t, u.LastLoginAt)
	assert.Equal(t, last, *u.LastLoginAt)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestGetByFederatedSubject(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`WHERE\s+federated_provider\s*=\s*\$1\s+AND\s+federated_subject\s*=\s*\$2`).
		WithArgs("google", "sub-1").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-3", "morpheus@example.com", "Morpheus", nil, "google", "sub-1", nil, time.Now()))

	u, err := repo.GetByFederatedSubject(context.Background(), "google", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "u-3", u.ID)
	assert.Nil(t, u.LastLoginAt)
	assert.Nil(t, u.PasswordHash)
}

func TestUpdateDisplayName(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+display_name\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-1", "The One").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM\s+users\s+WHERE\s+id\s*=\s*\$1`).
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow("u-1", "neo@example.com", "The One", []byte("h"), "", "", nil, time.Now()))

	u, err := repo.UpdateDisplayName(context.Background(), "u-1", "The One")
	require.NoError(t, err)
	assert.Equal(t, "The One", u.DisplayName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdates_NoRowsIsNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	ctx := context.Background()

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+password_hash`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePassword(ctx, "ghost", []byte("h")), common.ErrNotFound)

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+last_login_at`).WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.TouchLastLogin(ctx, "u-1", time.Now()))

	mock.ExpectExec(`UPDATE\s+users\s+SET\s+federated_provider`).WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, repo.LinkFederated(ctx, "u-1", "google", "sub-1"), common.ErrAlreadyExists)
}
