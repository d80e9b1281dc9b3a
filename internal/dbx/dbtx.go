// Package dbx provides the database abstractions shared by repositories:
// DBTX (satisfied by *sql.DB and *sql.Tx), WithTx, and the Store pair used
// by services that need both single statements and transactions.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by repositories.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction, runs fn with it, and commits on success.
// It rolls back when fn returns an error or panics; panics are rethrown.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return repoManager.Movies(tx).UpsertMany(ctx, docs)
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}

// Store hands out the handle repositories are bound to.
type Store interface {
	// DB returns the handle for statements that run outside a transaction.
	DB() DBTX
	// WithTx runs fn inside one transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

// SQLStore is the database/sql backed Store.
type SQLStore struct {
	db   *sql.DB
	opts *sql.TxOptions
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) DB() DBTX { return s.db }

func (s *SQLStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return WithTx(ctx, s.db, s.opts, fn)
}

// NopStore serves repositories that ignore the handle, such as in-memory
// ones. WithTx simply calls fn with a nil handle.
type NopStore struct{}

func (NopStore) DB() DBTX { return nil }

func (NopStore) WithTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	return fn(ctx, nil)
}
