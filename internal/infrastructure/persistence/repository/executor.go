package repository

import (
	"context"
	"database/sql"

	"github.com/procurehub/procurehub/internal/infrastructure/persistence/sqlite"
)

// executor interface covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// getExecutor returns the transaction carried in the context, or the database.
// The lookup must go through sqlite.TxFromContext so repositories and the
// transaction manager agree on the context key; a private key here would make
// every statement silently autocommit outside the transaction.
func getExecutor(ctx context.Context, db *sql.DB) executor {
	if tx := sqlite.TxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}
