package repository

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:embed schema.sql
var schema string

type postgresGateway struct {
	db *sqlx.DB // nil when q is a transaction
	q  sqlx.ExtContext
}

// NewPostgresGateway returns a LedgerGateway backed by db.
func NewPostgresGateway(db *sqlx.DB) LedgerGateway {
	return &postgresGateway{db: db, q: db}
}

// Migrate creates the pledge and payment tables if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *postgresGateway) WithinTx(ctx context.Context, fn func(tx LedgerGateway) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&postgresGateway{q: tx}); err != nil {
		return err
	}

	return tx.Commit()
}
