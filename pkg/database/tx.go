package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

// Transaction runs fn inside a transaction. The transaction travels in the
// context passed to fn so repository calls made with that context join it.
// A nested call reuses the outer transaction.
//
//	err := db.Transaction(ctx, func(ctx context.Context) error {
//	    if _, err := employees.Get(ctx, id); err != nil {
//	        return err
//	    }
//	    return entries.CreateMany(ctx, rows)
//	})
func (db *DB) Transaction(ctx context.Context, fn func(context.Context) error) error {
	if getTx(ctx) != nil {
		return fn(ctx)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Q returns the transaction stored in ctx, or the pool when there is none.
func (db *DB) Q(ctx context.Context) Querier {
	if tx := getTx(ctx); tx != nil {
		return tx
	}
	return db.DB
}

// getTx extracts transaction from context if present
func getTx(ctx context.Context) *sqlx.Tx {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return nil
}
