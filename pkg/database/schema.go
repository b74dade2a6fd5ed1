package database

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL applied by EnsureSchema.
func Schema() string {
	return schemaSQL
}

// EnsureSchema creates the tables and indexes when they are missing.
// Every statement is idempotent, so it is safe to run on each start.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	db.logger.Info().Msg("database schema ensured")
	return nil
}
