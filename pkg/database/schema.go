package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// InitChatSchema creates the chat history table and its indexes. The serial id
// doubles as the ordering key so the two messages of a turn always read back
// in insertion order.
func (db *PostgresDB) InitChatSchema(ctx context.Context, tableName string) error {
	if !isValidTableName(tableName) {
		return fmt.Errorf("invalid table name: %s", tableName)
	}

	msgQuery := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			session_id TEXT NOT NULL,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`, pgx.Identifier{tableName}.Sanitize())
	if _, err := db.Pool.Exec(ctx, msgQuery); err != nil {
		return fmt.Errorf("failed to create %s table: %w", tableName, err)
	}

	idxQuery := fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s(session_id, id)",
		pgx.Identifier{"idx_" + tableName + "_session_id"}.Sanitize(),
		pgx.Identifier{tableName}.Sanitize())
	if _, err := db.Pool.Exec(ctx, idxQuery); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", tableName, err)
	}

	return nil
}
