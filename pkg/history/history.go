package history

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat message in a session. Messages are append-only; the
// store never mutates or deletes them.
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists ordered chat messages per session in Postgres.
type Store struct {
	pool      *pgxpool.Pool
	tableName string
}

// isValidTableName validates that a table name contains only safe characters
// to prevent SQL injection attacks
func isValidTableName(name string) bool {
	matched, _ := regexp.MatchString(`^[a-z_][a-zA-Z0-9_]{0,62}$`, name)
	return matched
}

func NewStore(pool *pgxpool.Pool, tableName string) (*Store, error) {
	if !isValidTableName(tableName) {
		return nil, fmt.Errorf("invalid table name: must contain only alphanumeric characters and underscores, start with a letter or underscore, and be 1-63 characters long")
	}
	return &Store{pool: pool, tableName: tableName}, nil
}

// Load returns all messages for a session in insertion order. An unknown
// session is not an error; it returns an empty slice.
func (s *Store) Load(ctx context.Context, sessionID string) ([]Message, error) {
	query := fmt.Sprintf(`
		SELECT id, session_id, role, content, created_at
		FROM %s
		WHERE session_id = $1
		ORDER BY id ASC
	`, pgx.Identifier{s.tableName}.Sanitize())

	rows, err := s.pool.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return msgs, nil
}

// AppendUser appends a user message to the session.
func (s *Store) AppendUser(ctx context.Context, sessionID, content string) error {
	return s.append(ctx, s.pool, sessionID, RoleUser, content)
}

// AppendAI appends an assistant message to the session.
func (s *Store) AppendAI(ctx context.Context, sessionID, content string) error {
	return s.append(ctx, s.pool, sessionID, RoleAssistant, content)
}

// AppendTurn appends the user question and the assistant answer as a single
// transaction. Either both messages land in the session or neither does, so a
// failure mid-turn never leaves a question without its answer.
func (s *Store) AppendTurn(ctx context.Context, sessionID, question, answer string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin turn transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.append(ctx, tx, sessionID, RoleUser, question); err != nil {
		return err
	}
	if err := s.append(ctx, tx, sessionID, RoleAssistant, answer); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit turn: %w", err)
	}
	return nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func (s *Store) append(ctx context.Context, db execer, sessionID, role, content string) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (session_id, role, content) VALUES ($1, $2, $3)`,
		pgx.Identifier{s.tableName}.Sanitize())

	if _, err := db.Exec(ctx, query, sessionID, role, content); err != nil {
		return fmt.Errorf("failed to append %s message: %w", role, err)
	}
	return nil
}
