package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps messages in the Postgres messages table.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore returns a Store backed by the given connection pool.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Create(ctx context.Context, m Message) (Message, error) {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	_, err := s.db.Exec(ctx, `
		INSERT INTO messages (id, role, content, user_id, conversation_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, m.ID, m.Role, m.Content, m.UserID, m.ConversationID, m.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("%w: insert message: %v", ErrPersistence, err)
	}
	return m, nil
}

func (s *PGStore) ListByUser(ctx context.Context, userID string) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, role, content, user_id, conversation_id, created_at
		FROM messages WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: list messages: %v", ErrPersistence, err)
	}
	return collect(rows)
}

func (s *PGStore) ListByConversation(ctx context.Context, userID, conversationID string) ([]Message, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, role, content, user_id, conversation_id, created_at
		FROM messages WHERE user_id = $1 AND conversation_id = $2
		ORDER BY created_at, id
	`, userID, conversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: list conversation: %v", ErrPersistence, err)
	}
	return collect(rows)
}

func (s *PGStore) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM messages WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("%w: delete messages: %v", ErrPersistence, err)
	}
	return nil
}

func (s *PGStore) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM messages WHERE user_id = $1 AND conversation_id = $2`, userID, conversationID); err != nil {
		return fmt.Errorf("%w: delete conversation: %v", ErrPersistence, err)
	}
	return nil
}

func collect(rows pgx.Rows) ([]Message, error) {
	defer rows.Close()
	out := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Role, &m.Content, &m.UserID, &m.ConversationID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan message: %v", ErrPersistence, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate messages: %v", ErrPersistence, err)
	}
	return out, nil
}
