package conversation

import "context"

// Store persists conversation messages.
type Store interface {
	Create(ctx context.Context, m Message) (Message, error)
	ListByUser(ctx context.Context, userID string) ([]Message, error)
	ListByConversation(ctx context.Context, userID, conversationID string) ([]Message, error)
	DeleteByUser(ctx context.Context, userID string) error
	DeleteConversation(ctx context.Context, userID, conversationID string) error
}
