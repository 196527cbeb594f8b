package conversation

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service orchestrates conversation history on top of a Store.
type Service struct {
	store    Store
	validate *validator.Validate
}

// NewService creates a Service backed by the given Store.
func NewService(store Store) *Service {
	return &Service{store: store, validate: validator.New()}
}

// Save stores one message. Role, content, user and conversation are required.
func (s *Service) Save(ctx context.Context, m Message) (Message, error) {
	m.Role = strings.TrimSpace(m.Role)
	m.ConversationID = strings.TrimSpace(m.ConversationID)
	if err := s.validate.Struct(m); err != nil {
		return Message{}, ErrBadRequest
	}
	return s.store.Create(ctx, m)
}

// History returns every message of userID grouped by conversation id.
func (s *Service) History(ctx context.Context, userID string) (map[string][]Message, error) {
	msgs, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]Message)
	for _, m := range msgs {
		id := m.ConversationID
		if id == "" {
			id = DefaultConversation
		}
		grouped[id] = append(grouped[id], m)
	}
	return grouped, nil
}

func (s *Service) DeleteHistory(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrBadRequest
	}
	return s.store.DeleteByUser(ctx, userID)
}

func (s *Service) Conversation(ctx context.Context, userID, conversationID string) ([]Message, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, ErrBadRequest
	}
	msgs, err := s.store.ListByConversation(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return msgs, nil
}

func (s *Service) DeleteConversation(ctx context.Context, userID, conversationID string) error {
	if userID == "" || strings.TrimSpace(conversationID) == "" {
		return ErrBadRequest
	}
	return s.store.DeleteConversation(ctx, userID, conversationID)
}
