// README: Conversation history model, validation and error sentinels.
package conversation

import (
	"errors"
	"time"
)

// DefaultConversation groups messages saved without a conversation id.
const DefaultConversation = "default"

var (
	ErrBadRequest  = errors.New("incomplete conversation data")
	ErrPersistence = errors.New("conversation store unavailable")
)

// Message is one turn of a conversation.
type Message struct {
	ID             string    `json:"id,omitempty"`
	Role           string    `json:"role" validate:"required"`
	Content        string    `json:"content" validate:"required"`
	UserID         string    `json:"userId" validate:"required"`
	ConversationID string    `json:"conversationId" validate:"required"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}
