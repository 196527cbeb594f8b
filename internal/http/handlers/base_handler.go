// README: Base handler utilities (JSON helpers, error and result mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadtrip/internal/advisor"
	"roadtrip/internal/http/middleware"
	"roadtrip/internal/modules/conversation"
)

const serverErrorMessage = "Erreur serveur."

type errorResponse struct {
	Error string `json:"error"`
}

// assistantReply is the chat-shaped body returned for every advisor answer.
type assistantReply struct {
	Role           string                   `json:"role"`
	Content        string                   `json:"content"`
	UserID         string                   `json:"userId,omitempty"`
	ConversationID string                   `json:"conversationId,omitempty"`
	Error          bool                     `json:"error,omitempty"`
	ErrorType      string                   `json:"errorType,omitempty"`
	Details        *advisor.ValidationError `json:"details,omitempty"`
}

type technicalReply struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeResult maps every advisor result variant onto its HTTP shape.
// Refusals are conversational answers and use 200; only technical failures are 500.
func writeResult(c *gin.Context, res *advisor.Result, userID, conversationID string) {
	switch res.Kind {
	case advisor.KindItinerary, advisor.KindAdvice:
		writeJSON(c, http.StatusOK, assistantReply{
			Role:           "assistant",
			Content:        FormatResult(res),
			UserID:         userID,
			ConversationID: conversationID,
		})
	case advisor.KindValidation:
		v := res.Validation
		errorType := string(advisor.ValidationInvalidTopic)
		if v.Kind == advisor.ValidationDurationExceeded {
			errorType = "validation_duration"
		}
		writeJSON(c, http.StatusOK, assistantReply{
			Role:           "assistant",
			Content:        v.Message,
			UserID:         userID,
			ConversationID: conversationID,
			Error:          true,
			ErrorType:      errorType,
			Details:        v,
		})
	case advisor.KindTechnical:
		te := res.Technical
		middleware.Logger(c).Error("advisor technical error", zap.String("kind", string(te.Kind)), zap.Error(te))
		writeJSON(c, http.StatusInternalServerError, technicalReply{Type: "error", Message: te.Message, Error: te.Detail})
	default:
		middleware.Logger(c).Error("unknown advisor result kind", zap.String("kind", string(res.Kind)))
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeConversationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, conversation.ErrBadRequest):
		writeError(c, http.StatusBadRequest, "Données de conversation incomplètes.")
	default:
		middleware.Logger(c).Error("conversation store failed", zap.Error(err))
		writeError(c, http.StatusInternalServerError, serverErrorMessage)
	}
}
