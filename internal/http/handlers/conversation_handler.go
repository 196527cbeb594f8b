// README: Conversation history handlers (save, list and delete messages).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadtrip/internal/http/middleware"
	"roadtrip/internal/modules/conversation"
)

type ConversationHandler struct {
	conversations *conversation.Service
}

func NewConversationHandler(svc *conversation.Service) *ConversationHandler {
	return &ConversationHandler{conversations: svc}
}

type saveReq struct {
	Role           string `json:"role"`
	Content        string `json:"content"`
	ConversationID string `json:"conversationId"`
}

// Save handles POST /api/ai/save. The owner is always the caller.
func (h *ConversationHandler) Save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	msg, err := h.conversations.Save(c.Request.Context(), conversation.Message{
		Role:           req.Role,
		Content:        req.Content,
		UserID:         middleware.CallerUID(c),
		ConversationID: req.ConversationID,
	})
	if err != nil {
		writeConversationError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"success": true, "message": msg})
}

// History handles GET /api/ai/history.
func (h *ConversationHandler) History(c *gin.Context) {
	grouped, err := h.conversations.History(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeConversationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, grouped)
}

// DeleteHistory handles DELETE /api/ai/history.
func (h *ConversationHandler) DeleteHistory(c *gin.Context) {
	uid := middleware.CallerUID(c)
	if err := h.conversations.DeleteHistory(c.Request.Context(), uid); err != nil {
		writeConversationError(c, err)
		return
	}
	middleware.Logger(c).Info("history deleted", zap.String("uid", uid))
	writeJSON(c, http.StatusOK, gin.H{"success": true})
}

// Get handles GET /api/ai/conversation/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	msgs, err := h.conversations.Conversation(c.Request.Context(), middleware.CallerUID(c), c.Param("id"))
	if err != nil {
		writeConversationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, msgs)
}

// Delete handles DELETE /api/ai/conversation/:id.
func (h *ConversationHandler) Delete(c *gin.Context) {
	uid, id := middleware.CallerUID(c), c.Param("id")
	if err := h.conversations.DeleteConversation(c.Request.Context(), uid, id); err != nil {
		writeConversationError(c, err)
		return
	}
	middleware.Logger(c).Info("conversation deleted", zap.String("uid", uid), zap.String("conversation_id", id))
	writeJSON(c, http.StatusOK, gin.H{"success": true, "message": "Conversation supprimée avec succès."})
}
