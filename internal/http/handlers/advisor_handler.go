// README: Advisor handlers (roadtrip questions and point-to-point itineraries).
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"roadtrip/internal/advisor"
	"roadtrip/internal/http/middleware"
)

type AdvisorHandler struct {
	advisor  *advisor.Service
	validate *validator.Validate
}

func NewAdvisorHandler(svc *advisor.Service) *AdvisorHandler {
	return &AdvisorHandler{advisor: svc, validate: validator.New()}
}

// askReq accepts the question as either "prompt" or "query".
type askReq struct {
	advisor.Request
	Prompt         string `json:"prompt"`
	UserID         string `json:"userId"`
	ConversationID string `json:"conversationId"`
}

// Ask handles POST /api/ai/ask.
func (h *AdvisorHandler) Ask(c *gin.Context) {
	var req askReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if p := strings.TrimSpace(req.Prompt); p != "" {
		req.Query = p
	}
	req.Query = strings.TrimSpace(req.Query)
	if req.Query == "" {
		writeError(c, http.StatusBadRequest, "Le champ 'prompt' est requis.")
		return
	}
	if err := h.validate.Struct(req.Request); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request")
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = middleware.CallerUID(c)
	}
	res := h.advisor.Advise(c.Request.Context(), req.Request)
	writeResult(c, res, userID, req.ConversationID)
}

type itineraryReq struct {
	advisor.ItineraryRequest
	ConversationID string `json:"conversationId"`
}

// Itinerary handles POST /api/ai/itinerary.
func (h *AdvisorHandler) Itinerary(c *gin.Context) {
	var req itineraryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validate.Struct(req.ItineraryRequest); err != nil {
		writeError(c, http.StatusBadRequest, "Les points de départ et d'arrivée sont requis.")
		return
	}

	res, err := h.advisor.PlanDetailedItinerary(c.Request.Context(), req.ItineraryRequest)
	if errors.Is(err, advisor.ErrMissingEndpoints) {
		writeError(c, http.StatusBadRequest, "Les points de départ et d'arrivée sont requis.")
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, serverErrorMessage)
		return
	}
	writeResult(c, res, middleware.CallerUID(c), req.ConversationID)
}
