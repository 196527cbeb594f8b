// README: Weather lookup handler.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadtrip/internal/http/middleware"
	"roadtrip/internal/weather"
)

type WeatherHandler struct {
	weather *weather.Service
}

func NewWeatherHandler(svc *weather.Service) *WeatherHandler {
	return &WeatherHandler{weather: svc}
}

// Current handles GET /api/weather/:city. ?fresh=true bypasses the fresh cache.
func (h *WeatherHandler) Current(c *gin.Context) {
	report, err := h.weather.Lookup(c.Request.Context(), c.Param("city"), c.Query("fresh") == "true")
	switch {
	case errors.Is(err, weather.ErrEmptyCity):
		writeJSON(c, http.StatusBadRequest, technicalReply{Type: "error", Message: "Le paramètre 'city' est requis"})
	case err != nil:
		middleware.Logger(c).Error("weather lookup failed", zap.Error(err))
		writeJSON(c, http.StatusInternalServerError, technicalReply{
			Type:    "error",
			Message: "Erreur lors de la récupération des données météo",
			Error:   err.Error(),
		})
	default:
		writeJSON(c, http.StatusOK, report)
	}
}
