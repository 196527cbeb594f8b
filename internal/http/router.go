// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"roadtrip/internal/http/handlers"
	"roadtrip/internal/http/middleware"
)

// premiumRoles may use the assistant.
var premiumRoles = []string{"premium", "admin"}

func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logging(deps.Logger), middleware.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	weatherHandler := handlers.NewWeatherHandler(deps.Weather)
	r.GET("/api/weather/:city", weatherHandler.Current)

	ai := r.Group("/api/ai", middleware.Auth(deps.Verifier), middleware.RequireRole(premiumRoles...))

	advisorHandler := handlers.NewAdvisorHandler(deps.Advisor)
	ai.POST("/ask", advisorHandler.Ask)
	ai.POST("/itinerary", advisorHandler.Itinerary)

	conversationHandler := handlers.NewConversationHandler(deps.Conversations)
	ai.POST("/save", conversationHandler.Save)
	ai.GET("/history", conversationHandler.History)
	ai.DELETE("/history", conversationHandler.DeleteHistory)
	ai.GET("/conversation/:id", conversationHandler.Get)
	ai.DELETE("/conversation/:id", conversationHandler.Delete)

	return r
}
