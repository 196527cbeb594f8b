// README: API gateway; wires module services into the HTTP router.
package http

import (
	"net/http"

	"go.uber.org/zap"

	"roadtrip/internal/advisor"
	"roadtrip/internal/infra"
	"roadtrip/internal/modules/conversation"
	"roadtrip/internal/weather"
)

type ServerDeps struct {
	Advisor       *advisor.Service
	Conversations *conversation.Service
	Weather       *weather.Service
	Verifier      infra.TokenVerifier
	Logger        *zap.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	return NewRouter(s.deps)
}
