// Package handler holds the gin handlers. Each handler binds input, calls
// one service and writes the envelope.
package handler

import (
	"caller_id_server/internal/service"
)

// Handlers groups every handler for the router.
type Handlers struct {
	Auth   *AuthHandler
	Search *SearchHandler
	Spam   *SpamHandler
	Health *HealthHandler
}

// NewHandlers injects the services into the handlers.
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:   NewAuthHandler(svc.Auth),
		Search: NewSearchHandler(svc.Search),
		Spam:   NewSpamHandler(svc.Spam),
		Health: NewHealthHandler(),
	}
}
