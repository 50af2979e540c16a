package service

import (
	"caller_id_server/internal/dao/database/repository"
	"caller_id_server/internal/infrastructure/mq"
	"caller_id_server/internal/service/auth"
	"caller_id_server/internal/service/search"
	"caller_id_server/internal/service/spam"
)

// Services groups every service; handlers receive it through NewHandlers.
type Services struct {
	Auth   AuthService
	Search SearchService
	Spam   SpamService
}

// NewServices wires the services onto the repositories and the event publisher.
func NewServices(repos *repository.Repositories, publisher mq.SpamEventPublisher) *Services {
	return &Services{
		Auth:   auth.NewAuthService(repos),
		Search: search.NewSearchService(repos),
		Spam:   spam.NewSpamService(repos, publisher),
	}
}
