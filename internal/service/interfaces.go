// Package service defines the business interfaces the handlers call.
// Implementations live in the sub packages and are wired by NewServices.
package service

import (
	"context"

	"caller_id_server/internal/dto/request"
	"caller_id_server/internal/dto/respond"
)

// AuthService registers users and issues access tokens.
type AuthService interface {
	// Register creates a user. A taken phone or email is a conflict.
	Register(ctx context.Context, req request.RegisterRequest) (*respond.RegisterRespond, error)
	// Login checks the phone/password pair and returns a signed token.
	Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error)
}

// SearchService looks people up by name or phone.
type SearchService interface {
	// SearchByName tries a prefix match first and falls back to a substring
	// match only when the prefix tier is empty.
	SearchByName(ctx context.Context, query string) (*respond.NameSearchRespond, error)
	// SearchByPhone returns the registered user with that phone, or else
	// every contact saved under it.
	SearchByPhone(ctx context.Context, phone string) ([]respond.SearchResult, error)
	// SearchPersonDetails returns a user with email visible only to requesters
	// who hold that user as a contact.
	SearchPersonDetails(ctx context.Context, userID string, requesterID uint) (*respond.PersonDetailsRespond, error)
}

// SpamService records spam reports.
type SpamService interface {
	// ReportSpam stores a new report on every call.
	ReportSpam(ctx context.Context, phone string, reporterID uint) (*respond.SpamReportRespond, error)
}
