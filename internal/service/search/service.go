// Package search resolves people by name or phone.
//
// Name search runs in two tiers: a case-insensitive prefix match and, only
// when that finds nobody, a case-insensitive substring match. The tiers never
// merge. Phone search prefers the registered user with the number and falls
// back to the contacts saved under it. Email is shown only in person details,
// and only to requesters who have the person in their contacts.
package search

import (
	"context"
	"strconv"
	"strings"

	"caller_id_server/internal/dao/database/repository"
	"caller_id_server/internal/dto/respond"
	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"
)

// Caller facing messages.
const (
	MsgQueryRequired  = "Query parameter is required"
	MsgPhoneRequired  = "Phone number is required"
	MsgUserIDRequired = "User ID is required"
	MsgUserNotFound   = "User not found"
)

// Service implements service.SearchService.
type Service struct {
	repos *repository.Repositories
}

// NewSearchService creates the search service.
func NewSearchService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// SearchByName returns users whose name starts with query, or, when there
// are none, users whose name contains it. Results are ordered by id.
func (s *Service) SearchByName(ctx context.Context, query string) (*respond.NameSearchRespond, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, MsgQueryRequired)
	}

	// Tier 1: prefix match ("Jo" finds "John Doe").
	tier := respond.TierPrefix
	users, err := s.repos.User.SearchByNamePrefix(ctx, query)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}
	// Tier 2 runs only when tier 1 found nothing. The two result sets are
	// never merged, so a prefix hit hides every substring-only hit; the
	// handler reports which tier answered in X-Search-Tier.
	if len(users) == 0 {
		tier = respond.TierSubstring
		users, err = s.repos.User.SearchByNameContains(ctx, query)
		if err != nil {
			return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
		}
	}

	results := make([]respond.SearchResult, 0, len(users))
	for i := range users {
		results = append(results, userResult(&users[i]))
	}
	if err := s.attachReportedCounts(ctx, results); err != nil {
		return nil, err
	}
	return &respond.NameSearchRespond{Tier: tier, Results: results}, nil
}

// SearchByPhone returns the registered user with phone as a single result.
// Without one it returns every contact saved under phone, each carrying the
// spam reports its owner filed.
func (s *Service) SearchByPhone(ctx context.Context, phone string) ([]respond.SearchResult, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, MsgPhoneRequired)
	}

	user, err := s.repos.User.FindByPhoneWithReports(ctx, phone)
	switch {
	case err == nil:
		results := []respond.SearchResult{userResult(user)}
		if err := s.attachReportedCounts(ctx, results); err != nil {
			return nil, err
		}
		return results, nil
	case !errorx.IsNotFound(err):
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}

	contacts, err := s.repos.Contact.FindByPhoneWithOwnerReports(ctx, phone)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}
	results := make([]respond.SearchResult, 0, len(contacts))
	for i := range contacts {
		results = append(results, contactResult(&contacts[i]))
	}
	if err := s.attachReportedCounts(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

// SearchPersonDetails loads user userID. Its email is kept only when
// requesterID owns a contact row pointing at the user with the user's
// current phone; otherwise it is null.
func (s *Service) SearchPersonDetails(ctx context.Context, userID string, requesterID uint) (*respond.PersonDetailsRespond, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.repos.User.FindByID(ctx, id)
	if err != nil {
		if errorx.IsNotFound(err) {
			return nil, errorx.Wrap(err, errorx.CodeNotFound, MsgUserNotFound)
		}
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}

	visible, err := s.repos.Contact.ExistsForRequester(ctx, user.ID, user.Phone, requesterID)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}
	email := user.Email
	if !visible {
		email = nil
	}

	counts, err := s.countReports(ctx, []string{user.Phone})
	if err != nil {
		return nil, err
	}
	return &respond.PersonDetailsRespond{
		ID:            user.ID,
		Name:          user.Name,
		Phone:         user.Phone,
		Email:         email,
		SpamReports:   respond.NewSpamReportList(user.SpamReports),
		ReportedCount: counts[user.Phone],
	}, nil
}

func parseUserID(raw string) (uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errorx.New(errorx.CodeInvalidParam, MsgUserIDRequired)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errorx.New(errorx.CodeInvalidParam, MsgUserIDRequired)
	}
	return uint(id), nil
}

// attachReportedCounts fills ReportedCount with one grouped query.
func (s *Service) attachReportedCounts(ctx context.Context, results []respond.SearchResult) error {
	if len(results) == 0 {
		return nil
	}
	phones := make([]string, 0, len(results))
	seen := make(map[string]struct{}, len(results))
	for _, r := range results {
		if _, ok := seen[r.Phone]; ok {
			continue
		}
		seen[r.Phone] = struct{}{}
		phones = append(phones, r.Phone)
	}

	counts, err := s.countReports(ctx, phones)
	if err != nil {
		return err
	}
	for i := range results {
		results[i].ReportedCount = counts[results[i].Phone]
	}
	return nil
}

func (s *Service) countReports(ctx context.Context, phones []string) (map[string]int64, error) {
	counts, err := s.repos.SpamReport.CountByPhones(ctx, phones)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}
	return counts, nil
}

// userResult builds a result for a registered user. Email is never part of a
// search result; it is only revealed through SearchPersonDetails.
func userResult(u *model.User) respond.SearchResult {
	return respond.SearchResult{
		ID:          u.ID,
		Name:        u.Name,
		Phone:       u.Phone,
		Registered:  true,
		SpamReports: respond.NewSpamReportList(u.SpamReports),
	}
}

// contactResult shows the owner's filed reports; ownerless contacts get none.
func contactResult(c *model.Contact) respond.SearchResult {
	var reports []model.SpamReport
	if c.User != nil {
		reports = c.User.SpamReports
	}
	return respond.SearchResult{
		ID:          c.ID,
		Name:        c.Name,
		Phone:       c.Phone,
		SpamReports: respond.NewSpamReportList(reports),
	}
}
