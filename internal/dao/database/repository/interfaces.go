// Package repository defines the data access interfaces and their gorm implementations.
// Services depend on the interfaces; every method takes the request context so
// queries inherit its deadline.
package repository

import (
	"context"
	"errors"
	"strings"

	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"

	"gorm.io/gorm"
)

// ==================== error wrapping ====================

// wrapDBError maps store errors onto business codes:
//   - ErrRecordNotFound -> CodeNotFound
//   - unique violation  -> CodeDuplicate
//   - anything else     -> CodeDBError
func wrapDBError(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrap(err, errorx.CodeNotFound, msg)
	}
	if isDuplicateKey(err) {
		return errorx.Wrap(err, errorx.CodeDuplicate, msg)
	}
	return errorx.Wrap(err, errorx.CodeDBError, msg)
}

// wrapDBErrorf is wrapDBError with a formatted message.
func wrapDBErrorf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errorx.Wrapf(err, errorx.CodeNotFound, format, args...)
	}
	if isDuplicateKey(err) {
		return errorx.Wrapf(err, errorx.CodeDuplicate, format, args...)
	}
	return errorx.Wrapf(err, errorx.CodeDBError, format, args...)
}

// isDuplicateKey reports whether err is a unique constraint violation.
//
// Opened with TranslateError, the postgres, mysql and sqlite dialectors turn
// a violation into gorm.ErrDuplicatedKey. A *gorm.DB opened without it, or a
// driver gorm has no translator for, still surfaces the raw driver error, so
// the message is matched as a fallback:
//   - postgres: "duplicate key value violates unique constraint"
//   - mysql:    "Error 1062: Duplicate entry"
//   - sqlite:   "UNIQUE constraint failed"
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}

// ==================== repository interfaces ====================

// UserRepository reads and writes registered users.
type UserRepository interface {
	// FindByID loads a user with the spam reports they filed.
	FindByID(ctx context.Context, id uint) (*model.User, error)
	// FindByPhone loads a user by exact phone, without relations.
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	// FindByPhoneWithReports loads a user by exact phone with filed spam reports.
	FindByPhoneWithReports(ctx context.Context, phone string) (*model.User, error)
	// FindByEmail loads a user by exact email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// SearchByNamePrefix matches names starting with query, case-insensitive.
	SearchByNamePrefix(ctx context.Context, query string) ([]model.User, error)
	// SearchByNameContains matches names containing query, case-insensitive.
	SearchByNameContains(ctx context.Context, query string) ([]model.User, error)
	// Create inserts a user; a taken phone or email yields CodeDuplicate.
	Create(ctx context.Context, user *model.User) error
}

// ContactRepository reads and writes address book entries.
type ContactRepository interface {
	// FindByPhoneWithOwnerReports returns every contact with the exact phone,
	// each with its owner and the owner's filed spam reports.
	FindByPhoneWithOwnerReports(ctx context.Context, phone string) ([]model.Contact, error)
	// ExistsForRequester reports whether a contact with user_id = targetID and
	// phone = phone exists that is also owned by requesterID.
	ExistsForRequester(ctx context.Context, targetID uint, phone string, requesterID uint) (bool, error)
	// CreateMany inserts contacts in batches.
	CreateMany(ctx context.Context, contacts []model.Contact) error
}

// SpamReportRepository reads and writes spam reports.
type SpamReportRepository interface {
	// Create inserts one report. Repeated calls insert repeated rows.
	Create(ctx context.Context, report *model.SpamReport) error
	// CreateMany inserts reports in batches.
	CreateMany(ctx context.Context, reports []model.SpamReport) error
	// CountByPhones returns the number of reports filed against each phone.
	// Phones without reports are absent from the map.
	CountByPhones(ctx context.Context, phones []string) (map[string]int64, error)
}

// ==================== aggregate ====================

// Repositories groups every repository so services receive one dependency.
type Repositories struct {
	db         *gorm.DB
	User       UserRepository
	Contact    ContactRepository
	SpamReport SpamReportRepository
}

// NewRepositories builds all repositories on top of db.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		User:       NewUserRepository(db),
		Contact:    NewContactRepository(db),
		SpamReport: NewSpamReportRepository(db),
	}
}

// Transaction runs fn with repositories bound to one transaction.
// Returning an error from fn rolls everything back.
func (r *Repositories) Transaction(ctx context.Context, fn func(txRepos *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
