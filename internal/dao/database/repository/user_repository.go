package repository

import (
	"context"
	"errors"
	"strings"

	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MsgPasswordTooLong is returned when a password exceeds bcrypt's byte limit.
const MsgPasswordTooLong = "Password must be at most 72 bytes"

// likeEscape is the ESCAPE character for LIKE patterns. A backslash would need
// different quoting in MySQL and PostgreSQL; '!' reads the same in both.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeReplacer.Replace(s)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates the gorm user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// withReports preloads filed spam reports in insertion order.
func withReports(db *gorm.DB) *gorm.DB {
	return db.Preload("SpamReports", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("spam_reports.id")
	})
}

// FindByID loads a user and their filed reports.
func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := withReports(r.db.WithContext(ctx)).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user id=%d", id)
	}
	return &user, nil
}

// FindByPhone loads a user by phone.
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "phone = ?", phone).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user phone=%s", phone)
	}
	return &user, nil
}

// FindByPhoneWithReports loads a user by phone with filed reports.
func (r *userRepository) FindByPhoneWithReports(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	if err := withReports(r.db.WithContext(ctx)).First(&user, "phone = ?", phone).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user with reports phone=%s", phone)
	}
	return &user, nil
}

// FindByEmail loads a user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "find user email=%s", email)
	}
	return &user, nil
}

// SearchByNamePrefix matches LOWER(name) LIKE 'query%'.
func (r *userRepository) SearchByNamePrefix(ctx context.Context, query string) ([]model.User, error) {
	return r.searchByName(ctx, escapeLike(strings.ToLower(query))+"%")
}

// SearchByNameContains matches LOWER(name) LIKE '%query%'.
func (r *userRepository) SearchByNameContains(ctx context.Context, query string) ([]model.User, error) {
	return r.searchByName(ctx, "%"+escapeLike(strings.ToLower(query))+"%")
}

func (r *userRepository) searchByName(ctx context.Context, pattern string) ([]model.User, error) {
	var users []model.User
	err := withReports(r.db.WithContext(ctx)).
		Where("LOWER(name) LIKE ? ESCAPE '"+likeEscape+"'", pattern).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, wrapDBErrorf(err, "search users name like %s", pattern)
	}
	return users, nil
}

// Create inserts a user. BeforeSave hashes the password.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		// the BeforeSave hook fails before any SQL runs; that is bad input, not a store failure
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return errorx.Wrap(err, errorx.CodeInvalidParam, MsgPasswordTooLong)
		}
		return wrapDBError(err, "create user")
	}
	return nil
}
