// Package auth registers users and logs them in.
package auth

import (
	"context"
	"strings"
	"sync"

	"caller_id_server/internal/dao/database/repository"
	"caller_id_server/internal/dto/request"
	"caller_id_server/internal/dto/respond"
	"caller_id_server/internal/model"
	"caller_id_server/pkg/errorx"
	"caller_id_server/pkg/util/jwt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Caller facing messages.
const (
	MsgPhoneInUse         = "Phone number is already in use. Please retry with a new phone number"
	MsgEmailInUse         = "Email is already in use"
	MsgInvalidCredentials = "Invalid phone number or password"
)

// Service implements service.AuthService.
type Service struct {
	repos *repository.Repositories
}

// NewAuthService creates the auth service.
func NewAuthService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// Register checks phone and email availability, then creates the user.
// The unique indexes decide when two registrations race past the checks.
func (s *Service) Register(ctx context.Context, req request.RegisterRequest) (*respond.RegisterRespond, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	email := strings.TrimSpace(req.Email)
	if name == "" || phone == "" || req.Password == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "Name, phone and password are required")
	}
	// binding's max counts characters; bcrypt counts bytes
	if len(req.Password) > model.MaxPasswordBytes {
		return nil, errorx.New(errorx.CodeInvalidParam, repository.MsgPasswordTooLong)
	}

	if _, err := s.repos.User.FindByPhone(ctx, phone); err == nil {
		return nil, errorx.New(errorx.CodeUserExist, MsgPhoneInUse)
	} else if !errorx.IsNotFound(err) {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}

	var emailPtr *string
	if email != "" {
		if _, err := s.repos.User.FindByEmail(ctx, email); err == nil {
			return nil, errorx.New(errorx.CodeUserExist, MsgEmailInUse)
		} else if !errorx.IsNotFound(err) {
			return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
		}
		emailPtr = &email
	}

	user := &model.User{
		Name:        name,
		Phone:       phone,
		Email:       emailPtr,
		RawPassword: req.Password,
	}
	// The lookups above are only a fast path for the common case. Two requests
	// for the same phone can both pass them; the unique index then rejects the
	// second insert and it is reported as the same conflict.
	if err := s.repos.User.Create(ctx, user); err != nil {
		if errorx.IsDuplicate(err) {
			return nil, errorx.Wrap(err, errorx.CodeUserExist, s.conflictMessage(ctx, phone, emailPtr != nil))
		}
		if errorx.GetCode(err) == errorx.CodeInvalidParam {
			return nil, err
		}
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}

	zap.L().Info("user registered", zap.Uint("user_id", user.ID))
	return &respond.RegisterRespond{
		ID:        user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}

// conflictMessage picks the message for a unique violation on create.
// Translated driver errors do not name the index, so the phone is looked up again.
func (s *Service) conflictMessage(ctx context.Context, phone string, hasEmail bool) string {
	if !hasEmail {
		return MsgPhoneInUse
	}
	if _, err := s.repos.User.FindByPhone(ctx, phone); err == nil {
		return MsgPhoneInUse
	}
	return MsgEmailInUse
}

// Login verifies the credentials and returns an access token.
// An unknown phone and a wrong password fail identically.
func (s *Service) Login(ctx context.Context, req request.LoginRequest) (*respond.LoginRespond, error) {
	phone := strings.TrimSpace(req.Phone)
	if phone == "" || req.Password == "" {
		return nil, errorx.New(errorx.CodeInvalidCredentials, MsgInvalidCredentials)
	}

	user, err := s.repos.User.FindByPhone(ctx, phone)
	if err != nil {
		if errorx.IsNotFound(err) {
			// An unknown phone would otherwise return in microseconds while a
			// wrong password costs a full bcrypt round, letting a caller discover
			// which numbers are registered. Comparing against a fixed hash of
			// the same cost makes both paths take the same time.
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(req.Password))
			return nil, errorx.New(errorx.CodeInvalidCredentials, MsgInvalidCredentials)
		}
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}

	if !user.CheckPassword(req.Password) {
		return nil, errorx.New(errorx.CodeInvalidCredentials, MsgInvalidCredentials)
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.Phone)
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeServerBusy, errorx.ErrServerBusy.Msg)
	}
	return &respond.LoginRespond{Token: token}, nil
}

var (
	dummyHashOnce  sync.Once
	dummyHashValue []byte
)

// dummyHash returns a bcrypt hash at PasswordCost, computed once on first use
// so startup does not pay for it.
func dummyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHashValue, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), model.PasswordCost)
	})
	return dummyHashValue
}
