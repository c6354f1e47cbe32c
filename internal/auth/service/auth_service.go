package service

import (
	"context"
	"errors"

	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/resilience"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/notes-app/backend/internal/user/repository"
)

type AuthService struct {
	repo    userrepo.Repository
	hasher  commoncrypto.PasswordHasher
	tokens  *TokenIssuer
	breaker *resilience.CircuitBreaker
	log     *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	tokens *TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

// WithCircuitBreaker routes user lookups through cb. Lookups run on every
// login and every authenticated request, so they are what hits a failing
// store hardest.
func (s *AuthService) WithCircuitBreaker(cb *resilience.CircuitBreaker) *AuthService {
	s.breaker = cb
	return s
}

func (s *AuthService) findUser(ctx context.Context, find func(context.Context) (userdomain.User, error)) (userdomain.User, error) {
	if s.breaker == nil {
		return find(ctx)
	}
	var user userdomain.User
	err := s.breaker.Call(ctx, func(ctx context.Context) error {
		var err error
		user, err = find(ctx)
		return err
	})
	return user, err
}

// IsExpectedLookupError reports lookup errors that describe the request
// rather than the store.
func IsExpectedLookupError(err error) bool {
	return errors.Is(err, userrepo.ErrUserNotFound) || errors.Is(err, db.ErrMalformedID)
}

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	Token string
	User  userdomain.User
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	user, err := s.findUser(ctx, func(ctx context.Context) (userdomain.User, error) {
		return s.repo.FindByUsername(ctx, input.Username)
	})
	if err != nil {
		if errors.Is(err, commonerrors.ErrStoreUnavailable) {
			incrementLogins("unavailable")
			return LoginResult{}, err
		}
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: user not found")
			incrementLogins("invalid_credentials")
			return LoginResult{}, commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_find_failed",
		}).Errorf("login failed: %v", err)
		incrementLogins("error")
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "login_password_mismatch",
		}).Warn("login failed: invalid password")
		incrementLogins("invalid_credentials")
		return LoginResult{}, commonerrors.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		incrementLogins("error")
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")
	incrementLogins("success")

	return LoginResult{Token: token, User: user}, nil
}

// Authenticate resolves a raw bearer token to the stored user it names.
// An empty token is TokenMissing; a token whose user is gone is UserNotFound.
func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (userdomain.User, error) {
	if rawToken == "" {
		incrementTokenRejections("missing")
		return userdomain.User{}, commonerrors.ErrTokenMissing
	}

	claims, err := s.tokens.ParseToken(rawToken)
	if err != nil {
		domainErr, reason := tokenError(err)
		s.log.WithFields(ctx, logger.Fields{
			"reason": reason,
			"action": "token_rejected",
		}).Warnf("token rejected: %v", err)
		incrementTokenRejections(reason)
		return userdomain.User{}, domainErr
	}

	user, err := s.findUser(ctx, func(ctx context.Context) (userdomain.User, error) {
		return s.repo.FindByID(ctx, userdomain.ID(claims.UserID))
	})
	if err != nil {
		if errors.Is(err, commonerrors.ErrStoreUnavailable) {
			return userdomain.User{}, err
		}
		if IsExpectedLookupError(err) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": claims.UserID,
				"action":  "token_user_missing",
			}).Warn("token rejected: user no longer exists")
			incrementTokenRejections("user_missing")
			return userdomain.User{}, commonerrors.ErrUserNotFound
		}
		return userdomain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	return user, nil
}
