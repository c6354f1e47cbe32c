package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/notes-app/backend/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/validation"
	"github.com/AlibekovAA/notes-app/backend/internal/observability/metrics"
	"github.com/AlibekovAA/notes-app/backend/internal/user/domain"
	"github.com/AlibekovAA/notes-app/backend/internal/user/repository"
)

const passwordPolicyMessage = "The password did not meet the condition!"

type UserService struct {
	repo   repository.Repository
	hasher commoncrypto.PasswordHasher
	clock  clock.Clock
	log    *logger.Logger
}

func NewUserService(repo repository.Repository, hasher commoncrypto.PasswordHasher, clock clock.Clock, log *logger.Logger) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		clock:  clock,
		log:    log,
	}
}

type SignupInput struct {
	Username string
	Name     string
	Password string
}

// CreateUser checks the password policy before anything is hashed, then the
// username shape, then stores the user. The returned user carries the id the
// store assigned.
func (s *UserService) CreateUser(ctx context.Context, input SignupInput) (domain.User, error) {
	if res := validation.Password(input.Password); !res.Valid {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"reason":   res.Reason,
			"action":   "signup_password_policy",
		}).Warn("signup rejected: password policy")
		return domain.User{}, commonerrors.ErrValidation.WithMessage(passwordPolicyMessage)
	}

	if res := validation.Username(input.Username); !res.Valid {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_validation_failed",
		}).Warnf("signup rejected: %s", res)
		return domain.User{}, commonerrors.ErrValidation.WithMessage("user validation failed: " + res.String())
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return domain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user, err := s.repo.Create(ctx, domain.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "signup_username_exists",
			}).Warn("signup rejected: username taken")
			return domain.User{}, commonerrors.ErrUsernameTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return domain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.UsersCreatedTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "signup_success",
	}).Info("user created")

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "users_list_failed"}).Errorf("list users failed: %v", err)
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}
	return profiles, nil
}
