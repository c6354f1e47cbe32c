package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/notes-app/backend/internal/common/clock"
	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/resilience"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
	userrepo "github.com/AlibekovAA/notes-app/backend/internal/user/repository"
)

const testSecret = "test-secret-that-is-at-least-32-bytes"

var errPasswordMismatch = errors.New("password mismatch")

var storedUser = userdomain.User{
	ID:           "5a3d5da59070081a82a3445b",
	Username:     "ghong1987",
	Name:         "Gil Hong",
	PasswordHash: "hashed_Tlqkf5678#",
}

func setupAuthService(t *testing.T) (*AuthService, *mockUserRepo, *clock.MockClock) {
	t.Helper()
	repo := &mockUserRepo{
		findByUsernameFunc: func(_ context.Context, username string) (userdomain.User, error) {
			if username == storedUser.Username {
				return storedUser, nil
			}
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
		findByIDFunc: func(_ context.Context, id userdomain.ID) (userdomain.User, error) {
			if id == storedUser.ID {
				return storedUser, nil
			}
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
	}
	mockClock := clock.NewMockClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	issuer := NewTokenIssuer(testSecret, time.Hour, mockClock)
	return NewAuthService(repo, &mockHasher{}, issuer, logger.NewNop()), repo, mockClock
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	result, err := svc.Login(context.Background(), LoginInput{Username: "ghong1987", Password: "Tlqkf5678#"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, storedUser.ID, result.User.ID)
	assert.Equal(t, "Gil Hong", result.User.Name)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	testCases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "Tlqkf5678#"},
		{"wrong password", "ghong1987", "wrong"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), LoginInput{Username: tc.username, Password: tc.password})
			assert.ErrorIs(t, err, commonerrors.ErrInvalidCredentials)

			de, ok := commonerrors.AsDomainError(err)
			require.True(t, ok)
			assert.Equal(t, "invalid username or password", de.Message())
		})
	}
}

func TestAuthService_Login_RepositoryFailure(t *testing.T) {
	svc, repo, _ := setupAuthService(t)
	repo.findByUsernameFunc = func(context.Context, string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection refused")
	}

	_, err := svc.Login(context.Background(), LoginInput{Username: "ghong1987", Password: "Tlqkf5678#"})
	assert.ErrorIs(t, err, commonerrors.ErrInternalError)
}

func TestAuthService_Authenticate(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	result, err := svc.Login(context.Background(), LoginInput{Username: "ghong1987", Password: "Tlqkf5678#"})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, storedUser.ID, user.ID)
}

func TestAuthService_Authenticate_Missing(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, commonerrors.ErrTokenMissing)
}

func TestAuthService_Authenticate_Invalid(t *testing.T) {
	svc, _, _ := setupAuthService(t)

	_, err := svc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, commonerrors.ErrTokenInvalid)

	other := NewTokenIssuer("another-secret-another-secret-another", time.Hour, clock.NewRealClock())
	forged, err := other.IssueAccessToken(storedUser)
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), forged)
	assert.ErrorIs(t, err, commonerrors.ErrTokenInvalid)
}

func TestAuthService_Authenticate_Expired(t *testing.T) {
	svc, _, mockClock := setupAuthService(t)

	result, err := svc.Login(context.Background(), LoginInput{Username: "ghong1987", Password: "Tlqkf5678#"})
	require.NoError(t, err)

	mockClock.Advance(time.Hour + time.Second)

	_, err = svc.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, commonerrors.ErrTokenExpired)
}

func TestAuthService_Authenticate_UserGone(t *testing.T) {
	svc, repo, _ := setupAuthService(t)

	result, err := svc.Login(context.Background(), LoginInput{Username: "ghong1987", Password: "Tlqkf5678#"})
	require.NoError(t, err)

	repo.findByIDFunc = func(context.Context, userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUserNotFound
	}
	_, err = svc.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, commonerrors.ErrUserNotFound)

	repo.findByIDFunc = func(context.Context, userdomain.ID) (userdomain.User, error) {
		return userdomain.User{}, db.ErrMalformedID
	}
	_, err = svc.Authenticate(context.Background(), result.Token)
	assert.ErrorIs(t, err, commonerrors.ErrUserNotFound)
}

func TestAuthService_BreakerOpensOnStoreFailures(t *testing.T) {
	svc, repo, mockClock := setupAuthService(t)
	svc.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  2,
		ResetAfter: time.Minute,
		Clock:      mockClock,
		Expected:   IsExpectedLookupError,
	}))

	calls := 0
	repo.findByUsernameFunc = func(context.Context, string) (userdomain.User, error) {
		calls++
		return userdomain.User{}, errors.New("server selection timeout")
	}

	input := LoginInput{Username: "ghong1987", Password: "Tlqkf5678#"}
	for i := 0; i < 2; i++ {
		_, err := svc.Login(context.Background(), input)
		assert.ErrorIs(t, err, commonerrors.ErrInternalError)
	}

	_, err := svc.Login(context.Background(), input)
	assert.ErrorIs(t, err, commonerrors.ErrStoreUnavailable)
	assert.Equal(t, 2, calls)
}

func TestAuthService_BreakerIgnoresUnknownUsers(t *testing.T) {
	svc, _, mockClock := setupAuthService(t)
	svc.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  1,
		ResetAfter: time.Minute,
		Clock:      mockClock,
		Expected:   IsExpectedLookupError,
	}))

	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: "x"})
		assert.ErrorIs(t, err, commonerrors.ErrInvalidCredentials)
	}
}
