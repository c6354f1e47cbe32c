package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/notes-app/backend/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/memstore"
	"github.com/AlibekovAA/notes-app/backend/internal/user/domain"
	"github.com/AlibekovAA/notes-app/backend/internal/user/repository"
)

type countingHasher struct {
	commoncrypto.BcryptHasher
	calls int
}

func (h *countingHasher) Hash(password string) (string, error) {
	h.calls++
	return h.BcryptHasher.Hash(password)
}

func setupUserService(t *testing.T) (*UserService, *repository.MemoryRepository, *countingHasher) {
	t.Helper()
	repo := repository.NewMemoryRepository(memstore.New(), commoncrypto.NewUUIDGenerator())
	hasher := &countingHasher{BcryptHasher: commoncrypto.BcryptHasher{Cost: bcrypt.MinCost}}
	svc := NewUserService(repo, hasher, clock.NewMockClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)), logger.NewNop())
	return svc, repo, hasher
}

func TestUserService_CreateUser(t *testing.T) {
	svc, _, _ := setupUserService(t)

	user, err := svc.CreateUser(context.Background(), SignupInput{Username: "ghong1987", Name: "Gil Hong", Password: "Tlqkf5678#"})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "ghong1987", user.Username)
	assert.NotEqual(t, "Tlqkf5678#", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Tlqkf5678#")))
}

func TestUserService_CreateUser_WeakPasswordNotHashed(t *testing.T) {
	svc, repo, hasher := setupUserService(t)

	for _, password := range []string{"", "Ab1#", "alllowercase1#", "NoDigits#", "NoSymbol123", "Space 123#A"} {
		_, err := svc.CreateUser(context.Background(), SignupInput{Username: "ghong1987", Password: password})
		require.ErrorIs(t, err, commonerrors.ErrValidation, password)
		de, _ := commonerrors.AsDomainError(err)
		assert.Equal(t, passwordPolicyMessage, de.Message())
	}

	assert.Zero(t, hasher.calls)
	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserService_CreateUser_InvalidUsername(t *testing.T) {
	svc, _, hasher := setupUserService(t)

	_, err := svc.CreateUser(context.Background(), SignupInput{Username: "ab", Password: "Tlqkf5678#"})
	require.ErrorIs(t, err, commonerrors.ErrValidation)
	de, _ := commonerrors.AsDomainError(err)
	assert.Equal(t, "user validation failed: username: must be between 3 and 20 characters long", de.Message())
	assert.Zero(t, hasher.calls)
}

func TestUserService_CreateUser_Duplicate(t *testing.T) {
	svc, repo, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, SignupInput{Username: "ghong1987", Password: "Tlqkf5678#"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, SignupInput{Username: "ghong1987", Password: "Another12#"})
	require.ErrorIs(t, err, commonerrors.ErrUsernameTaken)
	de, _ := commonerrors.AsDomainError(err)
	assert.Equal(t, "expected `username` to be unique", de.Message())
	assert.Equal(t, 400, de.HTTPStatus())

	count, _ := repo.Count(ctx)
	assert.Equal(t, int64(1), count)
}

func TestUserService_ListUsers(t *testing.T) {
	svc, _, _ := setupUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, SignupInput{Username: "alice", Password: "Tlqkf5678#"})
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, SignupInput{Username: "bob", Password: "Tlqkf5678#"})
	require.NoError(t, err)

	profiles, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "alice", profiles[0].Username)
	assert.Equal(t, "bob", profiles[1].Username)
}

type failingRepo struct {
	repository.Repository
}

func (failingRepo) List(context.Context) ([]domain.Profile, error) {
	return nil, errors.New("connection refused")
}

func TestUserService_ListUsers_StoreFailure(t *testing.T) {
	svc := NewUserService(failingRepo{}, &commoncrypto.BcryptHasher{}, clock.NewRealClock(), logger.NewNop())

	_, err := svc.ListUsers(context.Background())
	assert.ErrorIs(t, err, commonerrors.ErrInternalError)
}
