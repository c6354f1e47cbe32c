package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

// Repository assigns the id on Create. FindByID reports db.ErrMalformedID for
// ids the backend cannot represent.
type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
	List(ctx context.Context) ([]domain.Profile, error)
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)
