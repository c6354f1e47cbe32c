package repository

import (
	"context"
	"errors"

	"github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

// Repository assigns the id on Create. UpdateOwned and DeleteOwned only
// touch a note whose id and owner both match; otherwise they report
// ErrNoteNotFound and leave the store unchanged.
type Repository interface {
	Create(ctx context.Context, note domain.Note) (domain.Note, error)
	FindByID(ctx context.Context, id domain.ID) (domain.Note, error)
	List(ctx context.Context) ([]domain.WithOwner, error)
	UpdateOwned(ctx context.Context, note domain.Note) (domain.Note, error)
	DeleteOwned(ctx context.Context, id domain.ID, owner userdomain.ID) error
	Count(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) error
}

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrOwnerMissing = errors.New("note owner does not exist")
)
