package service

import (
	"context"
	"errors"

	"github.com/AlibekovAA/notes-app/backend/internal/common/clock"
	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	"github.com/AlibekovAA/notes-app/backend/internal/common/validation"
	"github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	"github.com/AlibekovAA/notes-app/backend/internal/note/repository"
	"github.com/AlibekovAA/notes-app/backend/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

const (
	updateForbiddenMessage = "a note can be updated only by the user who created it"
	deleteForbiddenMessage = "a note can be deleted only by the user who created it"
)

type NoteService struct {
	repo  repository.Repository
	clock clock.Clock
	log   *logger.Logger
}

func NewNoteService(repo repository.Repository, clock clock.Clock, log *logger.Logger) *NoteService {
	return &NoteService{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

type NoteInput struct {
	Content   string
	Important bool
}

func (s *NoteService) ListNotes(ctx context.Context) ([]domain.WithOwner, error) {
	notes, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}
	observe("list", "success")
	return notes, nil
}

func (s *NoteService) GetNote(ctx context.Context, id domain.ID) (domain.Note, error) {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Note{}, s.fail(ctx, "get", err)
	}
	observe("get", "success")
	return note, nil
}

func (s *NoteService) CreateNote(ctx context.Context, input NoteInput, user userdomain.User) (domain.Note, error) {
	if err := validateContent(input.Content); err != nil {
		observe("create", "invalid")
		return domain.Note{}, err
	}

	note, err := s.repo.Create(ctx, domain.Note{
		Content:   input.Content,
		Important: input.Important,
		Owner:     user.ID,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrOwnerMissing) {
			observe("create", "owner_missing")
			return domain.Note{}, commonerrors.ErrUserNotFound
		}
		return domain.Note{}, s.fail(ctx, "create", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"note_id": string(note.ID),
		"user_id": string(user.ID),
		"action":  "note_created",
	}).Info("note created")
	observe("create", "success")

	return note, nil
}

// UpdateNote replaces content and important of a note owned by user. The
// write itself is conditional on the owner, so a note that changed hands or
// disappeared after the ownership check is reported as not found.
func (s *NoteService) UpdateNote(ctx context.Context, id domain.ID, input NoteInput, user userdomain.User) (domain.Note, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Note{}, s.fail(ctx, "update", err)
	}

	if !existing.OwnedBy(user.ID) {
		s.log.WithFields(ctx, logger.Fields{
			"note_id": string(id),
			"user_id": string(user.ID),
			"action":  "note_update_forbidden",
		}).Warn("note update rejected: not the owner")
		observe("update", "forbidden")
		return domain.Note{}, commonerrors.ErrForbidden.WithMessage(updateForbiddenMessage)
	}

	if err := validateContent(input.Content); err != nil {
		observe("update", "invalid")
		return domain.Note{}, err
	}

	updated, err := s.repo.UpdateOwned(ctx, domain.Note{
		ID:        id,
		Content:   input.Content,
		Important: input.Important,
		Owner:     user.ID,
	})
	if err != nil {
		return domain.Note{}, s.fail(ctx, "update", err)
	}

	observe("update", "success")
	return updated, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id domain.ID, user userdomain.User) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.fail(ctx, "delete", err)
	}

	if !existing.OwnedBy(user.ID) {
		s.log.WithFields(ctx, logger.Fields{
			"note_id": string(id),
			"user_id": string(user.ID),
			"action":  "note_delete_forbidden",
		}).Warn("note delete rejected: not the owner")
		observe("delete", "forbidden")
		return commonerrors.ErrForbidden.WithMessage(deleteForbiddenMessage)
	}

	if err := s.repo.DeleteOwned(ctx, id, user.ID); err != nil {
		return s.fail(ctx, "delete", err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"note_id": string(id),
		"user_id": string(user.ID),
		"action":  "note_deleted",
	}).Info("note deleted")
	observe("delete", "success")

	return nil
}

// fail maps repository errors onto domain errors and records the outcome.
func (s *NoteService) fail(ctx context.Context, operation string, err error) error {
	switch {
	case errors.Is(err, db.ErrMalformedID):
		observe(operation, "malformed_id")
		return commonerrors.ErrMalformedID
	case errors.Is(err, repository.ErrNoteNotFound):
		observe(operation, "not_found")
		return commonerrors.ErrNotFound
	}

	s.log.WithFields(ctx, logger.Fields{
		"operation": operation,
		"action":    "note_store_failed",
	}).Errorf("note %s failed: %v", operation, err)
	observe(operation, "error")
	return commonerrors.ErrInternalError.WithCause(err)
}

func validateContent(content string) error {
	if res := validation.NoteContent(content); !res.Valid {
		return commonerrors.ErrValidation.WithMessage("note validation failed: " + res.String())
	}
	return nil
}

func observe(operation, outcome string) {
	metrics.NoteOperationsTotal.WithLabelValues(operation, outcome).Inc()
}
