package service

import (
	"context"

	commonerrors "github.com/AlibekovAA/notes-app/backend/internal/common/errors"
	"github.com/AlibekovAA/notes-app/backend/internal/common/logger"
	noterepo "github.com/AlibekovAA/notes-app/backend/internal/note/repository"
	userrepo "github.com/AlibekovAA/notes-app/backend/internal/user/repository"
)

// ResetService wipes the store between end-to-end test runs.
type ResetService struct {
	notes noterepo.Repository
	users userrepo.Repository
	log   *logger.Logger
}

func NewResetService(notes noterepo.Repository, users userrepo.Repository, log *logger.Logger) *ResetService {
	return &ResetService{notes: notes, users: users, log: log}
}

// Reset deletes notes first so that no note is ever left without its owner.
func (s *ResetService) Reset(ctx context.Context) error {
	if err := s.notes.DeleteAll(ctx); err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "reset_notes_failed"}).Errorf("reset failed: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		s.log.WithFields(ctx, logger.Fields{"action": "reset_users_failed"}).Errorf("reset failed: %v", err)
		return commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{"action": "reset_done"}).Warn("store reset")
	return nil
}
