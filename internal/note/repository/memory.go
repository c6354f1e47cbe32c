package repository

import (
	"context"
	"fmt"

	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	"github.com/AlibekovAA/notes-app/backend/internal/common/memstore"
	"github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type MemoryRepository struct {
	store       *memstore.Store
	idGenerator commoncrypto.IDGenerator
}

func NewMemoryRepository(store *memstore.Store, idGenerator commoncrypto.IDGenerator) *MemoryRepository {
	return &MemoryRepository{store: store, idGenerator: idGenerator}
}

func (r *MemoryRepository) Create(_ context.Context, note domain.Note) (domain.Note, error) {
	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.Note{}, fmt.Errorf("failed to generate note id: %w", err)
	}
	note.ID = domain.ID(id)

	err = r.store.Write(func(d *memstore.Data) error {
		if d.UserIndex(note.Owner) < 0 {
			return ErrOwnerMissing
		}
		d.Notes = append(d.Notes, note)
		return nil
	})
	if err != nil {
		return domain.Note{}, err
	}
	return note, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id domain.ID) (domain.Note, error) {
	if !r.idGenerator.Valid(string(id)) {
		return domain.Note{}, db.ErrMalformedID
	}

	var (
		note  domain.Note
		found bool
	)
	r.store.Read(func(d *memstore.Data) {
		if i := d.NoteIndex(id); i >= 0 {
			note, found = d.Notes[i], true
		}
	})
	if !found {
		return domain.Note{}, ErrNoteNotFound
	}
	return note, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]domain.WithOwner, error) {
	notes := []domain.WithOwner{}
	r.store.Read(func(d *memstore.Data) {
		for _, n := range d.Notes {
			item := domain.WithOwner{Note: n, OwnerSummary: userdomain.Summary{ID: n.Owner}}
			if i := d.UserIndex(n.Owner); i >= 0 {
				item.OwnerSummary = d.Users[i].Summary()
			}
			notes = append(notes, item)
		}
	})
	return notes, nil
}

func (r *MemoryRepository) UpdateOwned(_ context.Context, note domain.Note) (domain.Note, error) {
	if !r.idGenerator.Valid(string(note.ID)) {
		return domain.Note{}, db.ErrMalformedID
	}

	var updated domain.Note
	err := r.store.Write(func(d *memstore.Data) error {
		i := d.NoteIndex(note.ID)
		if i < 0 || !d.Notes[i].OwnedBy(note.Owner) {
			return ErrNoteNotFound
		}
		d.Notes[i].Content = note.Content
		d.Notes[i].Important = note.Important
		updated = d.Notes[i]
		return nil
	})
	if err != nil {
		return domain.Note{}, err
	}
	return updated, nil
}

func (r *MemoryRepository) DeleteOwned(_ context.Context, id domain.ID, owner userdomain.ID) error {
	if !r.idGenerator.Valid(string(id)) {
		return db.ErrMalformedID
	}

	return r.store.Write(func(d *memstore.Data) error {
		i := d.NoteIndex(id)
		if i < 0 || !d.Notes[i].OwnedBy(owner) {
			return ErrNoteNotFound
		}
		d.Notes = append(d.Notes[:i], d.Notes[i+1:]...)
		return nil
	})
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	var count int64
	r.store.Read(func(d *memstore.Data) {
		count = int64(len(d.Notes))
	})
	return count, nil
}

func (r *MemoryRepository) DeleteAll(_ context.Context) error {
	return r.store.Write(func(d *memstore.Data) error {
		d.Notes = nil
		return nil
	})
}
