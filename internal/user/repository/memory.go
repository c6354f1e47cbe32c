package repository

import (
	"context"
	"fmt"

	commoncrypto "github.com/AlibekovAA/notes-app/backend/internal/common/crypto"
	"github.com/AlibekovAA/notes-app/backend/internal/common/db"
	"github.com/AlibekovAA/notes-app/backend/internal/common/memstore"
	"github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type MemoryRepository struct {
	store       *memstore.Store
	idGenerator commoncrypto.IDGenerator
}

func NewMemoryRepository(store *memstore.Store, idGenerator commoncrypto.IDGenerator) *MemoryRepository {
	return &MemoryRepository{store: store, idGenerator: idGenerator}
}

func (r *MemoryRepository) Create(_ context.Context, user domain.User) (domain.User, error) {
	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}
	user.ID = domain.ID(id)

	err = r.store.Write(func(d *memstore.Data) error {
		for _, existing := range d.Users {
			if existing.Username == user.Username {
				return ErrUsernameAlreadyExists
			}
		}
		d.Users = append(d.Users, user)
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (domain.User, error) {
	var (
		user  domain.User
		found bool
	)
	r.store.Read(func(d *memstore.Data) {
		for _, u := range d.Users {
			if u.Username == username {
				user, found = u, true
				return
			}
		}
	})
	if !found {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id domain.ID) (domain.User, error) {
	if !r.idGenerator.Valid(string(id)) {
		return domain.User{}, db.ErrMalformedID
	}

	var (
		user  domain.User
		found bool
	)
	r.store.Read(func(d *memstore.Data) {
		if i := d.UserIndex(id); i >= 0 {
			user, found = d.Users[i], true
		}
	})
	if !found {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]domain.Profile, error) {
	profiles := []domain.Profile{}
	r.store.Read(func(d *memstore.Data) {
		for _, u := range d.Users {
			p := domain.Profile{User: u, Notes: []domain.NoteRef{}}
			for _, n := range d.Notes {
				if n.Owner == u.ID {
					p.Notes = append(p.Notes, domain.NoteRef{ID: string(n.ID), Content: n.Content, Important: n.Important})
				}
			}
			profiles = append(profiles, p)
		}
	})
	return profiles, nil
}

func (r *MemoryRepository) Count(_ context.Context) (int64, error) {
	var count int64
	r.store.Read(func(d *memstore.Data) {
		count = int64(len(d.Users))
	})
	return count, nil
}

// DeleteAll also drops notes, matching the cascade on the relational schema.
func (r *MemoryRepository) DeleteAll(_ context.Context) error {
	return r.store.Write(func(d *memstore.Data) error {
		d.Users = nil
		d.Notes = nil
		return nil
	})
}
