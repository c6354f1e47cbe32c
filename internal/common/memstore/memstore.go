// Package memstore keeps users and notes in process memory. The user and
// note repositories share one Store so that owner lookups and derived note
// lists stay consistent under a single lock.
package memstore

import (
	"sync"

	notedomain "github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type Data struct {
	Users []userdomain.User
	Notes []notedomain.Note
}

func (d *Data) UserIndex(id userdomain.ID) int {
	for i, u := range d.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) NoteIndex(id notedomain.ID) int {
	for i, n := range d.Notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

type Store struct {
	mu   sync.RWMutex
	data Data
}

func New() *Store {
	return &Store{}
}

// Read runs fn under the read lock. fn must not retain d.
func (s *Store) Read(fn func(d *Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

func (s *Store) Write(fn func(d *Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.data)
}

func (s *Store) Reset() {
	s.mu.Lock()
	s.data = Data{}
	s.mu.Unlock()
}
