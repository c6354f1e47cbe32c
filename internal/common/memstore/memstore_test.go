package memstore

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notedomain "github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

func TestStore_WriteThenRead(t *testing.T) {
	s := New()

	err := s.Write(func(d *Data) error {
		d.Users = append(d.Users, userdomain.User{ID: "u1", Username: "ghong1987"})
		d.Notes = append(d.Notes, notedomain.Note{ID: "n1", Content: "hi there", Owner: "u1"})
		return nil
	})
	require.NoError(t, err)

	s.Read(func(d *Data) {
		assert.Equal(t, 0, d.UserIndex("u1"))
		assert.Equal(t, -1, d.UserIndex("u2"))
		assert.Equal(t, 0, d.NoteIndex("n1"))
		assert.Equal(t, -1, d.NoteIndex("n2"))
	})
}

func TestStore_WritePropagatesError(t *testing.T) {
	s := New()
	boom := errors.New("boom")
	assert.ErrorIs(t, s.Write(func(*Data) error { return boom }), boom)
}

func TestStore_Reset(t *testing.T) {
	s := New()
	_ = s.Write(func(d *Data) error {
		d.Users = append(d.Users, userdomain.User{ID: "u1"})
		return nil
	})
	s.Reset()
	s.Read(func(d *Data) {
		assert.Empty(t, d.Users)
		assert.Empty(t, d.Notes)
	})
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Write(func(d *Data) error {
				d.Notes = append(d.Notes, notedomain.Note{Content: "concurrent"})
				return nil
			})
		}()
	}
	wg.Wait()

	s.Read(func(d *Data) {
		assert.Len(t, d.Notes, 50)
	})
}
