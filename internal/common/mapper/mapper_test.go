package mapper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	notedomain "github.com/AlibekovAA/notes-app/backend/internal/note/domain"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

func TestProfilesToDTO_OmitsHash(t *testing.T) {
	profiles := []userdomain.Profile{{
		User: userdomain.User{ID: "u1", Username: "ghong1987", Name: "Gil Hong", PasswordHash: "$2a$10$secret"},
		Notes: []userdomain.NoteRef{
			{ID: "n1", Content: "hi there", Important: true},
		},
	}, {
		User: userdomain.User{ID: "u2", Username: "other", PasswordHash: "$2a$10$other"},
	}}

	raw, err := json.Marshal(ProfilesToDTO(profiles))
	require.NoError(t, err)

	assert.JSONEq(t, `[
		{"id":"u1","username":"ghong1987","name":"Gil Hong","notes":[{"id":"n1","content":"hi there","important":true}]},
		{"id":"u2","username":"other","name":"","notes":[]}
	]`, string(raw))
	assert.NotContains(t, string(raw), "secret")
	assert.NotContains(t, string(raw), "passwordHash")
}

func TestNoteToDTO(t *testing.T) {
	raw, err := json.Marshal(NoteToDTO(notedomain.Note{ID: "n1", Content: "hi there", Owner: "u1"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"n1","content":"hi there","important":false,"user":"u1"}`, string(raw))
}

func TestNotesWithOwnerToDTO(t *testing.T) {
	notes := []notedomain.WithOwner{{
		Note:         notedomain.Note{ID: "n1", Content: "hi there", Owner: "u1"},
		OwnerSummary: userdomain.Summary{ID: "u1", Username: "ghong1987", Name: "Gil Hong"},
	}}

	raw, err := json.Marshal(NotesWithOwnerToDTO(notes))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"n1","content":"hi there","important":false,"user":{"id":"u1","username":"ghong1987","name":"Gil Hong"}}]`, string(raw))
}

func TestLoginToDTO(t *testing.T) {
	out := LoginToDTO("tok", userdomain.User{ID: "u1", Username: "ghong1987", Name: "Gil Hong", PasswordHash: "x"})
	assert.Equal(t, "tok", out.Token)
	assert.Equal(t, "u1", out.ID)
}
