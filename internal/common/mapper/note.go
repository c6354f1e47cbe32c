package mapper

import (
	"github.com/AlibekovAA/notes-app/backend/internal/common/dto"
	notedomain "github.com/AlibekovAA/notes-app/backend/internal/note/domain"
)

func NoteToDTO(note notedomain.Note) dto.Note {
	return dto.Note{
		ID:        string(note.ID),
		Content:   note.Content,
		Important: note.Important,
		User:      string(note.Owner),
	}
}

func NotesWithOwnerToDTO(notes []notedomain.WithOwner) []dto.NoteWithOwner {
	result := make([]dto.NoteWithOwner, len(notes))
	for i, n := range notes {
		result[i] = dto.NoteWithOwner{
			ID:        string(n.ID),
			Content:   n.Content,
			Important: n.Important,
			User:      UserSummaryToDTO(n.OwnerSummary),
		}
	}
	return result
}
