package mapper

import (
	"github.com/AlibekovAA/notes-app/backend/internal/common/dto"
	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

func UserToDTO(user userdomain.User) dto.User {
	return dto.User{
		ID:       string(user.ID),
		Username: user.Username,
		Name:     user.Name,
		Notes:    []dto.NoteRef{},
	}
}

func ProfileToDTO(profile userdomain.Profile) dto.User {
	out := UserToDTO(profile.User)
	for _, n := range profile.Notes {
		out.Notes = append(out.Notes, dto.NoteRef{
			ID:        n.ID,
			Content:   n.Content,
			Important: n.Important,
		})
	}
	return out
}

func ProfilesToDTO(profiles []userdomain.Profile) []dto.User {
	result := make([]dto.User, len(profiles))
	for i, p := range profiles {
		result[i] = ProfileToDTO(p)
	}
	return result
}

func UserSummaryToDTO(summary userdomain.Summary) dto.UserSummary {
	return dto.UserSummary{
		ID:       string(summary.ID),
		Username: summary.Username,
		Name:     summary.Name,
	}
}

func LoginToDTO(token string, user userdomain.User) dto.Login {
	return dto.Login{
		Token:    token,
		Username: user.Username,
		Name:     user.Name,
		ID:       string(user.ID),
	}
}
