package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/notes-app/backend/internal/user/domain"
)

type ID string

func (id ID) String() string {
	return string(id)
}

type Note struct {
	ID        ID
	Content   string
	Important bool
	Owner     userdomain.ID
	CreatedAt time.Time
}

func (n Note) OwnedBy(user userdomain.ID) bool {
	return n.Owner == user
}

type WithOwner struct {
	Note
	OwnerSummary userdomain.Summary
}
