package domain

import "time"

type ID string

func (id ID) String() string {
	return string(id)
}

type User struct {
	ID           ID
	Username     string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Summary is the owner view attached to listed notes.
type Summary struct {
	ID       ID
	Username string
	Name     string
}

func (u User) Summary() Summary {
	return Summary{ID: u.ID, Username: u.Username, Name: u.Name}
}

type NoteRef struct {
	ID        string
	Content   string
	Important bool
}

// Profile is a user together with the notes they own.
type Profile struct {
	User
	Notes []NoteRef
}
