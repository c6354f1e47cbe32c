package dto

// Note is a single note; User holds the owner id.
type Note struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
	User      string `json:"user"`
}

// NoteWithOwner is the list form of a note with the owner expanded.
type NoteWithOwner struct {
	ID        string      `json:"id"`
	Content   string      `json:"content"`
	Important bool        `json:"important"`
	User      UserSummary `json:"user"`
}

// NoteInput is the create and update body. A missing important is false.
type NoteInput struct {
	Content   string `json:"content"`
	Important *bool  `json:"important,omitempty"`
}
