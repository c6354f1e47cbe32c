package dto

type NoteRef struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

// User never carries the password hash.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Notes    []NoteRef `json:"notes"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type Signup struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type Login struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
	ID       string `json:"id"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
