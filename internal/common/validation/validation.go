// Package validation holds the field rules for notes and users. Each rule
// returns a Result instead of an error so callers decide how an invalid
// value is reported.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/AlibekovAA/notes-app/backend/internal/common/constants"
)

type Result struct {
	Valid  bool
	Field  string
	Reason string
}

func ok(field string) Result {
	return Result{Valid: true, Field: field}
}

func invalid(field, reason string) Result {
	return Result{Valid: false, Field: field, Reason: reason}
}

func (r Result) String() string {
	if r.Valid {
		return r.Field + ": ok"
	}
	return r.Field + ": " + r.Reason
}

var (
	validate = validator.New(validator.WithRequiredStructEnabled())

	usernameShape   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)
	passwordCharset = regexp.MustCompile(`^[A-Za-z0-9~!@#$%^&*]+$`)
)

func NoteContent(content string) Result {
	const field = "content"

	if err := validate.Var(content, "required"); err != nil {
		return invalid(field, "content is missing")
	}
	if err := validate.Var(content, fmt.Sprintf("min=%d", constants.NoteContentMin)); err != nil {
		return invalid(field, fmt.Sprintf("must be at least %d characters long", constants.NoteContentMin))
	}
	return ok(field)
}

func Username(username string) Result {
	const field = "username"

	if err := validate.Var(username, "required"); err != nil {
		return invalid(field, "username is required")
	}
	lengthTag := fmt.Sprintf("min=%d,max=%d", constants.UsernameMinLength, constants.UsernameMaxLength)
	if err := validate.Var(username, lengthTag); err != nil {
		return invalid(field, fmt.Sprintf("must be between %d and %d characters long",
			constants.UsernameMinLength, constants.UsernameMaxLength))
	}
	if !usernameShape.MatchString(username) {
		return invalid(field, fmt.Sprintf("%s is not a valid username", username))
	}
	return ok(field)
}

// Password enforces the signup policy: 8-60 characters drawn from letters,
// digits and ~!@#$%^&*, with at least one upper-case letter, one digit and
// one of the symbols.
func Password(password string) Result {
	const field = "password"

	lengthTag := fmt.Sprintf("min=%d,max=%d", constants.PasswordMinLength, constants.PasswordMaxLength)
	if err := validate.Var(password, lengthTag); err != nil {
		return invalid(field, fmt.Sprintf("must be between %d and %d characters long",
			constants.PasswordMinLength, constants.PasswordMaxLength))
	}
	if !passwordCharset.MatchString(password) {
		return invalid(field, "contains characters outside letters, digits and "+constants.PasswordSymbols)
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(constants.PasswordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasUpper:
		return invalid(field, "must contain an upper-case letter")
	case !hasDigit:
		return invalid(field, "must contain a digit")
	case !hasSymbol:
		return invalid(field, "must contain one of "+constants.PasswordSymbols)
	}
	return ok(field)
}

// FirstInvalid returns the first failing result, or a valid zero Result.
func FirstInvalid(results ...Result) (Result, bool) {
	for _, r := range results {
		if !r.Valid {
			return r, true
		}
	}
	return Result{Valid: true}, false
}
