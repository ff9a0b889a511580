package models

import (
	"fmt"
	"strings"
)

// Cause classifies why a profile failed structural validation.
type Cause string

const (
	CauseEmailExists    Cause = "email_exists"
	CauseUsernameExists Cause = "username_exists"
	CauseInvalidEmail   Cause = "invalid_email"
	CauseOther          Cause = "other"
)

// ProfileError is the Invalid outcome of profile validation. A nil error from
// the profile validator means the profile is valid.
type ProfileError struct {
	Messages []FieldMessage
	Causes   map[Cause]struct{}
}

// NewProfileError returns an empty ProfileError ready for Add.
func NewProfileError() *ProfileError {
	return &ProfileError{Causes: make(map[Cause]struct{})}
}

// Add records one field message together with its cause.
func (e *ProfileError) Add(field, key string, cause Cause) {
	e.Messages = append(e.Messages, FieldMessage{Field: field, Key: key})
	e.Causes[cause] = struct{}{}
}

// Has reports whether any of the given causes was recorded.
func (e *ProfileError) Has(causes ...Cause) bool {
	for _, c := range causes {
		if _, ok := e.Causes[c]; ok {
			return true
		}
	}
	return false
}

// Empty reports whether no failure was recorded.
func (e *ProfileError) Empty() bool {
	return len(e.Messages) == 0
}

func (e *ProfileError) Error() string {
	keys := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		keys = append(keys, m.Key)
	}
	return fmt.Sprintf("invalid profile: %s", strings.Join(keys, ", "))
}
