package models

import "maps"

// Form field names submitted by the registration page.
const (
	FieldEmail     = "email"
	FieldUsername  = "username"
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
)

// RegistrationAttempt is one submitted registration form.
//
// Invariants:
//   - Built once per incoming request and owned by the validation call that created it
//   - FormFields is a private copy; callers mutating their map do not affect the attempt
type RegistrationAttempt struct {
	Email      string
	Username   string
	FormFields map[string]string
}

// NewRegistrationAttempt copies the decoded form fields into a new attempt.
func NewRegistrationAttempt(fields map[string]string) RegistrationAttempt {
	copied := make(map[string]string, len(fields))
	maps.Copy(copied, fields)
	return RegistrationAttempt{
		Email:      copied[FieldEmail],
		Username:   copied[FieldUsername],
		FormFields: copied,
	}
}

// Field returns a submitted form value, or "" when absent.
func (a RegistrationAttempt) Field(name string) string {
	return a.FormFields[name]
}

// Profile is the structured user profile produced by profile validation.
type Profile struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
}
