package models

// FieldMessage identifies a user-facing message. It is a message key, not
// free text; rendering belongs to the form collaborator. An empty Field marks
// a global (non-field) message.
type FieldMessage struct {
	Field string `json:"field,omitempty"`
	Key   string `json:"key"`
}

// Message keys understood by the registration page.
const (
	MessageMissingEmail     = "missingEmailMessage"
	MessageInvalidEmail     = "invalidEmailMessage"
	MessageEmailExists      = "emailExistsMessage"
	MessageMissingUsername  = "missingUsernameMessage"
	MessageInvalidUsername  = "invalidUsernameMessage"
	MessageUsernameExists   = "usernameExistsMessage"
	MessageInvalidFirstName = "invalidFirstNameMessage"
	MessageInvalidLastName  = "invalidLastNameMessage"
)

// GlobalMessage builds a message that is not attached to any field.
func GlobalMessage(key string) FieldMessage {
	return FieldMessage{Key: key}
}

// IsGlobal reports whether the message belongs to the whole form.
func (m FieldMessage) IsGlobal() bool {
	return m.Field == ""
}
