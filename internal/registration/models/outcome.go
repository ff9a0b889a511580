package models

// ErrorCode is the terminal error reported for a rejected registration.
type ErrorCode string

const (
	CodeEmailInUse            ErrorCode = "email_in_use"
	CodeUsernameInUse         ErrorCode = "username_in_use"
	CodeInvalidRegistration   ErrorCode = "invalid_registration"
	CodeEmailDomainNotAllowed ErrorCode = "email_domain_not_allowed"
	CodeInternalServerError   ErrorCode = "internal_server_error"
)

// Outcome is the final result of validating a registration attempt. A zero
// Code means success.
type Outcome struct {
	Code     ErrorCode
	Messages []FieldMessage
}

// Success is the accepted outcome.
func Success() Outcome {
	return Outcome{}
}

// Failure is a rejected outcome carrying the messages to render.
func Failure(code ErrorCode, messages []FieldMessage) Outcome {
	return Outcome{Code: code, Messages: messages}
}

// GlobalFailure rejects with a single global message keyed by the code itself.
func GlobalFailure(code ErrorCode) Outcome {
	return Failure(code, []FieldMessage{GlobalMessage(string(code))})
}

// OK reports whether the registration may proceed.
func (o Outcome) OK() bool {
	return o.Code == ""
}
