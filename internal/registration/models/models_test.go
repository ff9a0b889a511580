package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistrationAttempt(t *testing.T) {
	fields := map[string]string{FieldEmail: "user@allowed.com", FieldUsername: "user"}
	attempt := NewRegistrationAttempt(fields)

	fields[FieldEmail] = "changed@elsewhere.com"

	assert.Equal(t, "user@allowed.com", attempt.Email)
	assert.Equal(t, "user", attempt.Username)
	assert.Equal(t, "user@allowed.com", attempt.Field(FieldEmail), "attempt owns a private copy")
	assert.Empty(t, attempt.Field(FieldFirstName))
}

func TestProfileError(t *testing.T) {
	perr := NewProfileError()
	require.True(t, perr.Empty())

	perr.Add(FieldEmail, MessageEmailExists, CauseEmailExists)
	perr.Add(FieldUsername, MessageInvalidUsername, CauseOther)

	assert.False(t, perr.Empty())
	assert.True(t, perr.Has(CauseEmailExists))
	assert.True(t, perr.Has(CauseInvalidEmail, CauseOther))
	assert.False(t, perr.Has(CauseUsernameExists))
	assert.Equal(t, []FieldMessage{
		{Field: FieldEmail, Key: MessageEmailExists},
		{Field: FieldUsername, Key: MessageInvalidUsername},
	}, perr.Messages)
	assert.Contains(t, perr.Error(), MessageEmailExists)
}

func TestOutcome(t *testing.T) {
	assert.True(t, Success().OK())

	out := GlobalFailure(CodeEmailDomainNotAllowed)
	assert.False(t, out.OK())
	require.Len(t, out.Messages, 1)
	assert.True(t, out.Messages[0].IsGlobal())
	assert.Equal(t, "email_domain_not_allowed", out.Messages[0].Key)
}
