package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "huddle/pkg/errors"
)

func fieldErrors(t *testing.T, err error) apperrors.FieldErrors {
	t.Helper()
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr.Fields
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name  string
		in    RegisterInput
		field string
		msg   string
	}{
		{"missing username", RegisterInput{Password: str("secret1")}, "username", msgRequired},
		{"blank username", RegisterInput{Username: str("   "), Password: str("secret1")}, "username", msgBlank},
		{"short username", RegisterInput{Username: str("al"), Password: str("secret1")}, "username", "Ensure this field has at least 3 characters."},
		{"long username", RegisterInput{Username: str(strings.Repeat("a", 151)), Password: str("secret1")}, "username", "Ensure this field has no more than 150 characters."},
		{"missing password", RegisterInput{Username: str("alice")}, "password", msgRequired},
		{"short password", RegisterInput{Username: str("alice"), Password: str("12345")}, "password", "Ensure this field has at least 6 characters."},
		{"huge password", RegisterInput{Username: str("alice"), Password: str(strings.Repeat("p", 73))}, "password", msgPasswordTooBig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := validateRegister(tt.in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Contains(t, fieldErrors(t, err)[tt.field], tt.msg)
		})
	}
}

func TestValidateRegister_ReportsEveryField(t *testing.T) {
	_, _, err := validateRegister(RegisterInput{})
	fields := fieldErrors(t, err)
	assert.Equal(t, []string{msgRequired}, fields["username"])
	assert.Equal(t, []string{msgRequired}, fields["password"])
}

func TestValidateRegister_TrimsUsernameKeepsPassword(t *testing.T) {
	username, password, err := validateRegister(RegisterInput{Username: str("  alice "), Password: str(" secret1 ")})
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
	assert.Equal(t, " secret1 ", password)
}

func TestValidateUsernameCountsCharacters(t *testing.T) {
	// Three characters, nine bytes.
	username, _, err := validateRegister(RegisterInput{Username: str("日本語"), Password: str("secret1")})
	require.NoError(t, err)
	assert.Equal(t, "日本語", username)
}

func TestValidateMessage(t *testing.T) {
	_, err := validateMessage(MessageInput{Content: str(strings.Repeat("x", ContentMaxLength+1))})
	assert.Equal(t, []string{"Ensure this field has no more than 5000 characters."}, fieldErrors(t, err)["content"])

	content, err := validateMessage(MessageInput{Content: str(strings.Repeat("x", ContentMaxLength))})
	require.NoError(t, err)
	assert.Len(t, content, ContentMaxLength)

	_, err = validateMessage(MessageInput{Content: str(" \n\t")})
	assert.Equal(t, []string{msgBlank}, fieldErrors(t, err)["content"])

	_, err = validateMessage(MessageInput{})
	assert.Equal(t, []string{msgRequired}, fieldErrors(t, err)["content"])
}

func TestValidateProfileUpdate(t *testing.T) {
	out, err := validateProfileUpdate(ProfileUpdate{})
	require.NoError(t, err)
	assert.Nil(t, out.Username)

	out, err = validateProfileUpdate(ProfileUpdate{Username: str(" bob ")})
	require.NoError(t, err)
	assert.Equal(t, "bob", *out.Username)

	_, err = validateProfileUpdate(ProfileUpdate{Username: str("")})
	assert.Equal(t, []string{msgBlank}, fieldErrors(t, err)["username"])
}

func TestValidateExplicitNulls(t *testing.T) {
	_, _, err := validateRegister(RegisterInput{Password: str("secret1"), Nulls: Nulls{"username": true}})
	assert.Equal(t, []string{msgNull}, fieldErrors(t, err)["username"])

	_, _, err = validateLogin(LoginInput{Username: str("alice"), Nulls: Nulls{"password": true}})
	assert.Equal(t, []string{msgNull}, fieldErrors(t, err)["password"])

	_, err = validateProfileUpdate(ProfileUpdate{Nulls: Nulls{"username": true}})
	assert.Equal(t, apperrors.FieldErrors{"username": {msgNull}}, fieldErrors(t, err))

	_, err = validateMessage(MessageInput{Nulls: Nulls{"content": true}})
	assert.Equal(t, []string{msgNull}, fieldErrors(t, err)["content"])
}
