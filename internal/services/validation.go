package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "huddle/pkg/errors"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 150
	PasswordMinLength = 6
	// bcrypt only consumes the first 72 bytes and refuses longer input.
	PasswordMaxBytes = 72
	ContentMaxLength = 5000
)

const (
	msgRequired       = "This field is required."
	msgNull           = "This field may not be null."
	msgBlank          = "This field may not be blank."
	msgUsernameTaken  = "Username already exists."
	msgMinLengthFmt   = "Ensure this field has at least %d characters."
	msgMaxLengthFmt   = "Ensure this field has no more than %d characters."
	msgPasswordTooBig = "Ensure this field has no more than 72 bytes."
)

// Nulls names the fields a client sent as an explicit JSON null.
type Nulls map[string]bool

// RegisterInput carries registration fields; nil means the field was absent.
type RegisterInput struct {
	Username *string
	Password *string
	Nulls    Nulls
}

type LoginInput struct {
	Username *string
	Password *string
	Nulls    Nulls
}

// ProfileUpdate is a partial profile change; nil fields are left as they are.
type ProfileUpdate struct {
	Username *string
	Nulls    Nulls
}

type MessageInput struct {
	Content *string
	Nulls   Nulls
}

// requiredText trims value and records null/required/blank violations for
// field. ok is false when a violation was recorded.
func requiredText(errs apperrors.FieldErrors, field string, value *string, nulls Nulls) (string, bool) {
	if nulls[field] {
		errs.Add(field, msgNull)
		return "", false
	}
	if value == nil {
		errs.Add(field, msgRequired)
		return "", false
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		errs.Add(field, msgBlank)
		return "", false
	}
	return trimmed, true
}

func lengthBounds(errs apperrors.FieldErrors, field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if min > 0 && n < min {
		errs.Add(field, fmt.Sprintf(msgMinLengthFmt, min))
	}
	if max > 0 && n > max {
		errs.Add(field, fmt.Sprintf(msgMaxLengthFmt, max))
	}
}

func validateUsername(errs apperrors.FieldErrors, value *string, nulls Nulls) string {
	username, ok := requiredText(errs, "username", value, nulls)
	if ok {
		lengthBounds(errs, "username", username, UsernameMinLength, UsernameMaxLength)
	}
	return username
}

// validateRegister returns the normalized username and password. The password
// is kept verbatim; only its blank check looks at the trimmed form.
func validateRegister(in RegisterInput) (string, string, error) {
	errs := apperrors.FieldErrors{}
	username := validateUsername(errs, in.Username, in.Nulls)

	var password string
	if _, ok := requiredText(errs, "password", in.Password, in.Nulls); ok {
		password = *in.Password
		lengthBounds(errs, "password", password, PasswordMinLength, 0)
		if len(password) > PasswordMaxBytes {
			errs.Add("password", msgPasswordTooBig)
		}
	}
	return username, password, errs.Err()
}

func validateLogin(in LoginInput) (string, string, error) {
	errs := apperrors.FieldErrors{}
	username, _ := requiredText(errs, "username", in.Username, in.Nulls)

	var password string
	if _, ok := requiredText(errs, "password", in.Password, in.Nulls); ok {
		password = *in.Password
	}
	return username, password, errs.Err()
}

func validateProfileUpdate(in ProfileUpdate) (ProfileUpdate, error) {
	if in.Username == nil && !in.Nulls["username"] {
		return in, nil
	}
	errs := apperrors.FieldErrors{}
	username := validateUsername(errs, in.Username, in.Nulls)
	if err := errs.Err(); err != nil {
		return ProfileUpdate{}, err
	}
	return ProfileUpdate{Username: &username}, nil
}

func validateMessage(in MessageInput) (string, error) {
	errs := apperrors.FieldErrors{}
	content, ok := requiredText(errs, "content", in.Content, in.Nulls)
	if ok {
		lengthBounds(errs, "content", content, 1, ContentMaxLength)
	}
	return content, errs.Err()
}
