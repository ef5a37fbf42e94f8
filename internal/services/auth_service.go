package services

import (
	"context"
	"errors"
	"net/http"

	"huddle/internal/domain/member"
	apperrors "huddle/pkg/errors"
)

// AuthService runs the session lifecycle: register, login and logout.
type AuthService struct {
	credentials *CredentialStore
	tokens      *TokenStore
}

func NewAuthService(credentials *CredentialStore, tokens *TokenStore) *AuthService {
	return &AuthService{credentials: credentials, tokens: tokens}
}

// AuthResult is what register and login hand back to the client.
type AuthResult struct {
	Member member.Member
	Token  member.Token
}

// Register creates a member and issues its first token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	m, err := s.credentials.Enroll(ctx, in)
	if err != nil {
		return AuthResult{}, err
	}

	t, err := s.tokens.Issue(ctx, m)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Member: m, Token: t}, nil
}

// Login verifies credentials and rotates the member's token: every earlier
// token stops working.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	username, password, err := validateLogin(in)
	if err != nil {
		return AuthResult{}, err
	}

	m, err := s.credentials.Verify(ctx, username, password)
	if err != nil {
		return AuthResult{}, err
	}

	t, err := s.tokens.Rotate(ctx, m)
	if err != nil {
		return AuthResult{}, err
	}

	return AuthResult{Member: m, Token: t}, nil
}

// Logout revokes exactly the token the principal authenticated with.
func (s *AuthService) Logout(ctx context.Context, p Principal) error {
	return s.tokens.Revoke(ctx, p.Token)
}

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrAuthenticationFailed),
		errors.Is(err, apperrors.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
