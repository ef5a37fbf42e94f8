package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "huddle/pkg/errors"
)

func TestAuthService_Register(t *testing.T) {
	h := newHarness(t, nil)

	res := h.register(t, "alice", "secret1")

	assert.Equal(t, "alice", res.Member.Username)
	assert.Len(t, res.Token.Key, 64)
	assert.Equal(t, res.Member.ID, res.Token.MemberID)
	assert.NotEqual(t, "secret1", res.Member.PasswordHash)

	p := h.principal(t, res.Token.Key)
	assert.Equal(t, res.Member.ID, p.Member.ID)
}

func TestAuthService_RegisterDuplicateKeepsFirstToken(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	first := h.register(t, "alice", "secret1")

	_, err := h.auth.Register(ctx, RegisterInput{Username: str("alice"), Password: str("another1")})
	require.ErrorIs(t, err, apperrors.ErrConflict)

	var conflict *apperrors.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "username", conflict.Field)
	assert.Equal(t, "Username already exists.", conflict.Message)

	h.principal(t, first.Token.Key)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.auth.Register(context.Background(), RegisterInput{Username: str("al"), Password: str("x")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAuthService_LoginRotatesToken(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	reg := h.register(t, "alice", "secret1")

	login, err := h.auth.Login(ctx, LoginInput{Username: str("alice"), Password: str("secret1")})
	require.NoError(t, err)
	assert.NotEqual(t, reg.Token.Key, login.Token.Key)
	assert.Equal(t, reg.Member.ID, login.Member.ID)

	_, err = h.authn.Resolve(ctx, "Token "+reg.Token.Key)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)

	p := h.principal(t, login.Token.Key)
	assert.Equal(t, "alice", p.Member.Username)

	n, err := h.store.Tokens.CountForMember(ctx, reg.Member.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAuthService_ConcurrentLoginsLeaveOneToken(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	reg := h.register(t, "alice", "secret1")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.auth.Login(ctx, LoginInput{Username: str("alice"), Password: str("secret1")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := h.store.Tokens.CountForMember(ctx, reg.Member.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	h.register(t, "alice", "secret1")

	_, wrongPass := h.auth.Login(ctx, LoginInput{Username: str("alice"), Password: str("nope123")})
	_, unknown := h.auth.Login(ctx, LoginInput{Username: str("bob"), Password: str("secret1")})

	assert.ErrorIs(t, wrongPass, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, unknown, apperrors.ErrInvalidCredentials)
	assert.Equal(t, wrongPass.Error(), unknown.Error())
}

func TestAuthService_LoginRequiresFields(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.auth.Login(context.Background(), LoginInput{Username: str("alice")})
	assert.Equal(t, []string{msgRequired}, fieldErrors(t, err)["password"])
}

func TestAuthService_LogoutRevokesPresentedToken(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	reg := h.register(t, "alice", "secret1")

	p := h.principal(t, reg.Token.Key)
	require.NoError(t, h.auth.Logout(ctx, *p))

	_, err := h.authn.Resolve(ctx, "Token "+reg.Token.Key)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	assert.Equal(t, "Invalid token.", err.Error())
}

func TestAuthService_RevokeAll(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, nil)
	reg := h.register(t, "alice", "secret1")
	extra, err := h.tokens.Issue(ctx, reg.Member)
	require.NoError(t, err)

	require.NoError(t, h.tokens.RevokeAll(ctx, reg.Member))

	for _, key := range []string{reg.Token.Key, extra.Key} {
		_, err := h.authn.Resolve(ctx, "Token "+key)
		assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperrors.FieldErrors{"content": {"x"}}.Err(), http.StatusBadRequest},
		{apperrors.NewConflict("username", "taken"), http.StatusBadRequest},
		{apperrors.ErrInvalidCredentials, http.StatusBadRequest},
		{apperrors.AuthenticationFailed("Invalid token."), http.StatusUnauthorized},
		{apperrors.ErrNotAuthenticated, http.StatusUnauthorized},
		{apperrors.ErrNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}
