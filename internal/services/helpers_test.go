package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"huddle/internal/repository"
)

type harness struct {
	store    repository.Store
	creds    *CredentialStore
	tokens   *TokenStore
	members  *CachedMembers
	authn    *Authenticator
	auth     *AuthService
	profiles *ProfileService
	messages *MessageService
}

func newHarness(t *testing.T, cache MemberCache) *harness {
	t.Helper()
	store := repository.NewMemoryStore()
	creds := NewCredentialStore(store.Members, bcrypt.MinCost)
	tokens := NewTokenStore(store.Tokens)
	members := NewCachedMembers(store.Members, cache, nil)
	return &harness{
		store:    store,
		creds:    creds,
		tokens:   tokens,
		members:  members,
		authn:    NewAuthenticator(store.Tokens, members),
		auth:     NewAuthService(creds, tokens),
		profiles: NewProfileService(creds, members),
		messages: NewMessageService(store.Messages),
	}
}

func str(s string) *string { return &s }

func (h *harness) register(t *testing.T, username, password string) AuthResult {
	t.Helper()
	res, err := h.auth.Register(context.Background(), RegisterInput{Username: str(username), Password: str(password)})
	require.NoError(t, err)
	return res
}

func (h *harness) principal(t *testing.T, token string) *Principal {
	t.Helper()
	p, err := h.authn.Resolve(context.Background(), TokenKeyword+" "+token)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}
