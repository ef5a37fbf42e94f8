package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"huddle/internal/domain/member"
	"huddle/internal/repository"
	apperrors "huddle/pkg/errors"
)

// TokenKeyword is the Authorization scheme accepted by the Authenticator.
const TokenKeyword = "Token"

// tokenBytes of entropy, hex encoded to 64 characters.
const tokenBytes = 32

const (
	detailNoCredentials = "Invalid token header. No credentials provided."
	detailHasSpaces     = "Invalid token header. Token string should not contain spaces."
	detailBadChars      = "Invalid token header. Token string should not contain invalid characters."
	detailInvalidToken  = "Invalid token."
)

// TokenStore issues and revokes opaque bearer tokens.
type TokenStore struct {
	tokens repository.TokenRepository
}

func NewTokenStore(tokens repository.TokenRepository) *TokenStore {
	return &TokenStore{tokens: tokens}
}

// Issue persists a fresh token for m without touching existing ones.
func (s *TokenStore) Issue(ctx context.Context, m member.Member) (member.Token, error) {
	t, err := newToken(m)
	if err != nil {
		return member.Token{}, err
	}
	if err := s.tokens.Create(ctx, &t); err != nil {
		return member.Token{}, err
	}
	return t, nil
}

// Rotate revokes every token of m and issues a new one atomically.
func (s *TokenStore) Rotate(ctx context.Context, m member.Member) (member.Token, error) {
	t, err := newToken(m)
	if err != nil {
		return member.Token{}, err
	}
	if err := s.tokens.Replace(ctx, &t); err != nil {
		return member.Token{}, err
	}
	return t, nil
}

func (s *TokenStore) RevokeAll(ctx context.Context, m member.Member) error {
	return s.tokens.DeleteAllForMember(ctx, m.ID)
}

func (s *TokenStore) Revoke(ctx context.Context, t member.Token) error {
	return s.tokens.Delete(ctx, t.Key)
}

func newToken(m member.Member) (member.Token, error) {
	key, err := generateToken(tokenBytes)
	if err != nil {
		return member.Token{}, err
	}
	return member.Token{Key: key, MemberID: m.ID, CreatedAt: time.Now().UTC()}, nil
}

func generateToken(length int) (string, error) {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Principal is an authenticated member together with the token that proved it.
type Principal struct {
	Member member.Member
	Token  member.Token
}

// MemberLookup resolves members by id.
type MemberLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (member.Member, error)
}

// Authenticator turns an Authorization header into a Principal.
type Authenticator struct {
	tokens  repository.TokenRepository
	members MemberLookup
}

func NewAuthenticator(tokens repository.TokenRepository, members MemberLookup) *Authenticator {
	return &Authenticator{tokens: tokens, members: members}
}

// Resolve returns (nil, nil) when header carries no Token credentials, so the
// request continues anonymously. A Token header that is malformed or names an
// unknown key is an AuthenticationFailed error.
func (a *Authenticator) Resolve(ctx context.Context, header string) (*Principal, error) {
	parts := strings.Fields(header)
	if len(parts) == 0 || parts[0] != TokenKeyword {
		return nil, nil
	}

	switch {
	case len(parts) == 1:
		return nil, apperrors.AuthenticationFailed(detailNoCredentials)
	case len(parts) > 2:
		return nil, apperrors.AuthenticationFailed(detailHasSpaces)
	case !utf8.ValidString(parts[1]):
		return nil, apperrors.AuthenticationFailed(detailBadChars)
	}

	return a.authenticateCredentials(ctx, parts[1])
}

func (a *Authenticator) authenticateCredentials(ctx context.Context, key string) (*Principal, error) {
	t, err := a.tokens.Get(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.AuthenticationFailed(detailInvalidToken)
		}
		return nil, err
	}

	m, err := a.members.GetByID(ctx, t.MemberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.AuthenticationFailed(detailInvalidToken)
		}
		return nil, err
	}
	return &Principal{Member: m, Token: t}, nil
}
