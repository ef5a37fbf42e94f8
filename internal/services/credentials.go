package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"huddle/internal/domain/member"
	"huddle/internal/repository"
	apperrors "huddle/pkg/errors"
)

// CredentialStore owns member identities and their password hashes.
type CredentialStore struct {
	members repository.MemberRepository
	cost    int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewCredentialStore(members repository.MemberRepository, bcryptCost int) *CredentialStore {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &CredentialStore{members: members, cost: bcryptCost}
}

// Create stores a new member. The existence check only produces the friendly
// error early; the unique index decides races and is mapped to the same
// Conflict.
func (s *CredentialStore) Create(ctx context.Context, username, rawPassword string) (member.Member, error) {
	taken, err := s.members.UsernameTaken(ctx, username, uuid.Nil)
	if err != nil {
		return member.Member{}, err
	}
	if taken {
		return member.Member{}, apperrors.NewConflict("username", msgUsernameTaken)
	}

	hash, err := s.hashPassword(rawPassword)
	if err != nil {
		return member.Member{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return member.Member{}, err
	}

	m := member.Member{
		ID:           id,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.members.Create(ctx, &m); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return member.Member{}, apperrors.NewConflict("username", msgUsernameTaken)
		}
		return member.Member{}, err
	}
	return m, nil
}

// Enroll validates raw registration fields and creates the member.
func (s *CredentialStore) Enroll(ctx context.Context, in RegisterInput) (member.Member, error) {
	username, password, err := validateRegister(in)
	if err != nil {
		return member.Member{}, err
	}
	return s.Create(ctx, username, password)
}

// Verify returns the member for a matching username/password pair. Unknown
// usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *CredentialStore) Verify(ctx context.Context, username, rawPassword string) (member.Member, error) {
	m, err := s.members.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn a comparison so timing does not reveal unknown usernames.
			_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(rawPassword))
			return member.Member{}, apperrors.ErrInvalidCredentials
		}
		return member.Member{}, err
	}

	if err := comparePassword(m.PasswordHash, rawPassword); err != nil {
		return member.Member{}, apperrors.ErrInvalidCredentials
	}
	return m, nil
}

// UpdateProfile applies a validated partial update to m.
func (s *CredentialStore) UpdateProfile(ctx context.Context, m member.Member, in ProfileUpdate) (member.Member, error) {
	if in.Username == nil || *in.Username == m.Username {
		return m, nil
	}

	taken, err := s.members.UsernameTaken(ctx, *in.Username, m.ID)
	if err != nil {
		return member.Member{}, err
	}
	if taken {
		return member.Member{}, apperrors.NewConflict("username", msgUsernameTaken)
	}

	if err := s.members.UpdateUsername(ctx, m.ID, *in.Username); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return member.Member{}, apperrors.NewConflict("username", msgUsernameTaken)
		}
		return member.Member{}, err
	}
	m.Username = *in.Username
	return m, nil
}

func (s *CredentialStore) hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (s *CredentialStore) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
