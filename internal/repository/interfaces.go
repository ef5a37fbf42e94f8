package repository

import (
	"context"

	"github.com/google/uuid"

	"huddle/internal/domain/member"
	"huddle/internal/domain/message"
)

type MemberRepository interface {
	Create(ctx context.Context, m *member.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (member.Member, error)
	GetByUsername(ctx context.Context, username string) (member.Member, error)
	// UsernameTaken reports whether a member other than exclude holds username.
	UsernameTaken(ctx context.Context, username string, exclude uuid.UUID) (bool, error)
	UpdateUsername(ctx context.Context, id uuid.UUID, username string) error
}

type TokenRepository interface {
	Create(ctx context.Context, t *member.Token) error
	Get(ctx context.Context, key string) (member.Token, error)
	Delete(ctx context.Context, key string) error
	DeleteAllForMember(ctx context.Context, memberID uuid.UUID) error
	// Replace deletes every token of t.MemberID and inserts t as one atomic step.
	Replace(ctx context.Context, t *member.Token) error
	CountForMember(ctx context.Context, memberID uuid.UUID) (int, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	// List returns messages newest-first with their authors resolved.
	List(ctx context.Context, limit, offset int) (message.Page, error)
}

// Store bundles the repositories backed by one storage engine.
type Store struct {
	Members  MemberRepository
	Tokens   TokenRepository
	Messages MessageRepository
}

// NewPostgresStore binds every repository to db.
func NewPostgresStore(db DBTX) Store {
	return Store{
		Members:  NewMemberRepository(db),
		Tokens:   NewTokenRepository(db),
		Messages: NewMessageRepository(db),
	}
}
