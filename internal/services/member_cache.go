package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"huddle/internal/domain/member"
	"huddle/internal/repository"
	"huddle/pkg/logger"
)

// MemberCache is a read-through cache of member rows. Implementations never
// store password hashes. GetMember returns a nil member on a miss, along with
// a generation that InvalidateMember advances; SetMember must ignore writes
// made with a generation older than the current one, so a lookup racing a
// rename cannot put the old row back.
type MemberCache interface {
	GetMember(ctx context.Context, id uuid.UUID) (*member.Member, int64, error)
	SetMember(ctx context.Context, m member.Member, gen int64) error
	InvalidateMember(ctx context.Context, id uuid.UUID) error
}

// CachedMembers serves member lookups from a MemberCache when one is
// configured and falls back to the repository. Cache failures are logged and
// never fail the request.
type CachedMembers struct {
	repo  repository.MemberRepository
	cache MemberCache
	log   *logger.Logger
}

func NewCachedMembers(repo repository.MemberRepository, cache MemberCache, l *logger.Logger) *CachedMembers {
	if l == nil {
		l = logger.NewNop()
	}
	return &CachedMembers{repo: repo, cache: cache, log: l}
}

func (c *CachedMembers) GetByID(ctx context.Context, id uuid.UUID) (member.Member, error) {
	var gen int64
	cacheUsable := c.cache != nil
	if cacheUsable {
		cached, g, err := c.cache.GetMember(ctx, id)
		switch {
		case err != nil:
			cacheUsable = false
			c.log.ErrorCtx(ctx, "member cache read failed", zap.String("member", id.String()), zap.Error(err))
		case cached != nil:
			return *cached, nil
		default:
			gen = g
		}
	}

	m, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return member.Member{}, err
	}
	m.PasswordHash = ""

	if cacheUsable {
		if err := c.cache.SetMember(ctx, m, gen); err != nil {
			c.log.ErrorCtx(ctx, "member cache write failed", zap.String("member", id.String()), zap.Error(err))
		}
	}
	return m, nil
}

// Invalidate drops the cached copy of id. Call it after the row was written.
func (c *CachedMembers) Invalidate(ctx context.Context, id uuid.UUID) {
	if c.cache == nil {
		return
	}
	if err := c.cache.InvalidateMember(ctx, id); err != nil {
		c.log.ErrorCtx(ctx, "member cache invalidate failed", zap.String("member", id.String()), zap.Error(err))
	}
}
