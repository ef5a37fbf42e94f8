package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"huddle/internal/domain/member"
)

func newTestCache(t *testing.T, ttl time.Duration) (*MemberCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewClient(Config{Host: mr.Host(), Port: mr.Port()})
	t.Cleanup(func() { _ = client.Close() })
	return NewMemberCache(client, CacheConfig{MemberTTL: ttl}), mr
}

func TestMemberCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)
	m := member.Member{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	require.NoError(t, cache.SetMember(ctx, m, 0))

	raw, err := mr.Get("member:" + m.ID.String())
	require.NoError(t, err)
	assert.NotContains(t, raw, "secret")
	assert.Equal(t, time.Minute, mr.TTL("member:"+m.ID.String()))

	got, gen, err := cache.GetMember(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Zero(t, gen)
	assert.Equal(t, m.ID, got.ID)
	assert.Equal(t, "alice", got.Username)
	assert.True(t, m.CreatedAt.Equal(got.CreatedAt))
	assert.Empty(t, got.PasswordHash)
}

func TestMemberCache_Miss(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	got, gen, err := cache.GetMember(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, gen)
}

func TestMemberCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	cache, _ := newTestCache(t, time.Minute)
	m := member.Member{ID: uuid.New(), Username: "alice"}
	require.NoError(t, cache.SetMember(ctx, m, 0))

	require.NoError(t, cache.InvalidateMember(ctx, m.ID))

	got, gen, err := cache.GetMember(ctx, m.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.EqualValues(t, 1, gen)
}

func TestMemberCache_StaleGenerationWriteIsDropped(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Minute)
	id := uuid.New()

	_, gen, err := cache.GetMember(ctx, id)
	require.NoError(t, err)

	require.NoError(t, cache.InvalidateMember(ctx, id))
	require.NoError(t, cache.SetMember(ctx, member.Member{ID: id, Username: "alice"}, gen))

	assert.False(t, mr.Exists("member:"+id.String()))
	assert.Equal(t, GenerationTTL, mr.TTL("member:"+id.String()+":gen"))

	_, gen, err = cache.GetMember(ctx, id)
	require.NoError(t, err)
	require.NoError(t, cache.SetMember(ctx, member.Member{ID: id, Username: "alicia"}, gen))

	got, _, err := cache.GetMember(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alicia", got.Username)
}

func TestMemberCache_Expiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newTestCache(t, time.Second)
	m := member.Member{ID: uuid.New(), Username: "alice"}
	require.NoError(t, cache.SetMember(ctx, m, 0))

	mr.FastForward(2 * time.Second)

	got, _, err := cache.GetMember(ctx, m.ID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemberCache_CorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	id := uuid.New()
	require.NoError(t, mr.Set("member:"+id.String(), "{not json"))

	_, _, err := cache.GetMember(context.Background(), id)
	assert.Error(t, err)
}

func TestMemberCache_DefaultTTLAndPing(t *testing.T) {
	cache, _ := newTestCache(t, 0)
	assert.Equal(t, DefaultMemberTTL, cache.config.MemberTTL)
	assert.NoError(t, cache.Ping(context.Background()))
}
