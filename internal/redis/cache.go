package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"huddle/internal/domain/member"
)

// Cache key patterns:
// - member:{member_id}     - profile cache, CacheConfig.MemberTTL
// - member:{member_id}:gen - invalidation counter, GenerationTTL

const (
	DefaultMemberTTL = 5 * time.Minute
	GenerationTTL    = 24 * time.Hour
)

type CacheConfig struct {
	MemberTTL time.Duration
}

// DefaultCacheConfig returns sensible defaults
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{MemberTTL: DefaultMemberTTL}
}

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1].
var setIfGeneration = goredis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// MemberCache stores member profiles in Redis. Password hashes are never
// written. Every invalidation bumps a per-member generation, and writes
// carrying an older generation are dropped.
type MemberCache struct {
	client *goredis.Client
	config CacheConfig
}

func NewMemberCache(client *goredis.Client, config CacheConfig) *MemberCache {
	if config.MemberTTL <= 0 {
		config.MemberTTL = DefaultMemberTTL
	}
	return &MemberCache{client: client, config: config}
}

// cachedMember is the JSON shape kept under member:{id}.
type cachedMember struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func memberKey(id uuid.UUID) string {
	return fmt.Sprintf("member:%s", id.String())
}

func generationKey(id uuid.UUID) string {
	return fmt.Sprintf("member:%s:gen", id.String())
}

// GetMember returns the cached member (nil on a miss) and the generation a
// later SetMember must present.
func (c *MemberCache) GetMember(ctx context.Context, id uuid.UUID) (*member.Member, int64, error) {
	vals, err := c.client.MGet(ctx, memberKey(id), generationKey(id)).Result()
	if err != nil {
		return nil, 0, err
	}

	gen, err := parseGeneration(vals[1])
	if err != nil {
		return nil, 0, err
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, nil
	}
	var cm cachedMember
	if err := json.Unmarshal([]byte(raw), &cm); err != nil {
		return nil, gen, err
	}
	return &member.Member{ID: cm.ID, Username: cm.Username, CreatedAt: cm.CreatedAt}, gen, nil
}

// SetMember stores m unless the member was invalidated after gen was read.
func (c *MemberCache) SetMember(ctx context.Context, m member.Member, gen int64) error {
	data, err := json.Marshal(cachedMember{ID: m.ID, Username: m.Username, CreatedAt: m.CreatedAt})
	if err != nil {
		return err
	}
	keys := []string{memberKey(m.ID), generationKey(m.ID)}
	err = setIfGeneration.Run(ctx, c.client, keys, strconv.FormatInt(gen, 10), data, c.config.MemberTTL.Milliseconds()).Err()
	if err != nil && !errors.Is(err, goredis.Nil) {
		return err
	}
	return nil
}

// InvalidateMember bumps the generation and drops the cached entry.
func (c *MemberCache) InvalidateMember(ctx context.Context, id uuid.UUID) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, generationKey(id))
	pipe.Expire(ctx, generationKey(id), GenerationTTL)
	pipe.Del(ctx, memberKey(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Ping checks if Redis is available
func (c *MemberCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func parseGeneration(v any) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	gen, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("member generation %q: %w", s, err)
	}
	return gen, nil
}
