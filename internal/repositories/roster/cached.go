package roster

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/cosmo-api/internal/entities"
	"github.com/KirkDiggler/cosmo-api/internal/errors"
	redisclient "github.com/KirkDiggler/cosmo-api/internal/redis"
)

const (
	// CacheKey holds the serialized roster
	CacheKey = "roster:all"
	// DefaultCacheTTL is how long a cached roster is served
	DefaultCacheTTL = time.Hour
)

// CacheConfig configures the read-through cache
type CacheConfig struct {
	Next   Repository
	Client redisclient.Client
	TTL    time.Duration
	Logger *zap.Logger
}

// Validate ensures all required dependencies are provided
func (c *CacheConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Next == nil {
		return errors.InvalidArgument("next repository is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

// CachedRepository serves List from Redis and falls through to the wrapped
// repository on a miss. Cache failures are logged and bypassed.
type CachedRepository struct {
	next   Repository
	client redisclient.Client
	ttl    time.Duration
	logger *zap.Logger
}

var _ Repository = (*CachedRepository)(nil)

// NewCachedRepository wraps next with a Redis cache
func NewCachedRepository(cfg *CacheConfig) (*CachedRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	repo := &CachedRepository{
		next:   cfg.Next,
		client: cfg.Client,
		ttl:    cfg.TTL,
		logger: cfg.Logger,
	}
	if repo.ttl == 0 {
		repo.ttl = DefaultCacheTTL
	}
	if repo.logger == nil {
		repo.logger = zap.NewNop()
	}
	return repo, nil
}

// List returns the cached roster, loading and caching it on a miss
func (r *CachedRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	data, err := r.client.Get(ctx, CacheKey).Bytes()
	switch {
	case err == nil:
		var characters []*entities.CharacterRecord
		if err := json.Unmarshal(data, &characters); err == nil {
			return &ListOutput{Characters: characters}, nil
		}
		r.logger.Warn("discarding unreadable roster cache", zap.Int("bytes", len(data)))
	case !redisclient.IsNil(err):
		r.logger.Warn("roster cache read failed", zap.Error(err))
	}

	out, err := r.next.List(ctx, input)
	if err != nil {
		return nil, err
	}

	r.store(ctx, out.Characters)
	return out, nil
}

// Get is not cached
func (r *CachedRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	return r.next.Get(ctx, input)
}

// Invalidate drops the cached roster so the next List reloads it
func (r *CachedRepository) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, CacheKey).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "invalidate roster cache")
	}
	return nil
}

func (r *CachedRepository) store(ctx context.Context, characters []*entities.CharacterRecord) {
	data, err := json.Marshal(characters)
	if err != nil {
		r.logger.Warn("roster cache encode failed", zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, CacheKey, data, r.ttl).Err(); err != nil {
		r.logger.Warn("roster cache write failed", zap.Error(err))
	}
}
