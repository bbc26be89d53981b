package shares

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/clock"
	"github.com/KirkDiggler/cosmo-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/cosmo-api/internal/redis"
)

const (
	// Key pattern: shared_team:{short_code}
	shareKeyPrefix = "shared_team:"

	// DefaultTTL is how long a share stays resolvable
	DefaultTTL = 30 * 24 * time.Hour

	errShortCodeEmpty = "short code cannot be empty"
	errTeamNil        = "team cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
	// IDGenerator creates record IDs, defaults to UUIDs
	IDGenerator idgen.Generator
	// TTL defaults to DefaultTTL
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.TTL < 0 {
		return errors.InvalidArgument("ttl cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ids    idgen.Generator
	ttl    time.Duration
}

// NewRedisRepository creates a share store on Redis
func NewRedisRepository(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	repo := &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		ids:    cfg.IDGenerator,
		ttl:    cfg.TTL,
	}
	if repo.clock == nil {
		repo.clock = clock.New()
	}
	if repo.ids == nil {
		repo.ids = idgen.NewUUID("share")
	}
	if repo.ttl == 0 {
		repo.ttl = DefaultTTL
	}

	return repo, nil
}

var _ Repository = (*redisRepository)(nil)

// Exists checks whether a short code is already taken
func (r *redisRepository) Exists(ctx context.Context, input ExistsInput) (*ExistsOutput, error) {
	if input.ShortCode == "" {
		return nil, errors.InvalidArgument(errShortCodeEmpty)
	}

	n, err := r.client.Exists(ctx, buildKey(input.ShortCode)).Result()
	if err != nil {
		return nil, unavailable(err, "failed to check short code")
	}

	return &ExistsOutput{Exists: n > 0}, nil
}

// Create stores a share under its short code with the configured TTL
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.ShortCode == "" {
		return nil, errors.InvalidArgument(errShortCodeEmpty)
	}
	if input.Team == nil {
		return nil, errors.InvalidArgument(errTeamNil)
	}

	now := r.clock.Now().UTC()
	share := &SharedTeam{
		ID:        r.ids.Generate(),
		ShortCode: input.ShortCode,
		Team:      input.Team,
		Name:      input.Name,
		Notes:     input.Notes,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}

	data, err := json.Marshal(share)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal share")
	}

	// SETNX so two writers racing on one code cannot overwrite each other
	ok, err := r.client.SetNX(ctx, buildKey(input.ShortCode), data, r.ttl).Result()
	if err != nil {
		return nil, unavailable(err, "failed to store share")
	}
	if !ok {
		return nil, errors.AlreadyExistsf("short code %s is taken", input.ShortCode).
			WithMeta("short_code", input.ShortCode)
	}

	return &CreateOutput{Share: share}, nil
}

// Get loads a share by short code
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ShortCode == "" {
		return nil, errors.InvalidArgument(errShortCodeEmpty)
	}

	data, err := r.client.Get(ctx, buildKey(input.ShortCode)).Bytes()
	if err != nil {
		if redisclient.IsNil(err) {
			return nil, errors.NotFoundf("share %s not found", input.ShortCode).
				WithMeta("short_code", input.ShortCode)
		}
		return nil, unavailable(err, "failed to load share")
	}

	var share SharedTeam
	if err := json.Unmarshal(data, &share); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal share")
	}

	// the key TTL normally removes it first
	if !share.ExpiresAt.IsZero() && r.clock.Now().After(share.ExpiresAt) {
		return nil, errors.NotFoundf("share %s has expired", input.ShortCode).
			WithMeta("short_code", input.ShortCode)
	}

	return &GetOutput{Share: &share}, nil
}

func buildKey(shortCode string) string {
	return shareKeyPrefix + shortCode
}

// unavailable keeps context cancellation codes and marks everything else as
// a storage outage
func unavailable(err error, message string) error {
	if errors.IsCanceled(err) || errors.IsDeadlineExceeded(err) {
		return errors.Wrap(err, message)
	}
	return errors.WrapWithCode(err, errors.CodeUnavailable, message)
}
