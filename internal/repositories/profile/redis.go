package profile

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/packvault/collection-api/internal/entities"
	"github.com/packvault/collection-api/internal/errors"
	redisclient "github.com/packvault/collection-api/internal/redis"
)

const (
	profileKeyPrefix = "profile:"

	errProfileNil    = "profile cannot be nil"
	errPlayerIDEmpty = "player ID cannot be empty"
	errNegativeCoins = "balance cannot be negative"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis profile repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed profile repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	key := profileKeyPrefix + input.PlayerID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("profile for player %s not found", input.PlayerID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get profile")
	}

	var p entities.Profile
	if err := json.Unmarshal([]byte(result), &p); err != nil {
		// Stored bytes are corrupt. The load contract is recoverable:
		// prune the key and report the profile as absent so the caller
		// re-initializes defaults.
		slog.WarnContext(ctx, "discarding corrupt profile record",
			"player_id", input.PlayerID,
			"error", err.Error())
		r.client.Del(ctx, key)
		return nil, errors.NotFoundf("profile for player %s not found", input.PlayerID)
	}

	return &GetOutput{Profile: &p}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Profile == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}
	if input.Profile.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.Profile.Balance < 0 {
		return nil, errors.InvalidArgument(errNegativeCoins)
	}

	data, err := json.Marshal(input.Profile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal profile")
	}

	key := profileKeyPrefix + input.Profile.PlayerID
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save profile")
	}

	return &SaveOutput{Profile: input.Profile}, nil
}
