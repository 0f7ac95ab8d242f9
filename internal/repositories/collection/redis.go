package collection

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
	cardKeyPrefix    = "card:"
	ownerIndexPrefix = "card:owner:"

	errInstanceNil     = "instance cannot be nil"
	errInstanceIDEmpty = "instance ID cannot be empty"
	errOwnerIDEmpty    = "owner ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis collection repository.
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

// NewRedis creates a new Redis-backed collection repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{client: cfg.Client}, nil
}

func validateInstance(inst *entities.CardInstance) error {
	if inst == nil {
		return errors.InvalidArgument(errInstanceNil)
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", inst.ID, vb)
	errors.ValidateRequired("OwnerID", inst.OwnerID, vb)
	errors.ValidateRequired("AcquiredCreatureID", inst.AcquiredCreatureID, vb)
	errors.ValidateRequired("CurrentCreatureID", inst.CurrentCreatureID, vb)
	return vb.Build()
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}

	key := cardKeyPrefix + input.ID
	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("card instance %s not found", input.ID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get card instance")
	}

	var inst entities.CardInstance
	if err := json.Unmarshal([]byte(result), &inst); err != nil {
		// Corrupt stored bytes are recoverable: prune the key and
		// report the instance as absent.
		slog.WarnContext(ctx, "discarding corrupt card record",
			"instance_id", input.ID,
			"error", err.Error())
		r.client.Del(ctx, key)
		return nil, errors.NotFoundf("card instance %s not found", input.ID)
	}

	return &GetOutput{Instance: &inst}, nil
}

func (r *redisRepository) AddBatch(ctx context.Context, input AddBatchInput) (*AddBatchOutput, error) {
	if len(input.Instances) == 0 {
		return nil, errors.InvalidArgument("instances cannot be empty")
	}
	for _, inst := range input.Instances {
		if err := validateInstance(inst); err != nil {
			return nil, err
		}
	}

	// Reject duplicates before writing anything.
	for _, inst := range input.Instances {
		exists, err := r.client.Exists(ctx, cardKeyPrefix+inst.ID).Result()
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to check existence")
		}
		if exists > 0 {
			return nil, errors.AlreadyExistsf("card instance %s already exists", inst.ID)
		}
	}

	pipe := r.client.TxPipeline()
	for _, inst := range input.Instances {
		data, err := json.Marshal(inst)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal card instance %s", inst.ID)
		}
		pipe.Set(ctx, cardKeyPrefix+inst.ID, data, 0)
		pipe.SAdd(ctx, ownerIndexPrefix+inst.OwnerID, inst.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store card instances")
	}

	return &AddBatchOutput{Instances: input.Instances}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateInstance(input.Instance); err != nil {
		return nil, err
	}

	key := cardKeyPrefix + input.Instance.ID
	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to check existence")
	}
	if exists == 0 {
		return nil, errors.NotFoundf("card instance %s not found", input.Instance.ID)
	}

	data, err := json.Marshal(input.Instance)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal card instance")
	}

	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to update card instance")
	}

	return &UpdateOutput{Instance: input.Instance}, nil
}

func (r *redisRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}

	// Get the instance first to find its owner index entry.
	getOutput, err := r.Get(ctx, GetInput{ID: input.ID})
	if err != nil {
		return nil, err
	}
	inst := getOutput.Instance

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, cardKeyPrefix+input.ID)
	pipe.SRem(ctx, ownerIndexPrefix+inst.OwnerID, input.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to remove card instance")
	}

	return &RemoveOutput{Removed: inst}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	indexKey := ownerIndexPrefix + input.OwnerID
	instanceIDs, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read owner index")
	}

	instances := make([]*entities.CardInstance, 0, len(instanceIDs))
	for _, id := range instanceIDs {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			// Missing or corrupt entries are pruned from the index
			// and skipped; the rest of the collection still loads.
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "pruning stale owner index entry",
					"instance_id", id,
					"owner_id", input.OwnerID)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get card instance %s", id)
		}
		instances = append(instances, getOutput.Instance)
	}

	slog.DebugContext(ctx, "listed collection",
		"owner_id", input.OwnerID,
		"count", len(instances))

	return &ListByOwnerOutput{Instances: instances}, nil
}
