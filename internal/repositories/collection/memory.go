package collection

import (
	"context"
	"sync"

	"github.com/packvault/collection-api/internal/entities"
	"github.com/packvault/collection-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. It backs
// the degraded mode used when durable storage is unavailable, and tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	store   map[string]entities.CardInstance
	byOwner map[string]map[string]struct{}
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store:   make(map[string]entities.CardInstance),
		byOwner: make(map[string]map[string]struct{}),
	}
}

// Get retrieves a card instance by ID
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	inst, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("card instance %s not found", input.ID)
	}

	snapshot := inst
	return &GetOutput{Instance: &snapshot}, nil
}

// AddBatch stores a batch of new card instances
func (r *InMemoryRepository) AddBatch(ctx context.Context, input AddBatchInput) (*AddBatchOutput, error) {
	if len(input.Instances) == 0 {
		return nil, errors.InvalidArgument("instances cannot be empty")
	}
	for _, inst := range input.Instances {
		if err := validateInstance(inst); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, inst := range input.Instances {
		if _, exists := r.store[inst.ID]; exists {
			return nil, errors.AlreadyExistsf("card instance %s already exists", inst.ID)
		}
	}

	for _, inst := range input.Instances {
		r.store[inst.ID] = *inst
		if r.byOwner[inst.OwnerID] == nil {
			r.byOwner[inst.OwnerID] = make(map[string]struct{})
		}
		r.byOwner[inst.OwnerID][inst.ID] = struct{}{}
	}

	return &AddBatchOutput{Instances: input.Instances}, nil
}

// Update overwrites an existing card instance snapshot
func (r *InMemoryRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateInstance(input.Instance); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Instance.ID]; !exists {
		return nil, errors.NotFoundf("card instance %s not found", input.Instance.ID)
	}

	r.store[input.Instance.ID] = *input.Instance

	return &UpdateOutput{Instance: input.Instance}, nil
}

// Remove deletes a card instance
func (r *InMemoryRepository) Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errInstanceIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	inst, exists := r.store[input.ID]
	if !exists {
		return nil, errors.NotFoundf("card instance %s not found", input.ID)
	}

	delete(r.store, input.ID)
	if owned := r.byOwner[inst.OwnerID]; owned != nil {
		delete(owned, input.ID)
	}

	removed := inst
	return &RemoveOutput{Removed: &removed}, nil
}

// ListByOwner retrieves all card instances owned by a player
func (r *InMemoryRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	instances := make([]*entities.CardInstance, 0, len(r.byOwner[input.OwnerID]))
	for id := range r.byOwner[input.OwnerID] {
		if inst, exists := r.store[id]; exists {
			snapshot := inst
			instances = append(instances, &snapshot)
		}
	}

	return &ListByOwnerOutput{Instances: instances}, nil
}
