package profile

import (
	"context"
	"sync"

	"github.com/packvault/collection-api/internal/entities"
	"github.com/packvault/collection-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage. It backs
// the degraded mode used when durable storage is unavailable, and tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]entities.Profile
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]entities.Profile),
	}
}

// Get retrieves a profile by player ID
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.store[input.PlayerID]
	if !exists {
		return nil, errors.NotFoundf("profile for player %s not found", input.PlayerID)
	}

	// Return a copy to prevent external modification
	snapshot := p
	return &GetOutput{Profile: &snapshot}, nil
}

// Save writes the full profile snapshot
func (r *InMemoryRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Profile == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}
	if input.Profile.PlayerID == "" {
		return nil, errors.InvalidArgument(errPlayerIDEmpty)
	}
	if input.Profile.Balance < 0 {
		return nil, errors.InvalidArgument(errNegativeCoins)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Profile.PlayerID] = *input.Profile

	return &SaveOutput{Profile: input.Profile}, nil
}
