// Package collection provides the interface for card instance persistence
package collection

//go:generate mockgen -destination=mock/mock_repository.go -package=collectionmock github.com/packvault/collection-api/internal/repositories/collection Repository

import (
	"context"

	"github.com/packvault/collection-api/internal/entities"
)

// Repository defines the interface for card instance persistence.
//
// Instances are indexed per owner. Corrupt stored entries are recoverable by
// contract: implementations skip them with a warning and prune them from the
// owner index rather than failing the whole read.
type Repository interface {
	// Get retrieves a card instance by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the instance doesn't exist or is unreadable
	// Returns errors.Unavailable when storage cannot be reached
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// AddBatch stores a batch of new card instances and indexes them by owner.
	// The batch is written atomically; it either fully applies or not at all.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if any instance ID is already present
	// Returns errors.Unavailable when storage cannot be reached
	AddBatch(ctx context.Context, input AddBatchInput) (*AddBatchOutput, error)

	// Update overwrites an existing card instance snapshot
	// Returns errors.NotFound if the instance doesn't exist
	// Returns errors.Unavailable when storage cannot be reached
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Remove deletes a card instance and its owner index entry
	// Returns errors.NotFound if the instance doesn't exist
	// Returns errors.Unavailable when storage cannot be reached
	Remove(ctx context.Context, input RemoveInput) (*RemoveOutput, error)

	// ListByOwner retrieves all card instances owned by a player
	// Returns errors.InvalidArgument for empty owner IDs
	// Returns errors.Unavailable when storage cannot be reached
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// GetInput defines the input for getting a card instance
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a card instance
type GetOutput struct {
	Instance *entities.CardInstance
}

// AddBatchInput defines the input for storing new card instances
type AddBatchInput struct {
	Instances []*entities.CardInstance
}

// AddBatchOutput defines the output for storing new card instances
type AddBatchOutput struct {
	Instances []*entities.CardInstance
}

// UpdateInput defines the input for updating a card instance
type UpdateInput struct {
	Instance *entities.CardInstance
}

// UpdateOutput defines the output for updating a card instance
type UpdateOutput struct {
	Instance *entities.CardInstance
}

// RemoveInput defines the input for removing a card instance
type RemoveInput struct {
	ID string
}

// RemoveOutput defines the output for removing a card instance
type RemoveOutput struct {
	// Removed is the instance that was deleted, for compensation on
	// partially failed multi-store transactions.
	Removed *entities.CardInstance
}

// ListByOwnerInput defines the input for listing instances by owner
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing instances by owner
type ListByOwnerOutput struct {
	Instances []*entities.CardInstance
}
