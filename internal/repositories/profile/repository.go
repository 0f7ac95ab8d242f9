// Package profile provides the interface for player profile persistence
package profile

//go:generate mockgen -destination=mock/mock_repository.go -package=profilemock github.com/packvault/collection-api/internal/repositories/profile Repository

import (
	"context"

	"github.com/packvault/collection-api/internal/entities"
)

// Repository defines the interface for profile persistence.
//
// Malformed stored content is recoverable by contract: implementations must
// treat an unparseable profile as absent (NotFound) rather than failing, so
// the engine can re-initialize defaults.
type Repository interface {
	// Get retrieves a profile by player ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the profile doesn't exist or is unreadable
	// Returns errors.Unavailable when storage cannot be reached
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save writes the full profile snapshot, overwriting any prior value
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Unavailable when storage cannot be reached
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)
}

// GetInput defines the input for getting a profile
type GetInput struct {
	PlayerID string
}

// GetOutput defines the output for getting a profile
type GetOutput struct {
	Profile *entities.Profile
}

// SaveInput defines the input for saving a profile
type SaveInput struct {
	Profile *entities.Profile
}

// SaveOutput defines the output for saving a profile
type SaveOutput struct {
	Profile *entities.Profile
}
