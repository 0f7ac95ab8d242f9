// Package economy implements the economy engine: the sole authority for
// mutating coin balances and the card collection. Handlers call it; it calls
// repositories, the pack catalog, the creature catalog, and the request
// coordinator. Each operation validates against the latest persisted snapshot
// and either fully applies or leaves state untouched.
package economy

//go:generate mockgen -destination=mock/mock_service.go -package=economymock github.com/packvault/collection-api/internal/orchestrators/economy Service

import (
	"context"

	"github.com/packvault/collection-api/internal/entities"
	"github.com/packvault/collection-api/internal/packs"
)

// Service defines the economy engine operations
type Service interface {
	// PurchasePack debits the pack price and adds the drawn card instances
	// to the player's collection.
	// Returns errors.CodeUnknownPack if the pack id doesn't resolve
	// Returns errors.CodeInsufficientFunds if the balance doesn't cover the
	// price; the failure changes nothing and is safely retryable
	PurchasePack(ctx context.Context, input *PurchasePackInput) (*PurchasePackOutput, error)

	// EvolveCard replaces the instance's current form with a legal next
	// evolution. Identity and acquisition timestamp are preserved; evolution
	// costs no coins.
	// Returns errors.CodeNotFound if the instance is absent or foreign-owned
	// Returns errors.CodeInvalidEvolution if the target is not in the current
	// form's next-evolutions list
	// Returns errors.CodeAlreadyInProgress if the instance already has a
	// pending operation
	// Returns errors.CodeCatalogUnavailable on catalog failure, no mutation
	EvolveCard(ctx context.Context, input *EvolveCardInput) (*EvolveCardOutput, error)

	// SellCard removes the instance and credits the sale value of its
	// current form. The value is recomputed server-side from the catalog
	// level; a disagreeing claimed value fails the sale.
	// Returns errors.CodeNotFound if the instance is absent or foreign-owned
	// Returns errors.CodePriceMismatch if the claimed value disagrees
	// Returns errors.CodeAlreadyInProgress if the instance already has a
	// pending operation
	SellCard(ctx context.Context, input *SellCardInput) (*SellCardOutput, error)

	// GetProfile loads the player's profile, initializing it with the
	// welcome grant on first contact. Corrupt stored bytes behave as absent.
	GetProfile(ctx context.Context, input *GetProfileInput) (*GetProfileOutput, error)

	// ListCollection returns the latest instance snapshots for the player.
	ListCollection(ctx context.Context, input *ListCollectionInput) (*ListCollectionOutput, error)
}

// PurchasePackInput defines the input for purchasing a pack
type PurchasePackInput struct {
	PlayerID string
	PackID   string
}

// PurchasePackOutput defines the output for purchasing a pack
type PurchasePackOutput struct {
	// Pack is the resolved pack definition.
	Pack *packs.StarterPack
	// Instances are the newly drawn card instances.
	Instances []*entities.CardInstance
	// Profile is the post-debit profile snapshot.
	Profile *entities.Profile
}

// EvolveCardInput defines the input for evolving a card instance
type EvolveCardInput struct {
	PlayerID         string
	InstanceID       string
	TargetCreatureID string
}

// EvolveCardOutput defines the output for evolving a card instance
type EvolveCardOutput struct {
	Instance *entities.CardInstance
}

// SellCardInput defines the input for selling a card instance
type SellCardInput struct {
	PlayerID   string
	InstanceID string
	// ClaimedValue is the sale value the caller displayed to the player.
	// It must match the value recomputed from the current form's level.
	ClaimedValue int64
}

// SellCardOutput defines the output for selling a card instance
type SellCardOutput struct {
	// Value is the credited sale value.
	Value int64
	// Profile is the post-credit profile snapshot.
	Profile *entities.Profile
}

// GetProfileInput defines the input for loading a profile
type GetProfileInput struct {
	PlayerID string
}

// GetProfileOutput defines the output for loading a profile
type GetProfileOutput struct {
	Profile *entities.Profile
}

// ListCollectionInput defines the input for listing a player's collection
type ListCollectionInput struct {
	PlayerID string
}

// ListCollectionOutput defines the output for listing a player's collection
type ListCollectionOutput struct {
	Instances []*entities.CardInstance
}
