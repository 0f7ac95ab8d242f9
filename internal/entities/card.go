// Package entities defines the domain types owned by the collection API.
package entities

// CardInstance is a single player-owned card. It is distinct from the
// catalog entry it currently represents: a player may own several copies of
// the same creature, and evolution changes the represented creature without
// changing the instance's identity.
type CardInstance struct {
	// ID is the stable instance identifier, assigned at acquisition and
	// preserved across evolutions.
	ID string `json:"id"`
	// OwnerID is the player that owns this instance.
	OwnerID string `json:"owner_id"`
	// AcquiredCreatureID is the catalog id the instance was drawn as.
	AcquiredCreatureID string `json:"acquired_creature_id"`
	// CurrentCreatureID is the catalog id of the form the instance
	// currently represents. Starts equal to AcquiredCreatureID and only
	// changes through a legal evolution edge.
	CurrentCreatureID string `json:"current_creature_id"`
	// AcquiredAt is the acquisition timestamp (unix seconds), preserved
	// across evolutions.
	AcquiredAt int64 `json:"acquired_at"`
}

// Evolved returns true if the instance has moved past its acquired form.
func (c *CardInstance) Evolved() bool {
	return c.CurrentCreatureID != c.AcquiredCreatureID
}
