// Package packs defines the immutable starter pack catalog and the card
// draw. Pack definitions are static configuration, not player-mutable data.
package packs

import (
	"github.com/packvault/collection-api/internal/errors"
)

// Tier codes for starter packs
const (
	TierCommon   = "C"
	TierBalanced = "B"
	TierAdvanced = "A"
	TierRare     = "R"
)

// PoolEntry is one creature a pack can draw, with its weight for the
// pack's tier. Weights are relative within a single pack.
type PoolEntry struct {
	CreatureID string
	Weight     int
}

// StarterPack is a purchasable bundle definition. The pool and draw count
// are fixed per pack; a draw never produces a creature outside the pool.
type StarterPack struct {
	ID          string
	Name        string
	Tier        string
	Price       int64
	Image       string
	Description string
	DrawCount   int
	Pool        []PoolEntry
}

// Validate checks the structural invariants of a pack definition.
func (p *StarterPack) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", p.ID, vb)
	errors.ValidateRequired("Name", p.Name, vb)
	errors.ValidateEnum("Tier", p.Tier, []string{TierCommon, TierBalanced, TierAdvanced, TierRare}, vb)
	errors.ValidatePositive("Price", p.Price, vb)
	errors.ValidatePositive("DrawCount", int64(p.DrawCount), vb)
	if len(p.Pool) == 0 {
		vb.RequiredField("Pool")
	}
	for _, entry := range p.Pool {
		if entry.Weight <= 0 {
			vb.Fieldf("Pool", "entry %s has non-positive weight", entry.CreatureID)
		}
	}
	return vb.Build()
}

// Catalog is the set of purchasable packs, keyed by pack id.
type Catalog struct {
	packs map[string]*StarterPack
	order []string
}

// NewCatalog builds a catalog from pack definitions.
func NewCatalog(defs []*StarterPack) (*Catalog, error) {
	c := &Catalog{packs: make(map[string]*StarterPack, len(defs))}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid pack definition %s", def.ID)
		}
		if _, exists := c.packs[def.ID]; exists {
			return nil, errors.AlreadyExistsf("duplicate pack definition %s", def.ID)
		}
		c.packs[def.ID] = def
		c.order = append(c.order, def.ID)
	}
	return c, nil
}

// Find resolves a pack by id.
// Returns errors.CodeUnknownPack when the id doesn't resolve.
func (c *Catalog) Find(packID string) (*StarterPack, error) {
	if packID == "" {
		return nil, errors.InvalidArgument("pack ID cannot be empty")
	}
	pack, exists := c.packs[packID]
	if !exists {
		return nil, errors.UnknownPackf("pack %s not found", packID)
	}
	return pack, nil
}

// List returns all packs in definition order.
func (c *Catalog) List() []*StarterPack {
	out := make([]*StarterPack, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.packs[id])
	}
	return out
}

// DefaultPacks returns the built-in starter pack catalog.
func DefaultPacks() []*StarterPack {
	return []*StarterPack{
		{
			ID:          "pack_common",
			Name:        "Common Pack",
			Tier:        TierCommon,
			Price:       200,
			Image:       "packs/common.png",
			Description: "4 Rookie cards to start your collection.",
			DrawCount:   4,
			Pool: []PoolEntry{
				{CreatureID: "agumon", Weight: 30},
				{CreatureID: "gabumon", Weight: 30},
				{CreatureID: "patamon", Weight: 25},
				{CreatureID: "gomamon", Weight: 15},
			},
		},
		{
			ID:          "pack_balanced",
			Name:        "Balanced Pack",
			Tier:        TierBalanced,
			Price:       500,
			Image:       "packs/balanced.png",
			Description: "4 cards with a fair shot at a Champion.",
			DrawCount:   4,
			Pool: []PoolEntry{
				{CreatureID: "agumon", Weight: 25},
				{CreatureID: "gabumon", Weight: 25},
				{CreatureID: "greymon", Weight: 15},
				{CreatureID: "garurumon", Weight: 15},
				{CreatureID: "angemon", Weight: 20},
			},
		},
		{
			ID:          "pack_advanced",
			Name:        "Advanced Pack",
			Tier:        TierAdvanced,
			Price:       1200,
			Image:       "packs/advanced.png",
			Description: "4 cards skewed toward Champion forms.",
			DrawCount:   4,
			Pool: []PoolEntry{
				{CreatureID: "greymon", Weight: 30},
				{CreatureID: "garurumon", Weight: 30},
				{CreatureID: "angemon", Weight: 25},
				{CreatureID: "metalgreymon", Weight: 15},
			},
		},
		{
			ID:          "pack_rare",
			Name:        "Rare Pack",
			Tier:        TierRare,
			Price:       3000,
			Image:       "packs/rare.png",
			Description: "4 cards with guaranteed Ultimate potential.",
			DrawCount:   4,
			Pool: []PoolEntry{
				{CreatureID: "metalgreymon", Weight: 35},
				{CreatureID: "weregarurumon", Weight: 35},
				{CreatureID: "magnaangemon", Weight: 20},
				{CreatureID: "wargreymon", Weight: 10},
			},
		},
	}
}
