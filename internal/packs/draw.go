package packs

import (
	"math/rand"
)

// Draw picks DrawCount creature ids from the pack's pool. Each slot is an
// independent weighted pick, so the result is a pure function of the pack
// definition and the rng state. Every returned id is a member of the pool.
func Draw(pack *StarterPack, rng *rand.Rand) []string {
	total := 0
	for _, entry := range pack.Pool {
		total += entry.Weight
	}

	drawn := make([]string, 0, pack.DrawCount)
	for i := 0; i < pack.DrawCount; i++ {
		roll := rng.Intn(total)
		for _, entry := range pack.Pool {
			roll -= entry.Weight
			if roll < 0 {
				drawn = append(drawn, entry.CreatureID)
				break
			}
		}
	}
	return drawn
}
