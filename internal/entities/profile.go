package entities

// Profile holds a player's identity and coin balance. The balance is only
// mutated through economy operations and never goes below zero.
type Profile struct {
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Balance   int64  `json:"balance"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
}

// CanAfford reports whether the balance covers the given price.
func (p *Profile) CanAfford(price int64) bool {
	return p.Balance >= price
}
