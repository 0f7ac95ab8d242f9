package catalog

// Creature levels as reported by the upstream catalog. The catalog is the
// source of truth; unknown levels are passed through untouched.
const (
	LevelRookie   = "Rookie"
	LevelChampion = "Champion"
	LevelUltimate = "Ultimate"
	LevelMega     = "Mega"
)

// EvolutionOption is a directed, conditioned edge from one catalog form to
// another.
type EvolutionOption struct {
	// CreatureID is the catalog id of the target form.
	CreatureID string `json:"creature_id"`
	// Condition is the human-readable unlock condition.
	Condition string `json:"condition"`
	// Image is the unlock illustration for the target form.
	Image string `json:"image"`
}

// CreatureEntry is a read-only catalog record describing one creature form
// and its outgoing evolution edges. An empty NextEvolutions list marks a
// terminal form.
type CreatureEntry struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Image          string            `json:"image"`
	Level          string            `json:"level"`
	Type           string            `json:"type"`
	Attribute      string            `json:"attribute"`
	Field          string            `json:"field"`
	Description    string            `json:"description"`
	NextEvolutions []EvolutionOption `json:"next_evolutions"`
}

// CanEvolveTo reports whether targetID is a legal next form for this entry.
func (e *CreatureEntry) CanEvolveTo(targetID string) bool {
	for _, opt := range e.NextEvolutions {
		if opt.CreatureID == targetID {
			return true
		}
	}
	return false
}

// NextEvolutionIDs returns the catalog ids of all legal next forms.
func (e *CreatureEntry) NextEvolutionIDs() []string {
	ids := make([]string, 0, len(e.NextEvolutions))
	for _, opt := range e.NextEvolutions {
		ids = append(ids, opt.CreatureID)
	}
	return ids
}
