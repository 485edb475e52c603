package rain

// Spawner gates drop creation. A column with an active head never spawns,
// so heads within a column never overlap.
type Spawner struct {
	Chance float64 // per-frame probability for an idle column
}

// NewSpawner returns the spawner tuned for a speed tier.
func NewSpawner(speed Speed) Spawner {
	return Spawner{Chance: speed.SpawnChance()}
}

// ShouldSpawn draws from rng only when the column is idle.
func (s Spawner) ShouldSpawn(active bool, rng Source) bool {
	if active || s.Chance <= 0 {
		return false
	}
	return rng.Float64() < s.Chance
}
