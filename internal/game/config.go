package game

// Config holds dungeon run options.
type Config struct {
	// Seed for random number generation, for reproducible runs.
	// A seed of 0 means a random seed will be generated.
	Seed int64

	// RoomCount is the number of rooms per floor.
	RoomCount int

	// Difficulty multiplies the floor-derived content level.
	Difficulty float64

	// GuaranteeBoss forces a boss room on every floor.
	GuaranteeBoss bool
}

// withDefaults fills zero fields with playable defaults.
func (c Config) withDefaults() Config {
	if c.RoomCount == 0 {
		c.RoomCount = 10
	}
	if c.Difficulty == 0 {
		c.Difficulty = 1
	}
	return c
}
