package gamedata

// StatBlock is the raw stat shape shared by data definitions. The engine
// packages convert it into their own stat types.
type StatBlock struct {
	HP   int `json:"hp"`
	ATK  int `json:"atk"`
	DEF  int `json:"def"`
	SPD  int `json:"spd"`
	CRIT int `json:"crit"`
}

// EnemyDef defines an enemy template loaded from JSON. Base stats are the
// level-1 values; PerLevel is the flat increment applied per level above 1.
type EnemyDef struct {
	ID          string         `json:"id"`          // Unique identifier (e.g., "goblin")
	Name        string         `json:"name"`        // Display name (e.g., "Goblin")
	Glyph       string         `json:"glyph"`       // Single character for rendering (e.g., "g")
	Color       string         `json:"color"`       // Hex color code (e.g., "#00FF00")
	Base        StatBlock      `json:"base"`        // Level-1 stats
	PerLevel    StatBlock      `json:"perLevel"`    // Flat per-level increments
	Element     string         `json:"element"`     // Element its attacks carry
	Resistances map[string]int `json:"resistances"` // Element -> percentage (negative = vulnerable)
	Weaknesses  []string       `json:"weaknesses"`  // Elements this enemy takes 1.5x from
	SpawnWeight int            `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
