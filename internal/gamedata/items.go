package gamedata

// ItemDef defines an item base template loaded from JSON. Generated items
// take their name, slot, icon and stat curve from the template; rarity,
// level and enchantment are rolled per item.
type ItemDef struct {
	ID          string    `json:"id"`          // Unique identifier (e.g., "iron_sword")
	Name        string    `json:"name"`        // Display name (e.g., "Iron Sword")
	Slot        string    `json:"slot"`        // Equip slot name (e.g., "weapon")
	Icon        string    `json:"icon"`        // Display icon
	Base        StatBlock `json:"base"`        // Level-1 stats
	PerLevel    StatBlock `json:"perLevel"`    // Flat per-level increments
	SetID       string    `json:"setId"`       // Optional set affiliation
	SpawnWeight int       `json:"spawnWeight"` // Relative drop frequency
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items []ItemDef `json:"items"`
}

// LoadItems loads item base definitions from the embedded items.json file.
func LoadItems() ([]ItemDef, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	return file.Items, nil
}
