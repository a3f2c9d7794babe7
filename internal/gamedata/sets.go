package gamedata

// SetTier is one piece-count threshold of an equipment set. Pieces is always
// at least 2; bonuses at lower thresholds stay active when higher ones
// unlock.
type SetTier struct {
	Pieces  int       `json:"pieces"`
	Bonus   StatBlock `json:"bonus"`
	Special string    `json:"special,omitempty"` // Optional named effect label
}

// SetDef defines a multi-piece equipment set loaded from JSON.
type SetDef struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Tiers []SetTier `json:"tiers"`
}

// SetsFile represents the structure of sets.json.
type SetsFile struct {
	Sets []SetDef `json:"sets"`
}

// LoadSets loads set definitions from the embedded sets.json file.
func LoadSets() ([]SetDef, error) {
	file, err := Load[SetsFile]("sets.json")
	if err != nil {
		return nil, err
	}
	return file.Sets, nil
}
