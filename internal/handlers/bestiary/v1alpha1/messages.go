package v1alpha1

// Creature is the wire form of a bestiary creature
type Creature struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	HP            int      `json:"hp"`
	Level         int      `json:"level"`
	Alignment     string   `json:"alignment"`
	Size          string   `json:"size"`
	Family        string   `json:"family"`
	Rarity        string   `json:"rarity"`
	IsMelee       bool     `json:"is_melee"`
	IsRanged      bool     `json:"is_ranged"`
	IsSpellCaster bool     `json:"is_spell_caster"`
	Sources       []string `json:"sources,omitempty"`
	ArchiveLink   string   `json:"archive_link"`
	Variant       string   `json:"variant,omitempty"`
}

// GetEncounterInfoRequest rates a fight
type GetEncounterInfoRequest struct {
	PartyLevels []int `json:"party_levels"`
	EnemyLevels []int `json:"enemy_levels"`
}

// GetEncounterInfoResponse carries the XP total and its tier
type GetEncounterInfoResponse struct {
	XP         int            `json:"xp"`
	Difficulty string         `json:"difficulty"`
	Thresholds map[string]int `json:"thresholds"`
}

// GenerateEncounterRequest asks for a random encounter
type GenerateEncounterRequest struct {
	PartyLevels []int `json:"party_levels"`
	// Difficulty is a tier name; empty picks one at random
	Difficulty     string `json:"difficulty,omitempty"`
	AdventureGroup string `json:"adventure_group,omitempty"`
	// Filters maps dimension names to accepted values
	Filters      map[string][]string `json:"filters,omitempty"`
	MinCreatures int                 `json:"min_creatures,omitempty"`
	MaxCreatures int                 `json:"max_creatures,omitempty"`
	AllowWeak    bool                `json:"allow_weak,omitempty"`
	AllowElite   bool                `json:"allow_elite,omitempty"`
}

// GenerateEncounterResponse is a generated encounter
type GenerateEncounterResponse struct {
	EncounterID string         `json:"encounter_id"`
	Creatures   []*Creature    `json:"creatures"`
	Count       int            `json:"count"`
	XP          int            `json:"xp"`
	Difficulty  string         `json:"difficulty"`
	Thresholds  map[string]int `json:"thresholds"`
}

// ListCreaturesRequest asks for a page of the bestiary
type ListCreaturesRequest struct {
	SortField      string              `json:"sort_field,omitempty"`
	Direction      string              `json:"direction,omitempty"`
	Cursor         int                 `json:"cursor,omitempty"`
	PageSize       int                 `json:"page_size,omitempty"`
	Filters        map[string][]string `json:"filters,omitempty"`
	NameContains   string              `json:"name_contains,omitempty"`
	FamilyContains string              `json:"family_contains,omitempty"`
	MinHP          *int                `json:"min_hp,omitempty"`
	MaxHP          *int                `json:"max_hp,omitempty"`
	MinLevel       *int                `json:"min_level,omitempty"`
	MaxLevel       *int                `json:"max_level,omitempty"`
}

// ListCreaturesResponse is one page of the bestiary
type ListCreaturesResponse struct {
	Creatures  []*Creature `json:"creatures"`
	NextCursor int         `json:"next_cursor"`
	Total      int         `json:"total"`
}

// GetCreatureRequest asks for a single creature
type GetCreatureRequest struct {
	ID int64 `json:"id"`
}

// GetCreatureResponse carries a single creature
type GetCreatureResponse struct {
	Creature *Creature `json:"creature"`
}

// ListFilterValuesRequest asks for the values of a dimension
type ListFilterValuesRequest struct {
	Dimension string `json:"dimension"`
}

// ListFilterValuesResponse lists the values of a dimension
type ListFilterValuesResponse struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
}
