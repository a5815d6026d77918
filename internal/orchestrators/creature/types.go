package creature

import (
	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

// Page size limits for ListCreatures
const (
	DefaultPageSize = 100
	MaxPageSize     = 100
)

// ListCreaturesInput defines the request for a page of the bestiary
type ListCreaturesInput struct {
	SortField creaturecache.SortField
	Direction creaturecache.Direction
	Cursor    int
	// PageSize is clamped to [1, MaxPageSize]; zero selects DefaultPageSize
	PageSize int

	// Filters selects by category value
	Filters creaturecache.Filters
	// NameContains and FamilyContains match case-insensitive substrings
	NameContains   string
	FamilyContains string
	MinHP          *int
	MaxHP          *int
	MinLevel       *int
	MaxLevel       *int
}

// ListCreaturesOutput defines a page of the bestiary
type ListCreaturesOutput struct {
	Creatures []*bestiary.Creature
	// NextCursor equals Total on the last page
	NextCursor int
	Total      int
}

// GetCreatureInput defines the request for a single creature
type GetCreatureInput struct {
	ID int64
}

// GetCreatureOutput defines the response for a single creature
type GetCreatureOutput struct {
	Creature *bestiary.Creature
}

// ListFilterValuesInput defines the request for the values of a dimension
type ListFilterValuesInput struct {
	Dimension bestiary.Dimension
}

// ListFilterValuesOutput defines the known values of a dimension
type ListFilterValuesOutput struct {
	Values []string
}
