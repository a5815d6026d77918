// Package creature provides the interface for bestiary persistence
package creature

//go:generate mockgen -destination=mock/mock_repository.go -package=creaturemock github.com/KirkDiggler/rpg-encounters/internal/repositories/creature Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
)

// KeyPattern matches every creature record
const KeyPattern = creatureKeyPrefix + "*"

// Repository defines the interface for creature persistence
type Repository interface {
	// ListAll returns every creature whose key matches the pattern
	// Returns errors.Unavailable when the store cannot be reached
	ListAll(ctx context.Context, input *ListAllInput) (*ListAllOutput, error)

	// Get retrieves a single creature
	// Returns errors.InvalidArgument for non-positive ids
	// Returns errors.NotFound if the creature does not exist
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// IDsByCategory returns the ids holding a value in a dimension, ascending
	IDsByCategory(ctx context.Context, input *IDsByCategoryInput) (*IDsByCategoryOutput, error)

	// Put stores a creature and updates every category set it belongs to
	Put(ctx context.Context, input *PutInput) (*PutOutput, error)

	// ListCategoryValues returns the known values of a dimension in listing order
	ListCategoryValues(ctx context.Context, input *ListCategoryValuesInput) (*ListCategoryValuesOutput, error)
}

// ListAllInput defines the input for listing creatures
type ListAllInput struct {
	KeyPattern string
}

// ListAllOutput defines the output for listing creatures
type ListAllOutput struct {
	Creatures []*bestiary.Creature
	// Skipped counts records that could not be decoded
	Skipped int
}

// GetInput defines the input for getting a creature
type GetInput struct {
	ID int64
}

// GetOutput defines the output for getting a creature
type GetOutput struct {
	Creature *bestiary.Creature
}

// IDsByCategoryInput defines the input for a category lookup
type IDsByCategoryInput struct {
	Dimension bestiary.Dimension
	Value     string
}

// IDsByCategoryOutput defines the output for a category lookup
type IDsByCategoryOutput struct {
	IDs []int64
}

// PutInput defines the input for storing a creature
type PutInput struct {
	Creature *bestiary.Creature
}

// PutOutput defines the output for storing a creature
type PutOutput struct {
	Creature *bestiary.Creature
}

// ListCategoryValuesInput defines the input for listing dimension values
type ListCategoryValuesInput struct {
	Dimension bestiary.Dimension
}

// ListCategoryValuesOutput defines the output for listing dimension values
type ListCategoryValuesOutput struct {
	Values []string
}
