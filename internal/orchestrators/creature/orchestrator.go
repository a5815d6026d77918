// Package creature implements the bestiary query orchestrator
package creature

//go:generate mockgen -destination=mock/mock_service.go -package=creaturemock github.com/KirkDiggler/rpg-encounters/internal/orchestrators/creature Service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/pagination"
	creaturerepo "github.com/KirkDiggler/rpg-encounters/internal/repositories/creature"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

// Service defines the interface for bestiary queries
type Service interface {
	// ListCreatures returns a sorted, filtered page of creatures
	// Returns errors.Unavailable before the creature cache is first built
	ListCreatures(ctx context.Context, input *ListCreaturesInput) (*ListCreaturesOutput, error)

	// GetCreature returns a single creature
	// Returns errors.NotFound if the creature does not exist
	GetCreature(ctx context.Context, input *GetCreatureInput) (*GetCreatureOutput, error)

	// ListFilterValues returns the known values of a dimension in listing order
	ListFilterValues(ctx context.Context, input *ListFilterValuesInput) (*ListFilterValuesOutput, error)
}

// SnapshotLoader returns the current creature snapshot, or nil
type SnapshotLoader interface {
	Load() *creaturecache.Snapshot
}

// Config holds the dependencies for the creature orchestrator
type Config struct {
	Snapshots SnapshotLoader
	// Repository answers lookups until the first snapshot is published
	Repository creaturerepo.Repository
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()

	if c.Snapshots == nil {
		vb.RequiredField("Snapshots")
	}
	if c.Repository == nil {
		vb.RequiredField("Repository")
	}

	return vb.Build()
}

type orchestrator struct {
	snapshots SnapshotLoader
	repo      creaturerepo.Repository
}

// NewOrchestrator creates a new creature orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		snapshots: cfg.Snapshots,
		repo:      cfg.Repository,
	}, nil
}

func validateListInput(input *ListCreaturesInput) error {
	vb := errors.NewValidationBuilder()

	errors.ValidateNonNegative("cursor", input.Cursor, vb)
	if !slices.Contains(creaturecache.SortFields(), input.SortField) {
		vb.Fieldf("sort_field", "unknown sort field %d", int(input.SortField))
	}
	if input.Direction != creaturecache.Ascending && input.Direction != creaturecache.Descending {
		vb.Fieldf("direction", "unknown direction %d", int(input.Direction))
	}
	if input.MinHP != nil && input.MaxHP != nil && *input.MinHP > *input.MaxHP {
		vb.Field("max_hp", "must not be less than min_hp")
	}
	if input.MinLevel != nil && input.MaxLevel != nil && *input.MinLevel > *input.MaxLevel {
		vb.Field("max_level", "must not be less than min_level")
	}
	for d := range input.Filters {
		if !slices.Contains(bestiary.Dimensions(), d) {
			vb.Fieldf("filters", "unknown dimension %d", int(d))
		}
	}

	return vb.Build()
}

// ListCreatures returns a sorted, filtered page of creatures
func (o *orchestrator) ListCreatures(ctx context.Context, input *ListCreaturesInput) (*ListCreaturesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateListInput(input); err != nil {
		return nil, err
	}

	snap := o.snapshots.Load()
	if snap == nil {
		return nil, errors.Unavailable("creature cache is not built yet")
	}

	view := snap.Sorted(input.SortField, input.Direction)
	if allowed, filtered := snap.Match(input.Filters); filtered || hasAttributeFilters(input) {
		view = slices.DeleteFunc(slices.Clone(view), func(c *bestiary.Creature) bool {
			return (filtered && !allowed.Has(c.ID)) || !matchesAttributes(c, input)
		})
	}

	pageSize := pagination.ClampPageSize(input.PageSize, pagination.PageSizeConfig{
		Default: DefaultPageSize,
		Max:     MaxPageSize,
	})
	start, end := pagination.Window(input.Cursor, pageSize, len(view))

	page := make([]*bestiary.Creature, 0, end-start)
	for _, c := range view[start:end] {
		page = append(page, c.Clone())
	}

	slog.DebugContext(ctx, "Listed creatures",
		"snapshot_id", snap.GetID(),
		"sort_field", input.SortField.String(),
		"direction", input.Direction.String(),
		"cursor", input.Cursor,
		"page_size", pageSize,
		"total", len(view),
	)

	return &ListCreaturesOutput{
		Creatures:  page,
		NextCursor: end,
		Total:      len(view),
	}, nil
}

func hasAttributeFilters(input *ListCreaturesInput) bool {
	return strings.TrimSpace(input.NameContains) != "" ||
		strings.TrimSpace(input.FamilyContains) != "" ||
		input.MinHP != nil || input.MaxHP != nil ||
		input.MinLevel != nil || input.MaxLevel != nil
}

func containsFold(s, substr string) bool {
	substr = strings.TrimSpace(substr)
	return substr == "" || strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func matchesAttributes(c *bestiary.Creature, input *ListCreaturesInput) bool {
	switch {
	case !containsFold(c.Name, input.NameContains):
		return false
	case !containsFold(c.Family, input.FamilyContains):
		return false
	case input.MinHP != nil && c.HP < *input.MinHP:
		return false
	case input.MaxHP != nil && c.HP > *input.MaxHP:
		return false
	case input.MinLevel != nil && c.Level < *input.MinLevel:
		return false
	case input.MaxLevel != nil && c.Level > *input.MaxLevel:
		return false
	}
	return true
}

// GetCreature returns a single creature
func (o *orchestrator) GetCreature(ctx context.Context, input *GetCreatureInput) (*GetCreatureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.ID <= 0 {
		return nil, errors.NewValidationBuilder().Field("id", "must be positive").Build()
	}

	snap := o.snapshots.Load()
	if snap == nil {
		slog.DebugContext(ctx, "Creature cache not built, reading from repository", "creature_id", input.ID)
		out, err := o.repo.Get(ctx, &creaturerepo.GetInput{ID: input.ID})
		if err != nil {
			return nil, err
		}
		return &GetCreatureOutput{Creature: out.Creature}, nil
	}

	c, ok := snap.ByID(input.ID)
	if !ok {
		return nil, errors.NotFoundf("creature %d not found", input.ID).
			WithMeta("creature_id", input.ID)
	}

	return &GetCreatureOutput{Creature: c}, nil
}

// ListFilterValues returns the known values of a dimension
func (o *orchestrator) ListFilterValues(ctx context.Context, input *ListFilterValuesInput) (*ListFilterValuesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if !slices.Contains(bestiary.Dimensions(), input.Dimension) {
		return nil, errors.NewValidationBuilder().
			Fieldf("dimension", "unknown dimension %d", int(input.Dimension)).
			Build()
	}

	snap := o.snapshots.Load()
	if snap == nil {
		slog.DebugContext(ctx, "Creature cache not built, reading filter values from repository",
			"dimension", input.Dimension.String())
		out, err := o.repo.ListCategoryValues(ctx, &creaturerepo.ListCategoryValuesInput{
			Dimension: input.Dimension,
		})
		if err != nil {
			return nil, err
		}
		return &ListFilterValuesOutput{Values: out.Values}, nil
	}

	return &ListFilterValuesOutput{Values: snap.Values(input.Dimension)}, nil
}
