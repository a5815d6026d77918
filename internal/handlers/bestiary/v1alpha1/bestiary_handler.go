package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/orchestrators/creature"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

// BestiaryHandlerConfig holds dependencies for the bestiary handler
type BestiaryHandlerConfig struct {
	CreatureService creature.Service
}

// Validate ensures all required dependencies are present
func (c *BestiaryHandlerConfig) Validate() error {
	if c == nil || c.CreatureService == nil {
		return errors.InvalidArgument("creature service is required")
	}
	return nil
}

// BestiaryHandler implements the bestiary gRPC service
type BestiaryHandler struct {
	creatureService creature.Service
}

var _ BestiaryServiceServer = (*BestiaryHandler)(nil)

// NewBestiaryHandler creates a new bestiary handler with the given configuration
func NewBestiaryHandler(cfg *BestiaryHandlerConfig) (*BestiaryHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &BestiaryHandler{
		creatureService: cfg.CreatureService,
	}, nil
}

// ListCreatures returns a page of the bestiary
func (h *BestiaryHandler) ListCreatures(
	ctx context.Context,
	req *ListCreaturesRequest,
) (*ListCreaturesResponse, error) {
	field, err := creaturecache.ParseSortField(req.SortField)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	direction, err := creaturecache.ParseDirection(req.Direction)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	filters, err := parseFilters(req.Filters)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.creatureService.ListCreatures(ctx, &creature.ListCreaturesInput{
		SortField:      field,
		Direction:      direction,
		Cursor:         req.Cursor,
		PageSize:       req.PageSize,
		Filters:        filters,
		NameContains:   req.NameContains,
		FamilyContains: req.FamilyContains,
		MinHP:          req.MinHP,
		MaxHP:          req.MaxHP,
		MinLevel:       req.MinLevel,
		MaxLevel:       req.MaxLevel,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ListCreaturesResponse{
		Creatures:  convertCreaturesToMessages(output.Creatures),
		NextCursor: output.NextCursor,
		Total:      output.Total,
	}, nil
}

// GetCreature returns a single creature
func (h *BestiaryHandler) GetCreature(
	ctx context.Context,
	req *GetCreatureRequest,
) (*GetCreatureResponse, error) {
	if req.ID <= 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("id is required"))
	}

	output, err := h.creatureService.GetCreature(ctx, &creature.GetCreatureInput{ID: req.ID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetCreatureResponse{
		Creature: convertCreatureToMessage(output.Creature),
	}, nil
}

// ListFilterValues lists the known values of a dimension
func (h *BestiaryHandler) ListFilterValues(
	ctx context.Context,
	req *ListFilterValuesRequest,
) (*ListFilterValuesResponse, error) {
	if req.Dimension == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("dimension is required"))
	}
	d, err := bestiary.ParseDimension(req.Dimension)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	output, err := h.creatureService.ListFilterValues(ctx, &creature.ListFilterValuesInput{Dimension: d})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &ListFilterValuesResponse{
		Dimension: d.String(),
		Values:    output.Values,
	}, nil
}
