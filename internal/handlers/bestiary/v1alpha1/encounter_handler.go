// Package v1alpha1 handles the bestiary gRPC services
package v1alpha1

import (
	"context"

	"github.com/KirkDiggler/rpg-encounters/internal/engine/difficulty"
	"github.com/KirkDiggler/rpg-encounters/internal/engine/xp"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/orchestrators/encounter"
)

// EncounterHandlerConfig holds dependencies for the encounter handler
type EncounterHandlerConfig struct {
	EncounterService encounter.Service
}

// Validate ensures all required dependencies are present
func (c *EncounterHandlerConfig) Validate() error {
	if c == nil || c.EncounterService == nil {
		return errors.InvalidArgument("encounter service is required")
	}
	return nil
}

// EncounterHandler implements the encounter gRPC service
type EncounterHandler struct {
	encounterService encounter.Service
}

var _ EncounterServiceServer = (*EncounterHandler)(nil)

// NewEncounterHandler creates a new encounter handler with the given configuration
func NewEncounterHandler(cfg *EncounterHandlerConfig) (*EncounterHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &EncounterHandler{
		encounterService: cfg.EncounterService,
	}, nil
}

// GetEncounterInfo rates a fight between a party and a set of enemies
func (h *EncounterHandler) GetEncounterInfo(
	ctx context.Context,
	req *GetEncounterInfoRequest,
) (*GetEncounterInfoResponse, error) {
	if len(req.PartyLevels) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("party_levels is required"))
	}

	output, err := h.encounterService.GetEncounterInfo(ctx, &encounter.GetEncounterInfoInput{
		PartyLevels: req.PartyLevels,
		EnemyLevels: req.EnemyLevels,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GetEncounterInfoResponse{
		XP:         output.XP,
		Difficulty: output.Tier.String(),
		Thresholds: convertThresholds(output.Thresholds),
	}, nil
}

// GenerateEncounter composes a random encounter
func (h *EncounterHandler) GenerateEncounter(
	ctx context.Context,
	req *GenerateEncounterRequest,
) (*GenerateEncounterResponse, error) {
	if len(req.PartyLevels) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("party_levels is required"))
	}

	input := &encounter.GenerateEncounterInput{
		PartyLevels:  req.PartyLevels,
		MinCreatures: req.MinCreatures,
		MaxCreatures: req.MaxCreatures,
		AllowWeak:    req.AllowWeak,
		AllowElite:   req.AllowElite,
	}

	if req.Difficulty != "" {
		tier, err := difficulty.ParseTier(req.Difficulty)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.Tier = &tier
	}

	if req.AdventureGroup != "" {
		group, err := xp.ParseAdventureGroup(req.AdventureGroup)
		if err != nil {
			return nil, errors.ToGRPCError(err)
		}
		input.AdventureGroup = group
	}

	filters, err := parseFilters(req.Filters)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	input.Filters = filters

	output, err := h.encounterService.GenerateEncounter(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return &GenerateEncounterResponse{
		EncounterID: output.EncounterID,
		Creatures:   convertCreaturesToMessages(output.Creatures),
		Count:       output.Count,
		XP:          output.XP,
		Difficulty:  output.Tier.String(),
		Thresholds:  convertThresholds(output.Thresholds),
	}, nil
}
