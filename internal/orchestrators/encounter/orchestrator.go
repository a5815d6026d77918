// Package encounter implements the encounter orchestrator: rating fights and
// composing random encounters that exactly fill a difficulty budget
package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=encountermock github.com/KirkDiggler/rpg-encounters/internal/orchestrators/encounter Service

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/rpg-encounters/internal/engine/difficulty"
	"github.com/KirkDiggler/rpg-encounters/internal/engine/xp"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

const tracerName = "github.com/KirkDiggler/rpg-encounters/internal/orchestrators/encounter"

// Service defines the interface for encounter operations
type Service interface {
	// GetEncounterInfo rates a fight between a party and a set of enemy levels
	GetEncounterInfo(ctx context.Context, input *GetEncounterInfoInput) (*GetEncounterInfoOutput, error)

	// GenerateEncounter composes a random encounter whose XP equals the budget
	// of the tier. Returns errors.FailedPrecondition when none can be built
	// and errors.Unavailable before the creature cache is first built.
	GenerateEncounter(ctx context.Context, input *GenerateEncounterInput) (*GenerateEncounterOutput, error)
}

// SnapshotLoader returns the current creature snapshot, or nil
type SnapshotLoader interface {
	Load() *creaturecache.Snapshot
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	Snapshots   SnapshotLoader
	Roller      dice.Roller
	IDGenerator idgen.Generator
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
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	snapshots SnapshotLoader
	roller    dice.Roller
	idGen     idgen.Generator
	tracer    trace.Tracer
}

// NewOrchestrator creates a new encounter orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		snapshots: cfg.Snapshots,
		roller:    cfg.Roller,
		idGen:     cfg.IDGenerator,
		tracer:    otel.Tracer(tracerName),
	}, nil
}

// GetEncounterInfo rates a fight between a party and a set of enemy levels
func (o *orchestrator) GetEncounterInfo(ctx context.Context, input *GetEncounterInfoInput) (*GetEncounterInfoOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateMinItems("party_levels", len(input.PartyLevels), 1, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	thresholds := difficulty.NewThresholds(len(input.PartyLevels))
	total := xp.TotalEncounterXP(input.PartyLevels, input.EnemyLevels)
	tier := difficulty.Classify(total, thresholds)

	slog.DebugContext(ctx, "Rated encounter",
		"party_size", len(input.PartyLevels),
		"enemies", len(input.EnemyLevels),
		"xp", total,
		"tier", tier.String(),
	)

	return &GetEncounterInfoOutput{
		XP:         total,
		Tier:       tier,
		Thresholds: thresholds,
	}, nil
}

func validateGenerateInput(input *GenerateEncounterInput) error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("party_levels", len(input.PartyLevels), 1, MaxPartySize, vb)
	errors.ValidateNonNegative("min_creatures", input.MinCreatures, vb)
	errors.ValidateNonNegative("max_creatures", input.MaxCreatures, vb)
	if input.MinCreatures > 0 && input.MaxCreatures > 0 && input.MinCreatures > input.MaxCreatures {
		vb.Field("max_creatures", "must not be less than min_creatures")
	}
	return vb.Build()
}

func ungeneratable(reason, message string) *errors.Error {
	return errors.FailedPrecondition(message).WithMeta(errors.MetaReason, reason)
}

// GenerateEncounter composes a random encounter
func (o *orchestrator) GenerateEncounter(ctx context.Context, input *GenerateEncounterInput) (*GenerateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := validateGenerateInput(input); err != nil {
		return nil, err
	}

	ctx, span := o.tracer.Start(ctx, "encounter.GenerateEncounter",
		trace.WithAttributes(attribute.Int("encounter.party_size", len(input.PartyLevels))),
	)
	defer span.End()

	snap := o.snapshots.Load()
	if snap == nil {
		return nil, errors.Unavailable("creature cache is not built yet")
	}

	thresholds := difficulty.NewThresholds(len(input.PartyLevels))
	budget, tier, combos, err := o.levelCombinations(input, thresholds)
	if err != nil {
		return nil, err
	}

	if err := errors.FromContext(ctx, "encounter generation stopped"); err != nil {
		return nil, err
	}

	combos = xp.FilterBySize(combos, input.MinCreatures, input.MaxCreatures)
	if len(combos) == 0 {
		return nil, ungeneratable(ReasonNoLevelCombination,
			"no creature level combination fits the budget").
			WithMeta("budget", budget).
			WithMeta("tier", tier.String())
	}

	allowed, filtered := snap.Match(input.Filters)
	if filtered && len(allowed) == 0 {
		return nil, ungeneratable(ReasonNoFilterMatch, "no creature matches the filters")
	}

	pools := buildPools(snap, xp.DistinctLevels(combos), allowed, filtered, input.AllowWeak, input.AllowElite)
	combos = viableCombinations(combos, pools)
	if len(combos) == 0 {
		return nil, ungeneratable(ReasonNoCreatureForLevel,
			"no level combination can be filled with matching creatures").
			WithMeta("budget", budget).
			WithMeta("tier", tier.String())
	}

	roll, err := o.roller.Roll(len(combos))
	if err != nil {
		return nil, errors.Wrap(err, "failed to pick a level combination")
	}
	chosen := combos[roll-1]

	if err := errors.FromContext(ctx, "encounter generation stopped"); err != nil {
		return nil, err
	}

	picked, err := o.fill(chosen, pools)
	if err != nil {
		return nil, err
	}

	out := &GenerateEncounterOutput{
		EncounterID: o.idGen.Generate(),
		XP:          budget,
		Tier:        tier,
		Thresholds:  thresholds,
	}
	for _, cand := range picked {
		c, ok := snap.ByID(cand.id)
		if !ok {
			errors.Invariantf("creature %d indexed but missing from snapshot %s", cand.id, snap.GetID())
		}
		if cand.variant != "" {
			c = c.WithVariant(cand.variant)
		}
		out.Creatures = append(out.Creatures, c)
	}
	out.Count = len(out.Creatures)

	span.SetAttributes(
		attribute.String("encounter.id", out.EncounterID),
		attribute.String("encounter.tier", tier.String()),
		attribute.Int("encounter.xp", budget),
		attribute.Int("encounter.creatures", out.Count),
	)
	slog.InfoContext(ctx, "Generated encounter",
		"encounter_id", out.EncounterID,
		"snapshot_id", snap.GetID(),
		"tier", tier.String(),
		"xp", budget,
		"levels", chosen,
		"candidates", len(combos),
	)

	return out, nil
}

// levelCombinations resolves the tier and the candidate level combinations,
// either from an adventure group template or from the tier budget
func (o *orchestrator) levelCombinations(input *GenerateEncounterInput, thresholds difficulty.Thresholds) (int, difficulty.Tier, [][]int, error) {
	if input.AdventureGroup != "" {
		group, err := xp.ParseAdventureGroup(string(input.AdventureGroup))
		if err != nil {
			return 0, 0, nil, err
		}
		levels := group.Levels(input.PartyLevels)
		if len(levels) == 0 {
			return 0, 0, nil, ungeneratable(ReasonNoLevelCombination,
				"adventure group has no member at a usable level").
				WithMeta("adventure_group", string(group))
		}
		budget := xp.TotalEncounterXP(input.PartyLevels, levels)
		return budget, difficulty.Classify(budget, thresholds), [][]int{levels}, nil
	}

	var tier difficulty.Tier
	if input.Tier != nil {
		tier = *input.Tier
		if _, err := tier.MarshalText(); err != nil {
			return 0, 0, nil, err
		}
	} else {
		var err error
		tier, err = difficulty.Random(o.roller)
		if err != nil {
			return 0, 0, nil, err
		}
	}

	budget, combos := xp.LevelCombinationForDifficulty(tier, input.PartyLevels)
	return budget, tier, combos, nil
}
