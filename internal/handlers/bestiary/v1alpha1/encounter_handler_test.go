package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-encounters/internal/engine/difficulty"
	"github.com/KirkDiggler/rpg-encounters/internal/engine/xp"
	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
	"github.com/KirkDiggler/rpg-encounters/internal/orchestrators/encounter"
	encountermock "github.com/KirkDiggler/rpg-encounters/internal/orchestrators/encounter/mock"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
	"github.com/KirkDiggler/rpg-encounters/internal/testutils/builders"
)

type EncounterHandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	mockEncounter *encountermock.MockService
	handler       *v1alpha1.EncounterHandler
	ctx           context.Context
}

func TestEncounterHandlerSuite(t *testing.T) {
	suite.Run(t, new(EncounterHandlerTestSuite))
}

func (s *EncounterHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockEncounter = encountermock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewEncounterHandler(&v1alpha1.EncounterHandlerConfig{
		EncounterService: s.mockEncounter,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *EncounterHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *EncounterHandlerTestSuite) TestNewEncounterHandler_MissingService() {
	_, err := v1alpha1.NewEncounterHandler(&v1alpha1.EncounterHandlerConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *EncounterHandlerTestSuite) TestGetEncounterInfo() {
	s.mockEncounter.EXPECT().
		GetEncounterInfo(s.ctx, &encounter.GetEncounterInfoInput{
			PartyLevels: []int{4, 4, 4, 4},
			EnemyLevels: []int{4},
		}).
		Return(&encounter.GetEncounterInfoOutput{
			XP:         40,
			Tier:       difficulty.TierLow,
			Thresholds: difficulty.NewThresholds(4),
		}, nil)

	resp, err := s.handler.GetEncounterInfo(s.ctx, &v1alpha1.GetEncounterInfoRequest{
		PartyLevels: []int{4, 4, 4, 4},
		EnemyLevels: []int{4},
	})
	s.Require().NoError(err)
	s.Equal(40, resp.XP)
	s.Equal("LOW", resp.Difficulty)
	s.Equal(map[string]int{
		"TRIVIAL":    40,
		"LOW":        60,
		"MODERATE":   80,
		"SEVERE":     120,
		"EXTREME":    160,
		"IMPOSSIBLE": 320,
	}, resp.Thresholds)
}

func (s *EncounterHandlerTestSuite) TestGetEncounterInfo_MissingParty() {
	_, err := s.handler.GetEncounterInfo(s.ctx, &v1alpha1.GetEncounterInfoRequest{})
	s.Require().Error(err)
	s.Equal(codes.InvalidArgument, status.Code(err))
}

func (s *EncounterHandlerTestSuite) TestGenerateEncounter_MapsRequest() {
	moderate := difficulty.TierModerate
	goblin := builders.NewCreatureBuilder(1).WithName("Goblin Warrior").WithLevel(-1).Build()

	s.mockEncounter.EXPECT().
		GenerateEncounter(s.ctx, &encounter.GenerateEncounterInput{
			PartyLevels:    []int{1, 1},
			Tier:           &moderate,
			AdventureGroup: xp.GroupTroop,
			Filters: creaturecache.Filters{
				bestiary.DimensionFamily: {"Goblin"},
				bestiary.DimensionSize:   {"small", "tiny"},
			},
			MinCreatures: 1,
			MaxCreatures: 4,
			AllowWeak:    true,
		}).
		Return(&encounter.GenerateEncounterOutput{
			EncounterID: "enc-1",
			Creatures:   []*bestiary.Creature{goblin.WithVariant(bestiary.VariantWeak)},
			Count:       1,
			XP:          80,
			Tier:        difficulty.TierModerate,
			Thresholds:  difficulty.NewThresholds(2),
		}, nil)

	resp, err := s.handler.GenerateEncounter(s.ctx, &v1alpha1.GenerateEncounterRequest{
		PartyLevels:    []int{1, 1},
		Difficulty:     "moderate",
		AdventureGroup: "troop",
		Filters: map[string][]string{
			"family": {"Goblin"},
			"SIZE":   {"small", "tiny"},
			"rarity": {},
		},
		MinCreatures: 1,
		MaxCreatures: 4,
		AllowWeak:    true,
	})
	s.Require().NoError(err)
	s.Equal("enc-1", resp.EncounterID)
	s.Equal("MODERATE", resp.Difficulty)
	s.Equal(1, resp.Count)
	s.Require().Len(resp.Creatures, 1)
	s.Equal("WEAK", resp.Creatures[0].Variant)
	s.Equal("https://2e.aonprd.com/Monsters.aspx?ID=1&Weak=true", resp.Creatures[0].ArchiveLink)
}

func (s *EncounterHandlerTestSuite) TestGenerateEncounter_BadRequest() {
	testCases := []struct {
		name string
		req  *v1alpha1.GenerateEncounterRequest
	}{
		{name: "missing party", req: &v1alpha1.GenerateEncounterRequest{}},
		{name: "unknown difficulty", req: &v1alpha1.GenerateEncounterRequest{PartyLevels: []int{1}, Difficulty: "DEADLY"}},
		{name: "unknown group", req: &v1alpha1.GenerateEncounterRequest{PartyLevels: []int{1}, AdventureGroup: "PICNIC"}},
		{
			name: "unknown dimension",
			req: &v1alpha1.GenerateEncounterRequest{
				PartyLevels: []int{1},
				Filters:     map[string][]string{"color": {"red"}},
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.GenerateEncounter(s.ctx, tc.req)
			s.Require().Error(err)
			s.Equal(codes.InvalidArgument, status.Code(err))
		})
	}
}

func (s *EncounterHandlerTestSuite) TestGenerateEncounter_Ungeneratable() {
	s.mockEncounter.EXPECT().
		GenerateEncounter(s.ctx, gomock.Any()).
		Return(nil, errors.FailedPrecondition("no creature matches the filters").
			WithMeta(errors.MetaReason, encounter.ReasonNoFilterMatch))

	_, err := s.handler.GenerateEncounter(s.ctx, &v1alpha1.GenerateEncounterRequest{PartyLevels: []int{1}})
	s.Require().Error(err)
	s.Equal(codes.FailedPrecondition, status.Code(err))

	restored := errors.FromGRPCError(err)
	s.Equal(encounter.ReasonNoFilterMatch, errors.GetReason(restored))
}
