package v1alpha1_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/handlers/bestiary/v1alpha1"
	"github.com/KirkDiggler/rpg-encounters/internal/orchestrators/creature"
	creaturemock "github.com/KirkDiggler/rpg-encounters/internal/orchestrators/creature/mock"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
	"github.com/KirkDiggler/rpg-encounters/internal/testutils"
)

type BestiaryHandlerTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockCreature *creaturemock.MockService
	handler      *v1alpha1.BestiaryHandler
	ctx          context.Context
}

func TestBestiaryHandlerSuite(t *testing.T) {
	suite.Run(t, new(BestiaryHandlerTestSuite))
}

func (s *BestiaryHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockCreature = creaturemock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewBestiaryHandler(&v1alpha1.BestiaryHandlerConfig{
		CreatureService: s.mockCreature,
	})
	s.Require().NoError(err)
	s.handler = handler
}

func (s *BestiaryHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *BestiaryHandlerTestSuite) TestListCreatures() {
	minLevel := 2
	fixtures := testutils.FixtureBestiary()

	s.mockCreature.EXPECT().
		ListCreatures(s.ctx, &creature.ListCreaturesInput{
			SortField:    creaturecache.SortByLevel,
			Direction:    creaturecache.Descending,
			Cursor:       10,
			PageSize:     2,
			Filters:      creaturecache.Filters{bestiary.DimensionRarity: {"rare"}},
			NameContains: "dragon",
			MinLevel:     &minLevel,
		}).
		Return(&creature.ListCreaturesOutput{
			Creatures:  fixtures[9:11],
			NextCursor: 12,
			Total:      16,
		}, nil)

	resp, err := s.handler.ListCreatures(s.ctx, &v1alpha1.ListCreaturesRequest{
		SortField:    "level",
		Direction:    "desc",
		Cursor:       10,
		PageSize:     2,
		Filters:      map[string][]string{"rarity": {"rare"}},
		NameContains: "dragon",
		MinLevel:     &minLevel,
	})
	s.Require().NoError(err)
	s.Equal(12, resp.NextCursor)
	s.Equal(16, resp.Total)
	s.Require().Len(resp.Creatures, 2)
	s.Equal("Young Red Dragon", resp.Creatures[0].Name)
	s.Equal("RARE", resp.Creatures[0].Rarity)
	s.Equal([]string{"Bestiary", "Bestiary 2"}, resp.Creatures[0].Sources)
}

func (s *BestiaryHandlerTestSuite) TestListCreatures_BadRequest() {
	testCases := []struct {
		name string
		req  *v1alpha1.ListCreaturesRequest
	}{
		{name: "unknown sort field", req: &v1alpha1.ListCreaturesRequest{SortField: "speed"}},
		{name: "unknown direction", req: &v1alpha1.ListCreaturesRequest{Direction: "sideways"}},
		{name: "unknown dimension", req: &v1alpha1.ListCreaturesRequest{Filters: map[string][]string{"speed": {"fast"}}}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.handler.ListCreatures(s.ctx, tc.req)
			s.Require().Error(err)
			s.Equal(codes.InvalidArgument, status.Code(err))
		})
	}
}

func (s *BestiaryHandlerTestSuite) TestListCreatures_Unavailable() {
	s.mockCreature.EXPECT().
		ListCreatures(s.ctx, gomock.Any()).
		Return(nil, errors.Unavailable("creature cache is not built yet"))

	_, err := s.handler.ListCreatures(s.ctx, &v1alpha1.ListCreaturesRequest{})
	s.Require().Error(err)
	s.Equal(codes.Unavailable, status.Code(err))
}

func (s *BestiaryHandlerTestSuite) TestGetCreature() {
	s.Run("found", func() {
		s.mockCreature.EXPECT().
			GetCreature(s.ctx, &creature.GetCreatureInput{ID: 9}).
			Return(&creature.GetCreatureOutput{Creature: testutils.FixtureBestiary()[8]}, nil)

		resp, err := s.handler.GetCreature(s.ctx, &v1alpha1.GetCreatureRequest{ID: 9})
		s.Require().NoError(err)
		s.Equal(int64(9), resp.Creature.ID)
		s.Equal("Owlbear", resp.Creature.Name)
		s.Equal("LARGE", resp.Creature.Size)
	})

	s.Run("not found", func() {
		s.mockCreature.EXPECT().
			GetCreature(s.ctx, &creature.GetCreatureInput{ID: 404}).
			Return(nil, errors.NotFound("creature 404 not found"))

		_, err := s.handler.GetCreature(s.ctx, &v1alpha1.GetCreatureRequest{ID: 404})
		s.Equal(codes.NotFound, status.Code(err))
	})

	s.Run("missing id", func() {
		_, err := s.handler.GetCreature(s.ctx, &v1alpha1.GetCreatureRequest{})
		s.Equal(codes.InvalidArgument, status.Code(err))
	})
}

func (s *BestiaryHandlerTestSuite) TestListFilterValues() {
	s.mockCreature.EXPECT().
		ListFilterValues(s.ctx, &creature.ListFilterValuesInput{Dimension: bestiary.DimensionSize}).
		Return(&creature.ListFilterValuesOutput{Values: []string{"TINY", "SMALL"}}, nil)

	resp, err := s.handler.ListFilterValues(s.ctx, &v1alpha1.ListFilterValuesRequest{Dimension: "size"})
	s.Require().NoError(err)
	s.Equal("SIZE", resp.Dimension)
	s.Equal([]string{"TINY", "SMALL"}, resp.Values)

	_, err = s.handler.ListFilterValues(s.ctx, &v1alpha1.ListFilterValuesRequest{})
	s.Equal(codes.InvalidArgument, status.Code(err))

	_, err = s.handler.ListFilterValues(s.ctx, &v1alpha1.ListFilterValuesRequest{Dimension: "color"})
	s.Equal(codes.InvalidArgument, status.Code(err))
}
