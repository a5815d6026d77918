package creature_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/orchestrators/creature"
	creaturerepo "github.com/KirkDiggler/rpg-encounters/internal/repositories/creature"
	creaturemock "github.com/KirkDiggler/rpg-encounters/internal/repositories/creature/mock"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
	"github.com/KirkDiggler/rpg-encounters/internal/testutils"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockRepo     *creaturemock.MockRepository
	holder       *creaturecache.Holder
	orchestrator creature.Service
	ctx          context.Context
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = creaturemock.NewMockRepository(s.ctrl)
	s.holder = creaturecache.NewHolder()
	s.ctx = context.Background()

	var err error
	s.orchestrator, err = creature.NewOrchestrator(&creature.Config{
		Snapshots:  s.holder,
		Repository: s.mockRepo,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) publish() {
	s.holder.Store(creaturecache.Build(testutils.FixtureBestiary(), creaturecache.BuildMeta{
		ID:      "snap-1",
		BuiltAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
}

func intPtr(v int) *int { return &v }

func ids(creatures []*bestiary.Creature) []int64 {
	out := make([]int64, 0, len(creatures))
	for _, c := range creatures {
		out = append(out, c.ID)
	}
	return out
}

func (s *OrchestratorTestSuite) TestNewOrchestrator_Validation() {
	_, err := creature.NewOrchestrator(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = creature.NewOrchestrator(&creature.Config{Snapshots: s.holder})
	s.Require().Error(err)
	s.Contains(err.Error(), "Repository")
}

func (s *OrchestratorTestSuite) TestListCreatures_CacheNotBuilt() {
	_, err := s.orchestrator.ListCreatures(s.ctx, &creature.ListCreaturesInput{})
	s.Require().Error(err)
	s.True(errors.IsUnavailable(err))
}

func (s *OrchestratorTestSuite) TestListCreatures_Sorting() {
	s.publish()

	testCases := []struct {
		name  string
		input *creature.ListCreaturesInput
		want  []int64
	}{
		{
			name:  "default is id ascending",
			input: &creature.ListCreaturesInput{PageSize: 5},
			want:  []int64{1, 2, 3, 4, 5},
		},
		{
			name:  "id descending",
			input: &creature.ListCreaturesInput{Direction: creaturecache.Descending, PageSize: 3},
			want:  []int64{16, 15, 14},
		},
		{
			name:  "level ascending breaks ties by id",
			input: &creature.ListCreaturesInput{SortField: creaturecache.SortByLevel, PageSize: 6},
			want:  []int64{1, 14, 15, 16, 2, 3},
		},
		{
			name: "hp descending",
			input: &creature.ListCreaturesInput{
				SortField: creaturecache.SortByHP,
				Direction: creaturecache.Descending,
				PageSize:  2,
			},
			want: []int64{12, 10},
		},
		{
			name:  "size ascending starts with tiny",
			input: &creature.ListCreaturesInput{SortField: creaturecache.SortBySize, PageSize: 1},
			want:  []int64{11},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.ListCreatures(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(tc.want, ids(out.Creatures))
			s.Equal(16, out.Total)
		})
	}
}

func (s *OrchestratorTestSuite) TestListCreatures_PaginationReproducesFullList() {
	s.publish()

	for _, dir := range []creaturecache.Direction{creaturecache.Ascending, creaturecache.Descending} {
		for _, field := range creaturecache.SortFields() {
			full, err := s.orchestrator.ListCreatures(s.ctx, &creature.ListCreaturesInput{
				SortField: field,
				Direction: dir,
			})
			s.Require().NoError(err)
			s.Require().Len(full.Creatures, 16)
			s.Equal(16, full.NextCursor)

			var paged []int64
			cursor := 0
			for cursor < full.Total {
				page, err := s.orchestrator.ListCreatures(s.ctx, &creature.ListCreaturesInput{
					SortField: field,
					Direction: dir,
					Cursor:    cursor,
					PageSize:  3,
				})
				s.Require().NoError(err)
				s.Require().Equal(min(cursor+3, full.Total), page.NextCursor)
				paged = append(paged, ids(page.Creatures)...)
				cursor = page.NextCursor
			}
			s.Equal(ids(full.Creatures), paged, "field %s dir %s", field, dir)
		}
	}
}

func (s *OrchestratorTestSuite) TestListCreatures_PageBounds() {
	s.publish()

	testCases := []struct {
		name     string
		cursor   int
		pageSize int
		wantLen  int
		wantNext int
	}{
		{name: "page size clamps to max", cursor: 0, pageSize: 1000, wantLen: 16, wantNext: 16},
		{name: "cursor at end", cursor: 16, pageSize: 5, wantLen: 0, wantNext: 16},
		{name: "cursor past end", cursor: 40, pageSize: 5, wantLen: 0, wantNext: 16},
		{name: "last partial page", cursor: 14, pageSize: 5, wantLen: 2, wantNext: 16},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.ListCreatures(s.ctx, &creature.ListCreaturesInput{
				Cursor:   tc.cursor,
				PageSize: tc.pageSize,
			})
			s.Require().NoError(err)
			s.Len(out.Creatures, tc.wantLen)
			s.Equal(tc.wantNext, out.NextCursor)
			s.Equal(16, out.Total)
		})
	}

	_, err := s.orchestrator.ListCreatures(s.ctx, &creature.ListCreaturesInput{Cursor: -1})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestListCreatures_Filters() {
	s.publish()

	testCases := []struct {
		name  string
		input *creature.ListCreaturesInput
		want  []int64
	}{
		{
			name:  "name substring ignores case",
			input: &creature.ListCreaturesInput{NameContains: "GOBLIN"},
			want:  []int64{1, 2, 3},
		},
		{
			name:  "family substring",
			input: &creature.ListCreaturesInput{FamilyContains: "drag"},
			want:  []int64{10, 12},
		},
		{
			name:  "hp range",
			input: &creature.ListCreaturesInput{MinHP: intPtr(40), MaxHP: intPtr(70)},
			want:  []int64{8, 9, 11},
		},
		{
			name:  "level range",
			input: &creature.ListCreaturesInput{MinLevel: intPtr(7), MaxLevel: intPtr(8)},
			want:  []int64{12, 13},
		},
		{
			name: "values within a dimension are alternatives",
			input: &creature.ListCreaturesInput{Filters: creaturecache.Filters{
				bestiary.DimensionRarity: {"rare", "unique"},
			}},
			want: []int64{10, 12},
		},
		{
			name: "dimensions narrow each other",
			input: &creature.ListCreaturesInput{Filters: creaturecache.Filters{
				bestiary.DimensionSpellCaster: {"true"},
				bestiary.DimensionAlignment:   {"le"},
			}},
			want: []int64{5, 12},
		},
		{
			name: "category and attribute filters combine",
			input: &creature.ListCreaturesInput{
				Filters:  creaturecache.Filters{bestiary.DimensionSource: {"Bestiary 2"}},
				MinLevel: intPtr(5),
			},
			want: []int64{10},
		},
		{
			name: "no match",
			input: &creature.ListCreaturesInput{Filters: creaturecache.Filters{
				bestiary.DimensionFamily: {"Unicorn"},
			}},
			want: []int64{},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.ListCreatures(s.ctx, tc.input)
			s.Require().NoError(err)
			s.Equal(tc.want, ids(out.Creatures))
			s.Equal(len(tc.want), out.Total)
			s.Equal(len(tc.want), out.NextCursor)
		})
	}
}

func (s *OrchestratorTestSuite) TestListCreatures_InvalidInput() {
	s.publish()

	testCases := []struct {
		name  string
		input *creature.ListCreaturesInput
	}{
		{name: "nil input"},
		{name: "unknown sort field", input: &creature.ListCreaturesInput{SortField: creaturecache.SortField(42)}},
		{name: "unknown direction", input: &creature.ListCreaturesInput{Direction: creaturecache.Direction(7)}},
		{name: "inverted hp range", input: &creature.ListCreaturesInput{MinHP: intPtr(10), MaxHP: intPtr(5)}},
		{name: "inverted level range", input: &creature.ListCreaturesInput{MinLevel: intPtr(3), MaxLevel: intPtr(1)}},
		{
			name:  "unknown dimension",
			input: &creature.ListCreaturesInput{Filters: creaturecache.Filters{bestiary.Dimension(99): {"x"}}},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.orchestrator.ListCreatures(s.ctx, tc.input)
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func (s *OrchestratorTestSuite) TestListCreatures_PageIsACopy() {
	s.publish()

	out, err := s.orchestrator.ListCreatures(s.ctx, &creature.ListCreaturesInput{PageSize: 1})
	s.Require().NoError(err)
	out.Creatures[0].Name = "Renamed"

	again, err := s.orchestrator.ListCreatures(s.ctx, &creature.ListCreaturesInput{PageSize: 1})
	s.Require().NoError(err)
	s.Equal("Goblin Warrior", again.Creatures[0].Name)
}

func (s *OrchestratorTestSuite) TestGetCreature() {
	s.Run("falls back to the repository before the first build", func() {
		stored := testutils.FixtureBestiary()[4]
		s.mockRepo.EXPECT().
			Get(s.ctx, &creaturerepo.GetInput{ID: 5}).
			Return(&creaturerepo.GetOutput{Creature: stored}, nil)

		out, err := s.orchestrator.GetCreature(s.ctx, &creature.GetCreatureInput{ID: 5})
		s.Require().NoError(err)
		s.Equal(stored, out.Creature)
	})

	s.Run("repository not found passes through", func() {
		s.mockRepo.EXPECT().
			Get(s.ctx, &creaturerepo.GetInput{ID: 99}).
			Return(nil, errors.NotFound("creature not found"))

		_, err := s.orchestrator.GetCreature(s.ctx, &creature.GetCreatureInput{ID: 99})
		s.True(errors.IsNotFound(err))
	})

	s.Run("reads from the snapshot once built", func() {
		s.publish()

		out, err := s.orchestrator.GetCreature(s.ctx, &creature.GetCreatureInput{ID: 9})
		s.Require().NoError(err)
		s.Equal("Owlbear", out.Creature.Name)
		s.Equal("https://2e.aonprd.com/Monsters.aspx?ID=9", out.Creature.ArchiveLink)
	})

	s.Run("unknown id", func() {
		_, err := s.orchestrator.GetCreature(s.ctx, &creature.GetCreatureInput{ID: 404})
		s.Require().Error(err)
		s.True(errors.IsNotFound(err))
		s.Equal(int64(404), errors.GetMeta(err)["creature_id"])
	})

	s.Run("invalid id", func() {
		_, err := s.orchestrator.GetCreature(s.ctx, &creature.GetCreatureInput{ID: 0})
		s.True(errors.IsInvalidArgument(err))
	})
}

func (s *OrchestratorTestSuite) TestListFilterValues() {
	s.Run("falls back to the repository before the first build", func() {
		s.mockRepo.EXPECT().
			ListCategoryValues(s.ctx, &creaturerepo.ListCategoryValuesInput{Dimension: bestiary.DimensionRarity}).
			Return(&creaturerepo.ListCategoryValuesOutput{Values: []string{"COMMON"}}, nil)

		out, err := s.orchestrator.ListFilterValues(s.ctx, &creature.ListFilterValuesInput{
			Dimension: bestiary.DimensionRarity,
		})
		s.Require().NoError(err)
		s.Equal([]string{"COMMON"}, out.Values)
	})

	s.Run("repository failure passes through", func() {
		s.mockRepo.EXPECT().
			ListCategoryValues(s.ctx, gomock.Any()).
			Return(nil, errors.Unavailable("store down"))

		_, err := s.orchestrator.ListFilterValues(s.ctx, &creature.ListFilterValuesInput{
			Dimension: bestiary.DimensionSize,
		})
		s.True(errors.IsUnavailable(err))
	})

	s.publish()

	testCases := []struct {
		name      string
		dimension bestiary.Dimension
		want      []string
	}{
		{name: "rarity in rank order", dimension: bestiary.DimensionRarity, want: []string{"COMMON", "UNCOMMON", "RARE", "UNIQUE"}},
		{name: "levels numerically", dimension: bestiary.DimensionLevel, want: []string{"-1", "1", "2", "3", "4", "7", "8", "10"}},
		{name: "families lexically", dimension: bestiary.DimensionFamily, want: []string{"-", "Dragon", "Goblin", "Kobold"}},
		{name: "sources", dimension: bestiary.DimensionSource, want: []string{"Bestiary", "Bestiary 2"}},
		{name: "flags", dimension: bestiary.DimensionRanged, want: []string{"false", "true"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			out, err := s.orchestrator.ListFilterValues(s.ctx, &creature.ListFilterValuesInput{Dimension: tc.dimension})
			s.Require().NoError(err)
			s.Equal(tc.want, out.Values)
		})
	}

	_, err := s.orchestrator.ListFilterValues(s.ctx, &creature.ListFilterValuesInput{Dimension: bestiary.Dimension(99)})
	s.True(errors.IsInvalidArgument(err))
}
