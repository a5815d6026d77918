package creaturecache_test

import (
	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
	"github.com/KirkDiggler/rpg-encounters/internal/testutils"
)

func (s *SnapshotTestSuite) TestMatch() {
	testCases := []struct {
		name     string
		filters  creaturecache.Filters
		active   bool
		expected []int64
	}{
		{name: "no filters", filters: nil, active: false},
		{name: "empty values are inactive", filters: creaturecache.Filters{bestiary.DimensionFamily: {}}, active: false},
		{
			name:     "single dimension",
			filters:  creaturecache.Filters{bestiary.DimensionFamily: {testutils.FamilyKobold}},
			active:   true,
			expected: []int64{4, 5},
		},
		{
			name:     "union within a dimension",
			filters:  creaturecache.Filters{bestiary.DimensionFamily: {testutils.FamilyKobold, testutils.FamilyDragon}},
			active:   true,
			expected: []int64{4, 5, 10, 12},
		},
		{
			name: "intersection across dimensions",
			filters: creaturecache.Filters{
				bestiary.DimensionFamily:    {testutils.FamilyKobold, testutils.FamilyDragon},
				bestiary.DimensionAlignment: {"le"},
			},
			active:   true,
			expected: []int64{4, 5, 12},
		},
		{
			name: "no overlap",
			filters: creaturecache.Filters{
				bestiary.DimensionFamily: {testutils.FamilyGoblin},
				bestiary.DimensionRarity: {"UNIQUE"},
			},
			active:   true,
			expected: []int64{},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			ids, active := s.snap.Match(tc.filters)
			s.Equal(tc.active, active)
			if !tc.active {
				s.Nil(ids)
				return
			}
			s.Equal(tc.expected, ids.Sorted())
		})
	}
}

func (s *SnapshotTestSuite) TestIDSetIntersect() {
	set := creaturecache.IDSet{1: {}, 3: {}, 5: {}}
	s.Equal([]int64{5, 1}, set.Intersect([]int64{5, 2, 1}))
	s.Empty(set.Intersect(nil))
}
