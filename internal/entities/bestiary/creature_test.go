package bestiary_test

import (
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

type CreatureTestSuite struct {
	suite.Suite
}

func TestCreatureSuite(t *testing.T) {
	suite.Run(t, new(CreatureTestSuite))
}

func (s *CreatureTestSuite) TestNormalize() {
	c := &bestiary.Creature{
		ID:        1,
		Name:      "  Goblin Warrior ",
		HP:        6,
		Alignment: "ce",
		Size:      "small",
	}
	c.Normalize()

	s.Equal("Goblin Warrior", c.Name)
	s.Equal(bestiary.NoFamily, c.Family)
	s.Equal(bestiary.RarityCommon, c.Rarity)
	s.Equal(bestiary.AlignmentCE, c.Alignment)
	s.Equal(bestiary.SizeSmall, c.Size)
	s.Equal(bestiary.VariantBase, c.Variant)
	s.Equal("https://2e.aonprd.com/Monsters.aspx?ID=1", c.ArchiveLink)
}

func (s *CreatureTestSuite) TestCloneIsDeep() {
	c := &bestiary.Creature{ID: 2, Name: "Kobold", Sources: []string{"Bestiary"}}
	clone := c.Clone()
	clone.Name = "changed"
	clone.Sources[0] = "changed"

	s.Equal("Kobold", c.Name)
	s.Equal("Bestiary", c.Sources[0])
}

func (s *CreatureTestSuite) TestImplementsEntity() {
	var e core.Entity = &bestiary.Creature{ID: 42}
	s.Equal("42", e.GetID())
	s.Equal(bestiary.EntityType, e.GetType())
}

func (s *CreatureTestSuite) TestWithVariant() {
	testCases := []struct {
		name      string
		level     int
		hp        int
		variant   bestiary.Variant
		wantLevel int
		wantHP    int
		wantLink  string
	}{
		{name: "weak level 1 drops two", level: 1, hp: 20, variant: bestiary.VariantWeak, wantLevel: -1, wantHP: 10, wantLink: "&Weak=true"},
		{name: "weak level 4", level: 4, hp: 60, variant: bestiary.VariantWeak, wantLevel: 3, wantHP: 45, wantLink: "&Weak=true"},
		{name: "weak below table uses first row", level: -1, hp: 5, variant: bestiary.VariantWeak, wantLevel: -2, wantHP: 1, wantLink: "&Weak=true"},
		{name: "weak high level", level: 22, hp: 400, variant: bestiary.VariantWeak, wantLevel: 21, wantHP: 370, wantLink: "&Weak=true"},
		{name: "elite level 0 gains two", level: 0, hp: 8, variant: bestiary.VariantElite, wantLevel: 2, wantHP: 18, wantLink: "&Elite=true"},
		{name: "elite level -1 gains two", level: -1, hp: 4, variant: bestiary.VariantElite, wantLevel: 1, wantHP: 14, wantLink: "&Elite=true"},
		{name: "elite level 5", level: 5, hp: 75, variant: bestiary.VariantElite, wantLevel: 6, wantHP: 95, wantLink: "&Elite=true"},
		{name: "base is unchanged", level: 3, hp: 30, variant: bestiary.VariantBase, wantLevel: 3, wantHP: 30, wantLink: "ID=7"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			c := &bestiary.Creature{ID: 7, Level: tc.level, HP: tc.hp}
			out := c.WithVariant(tc.variant)

			s.Equal(tc.wantLevel, out.Level)
			s.Equal(tc.wantHP, out.HP)
			s.Equal(tc.variant, out.Variant)
			s.Contains(out.ArchiveLink, tc.wantLink)
			s.Equal(tc.level, c.Level, "source must not change")
			s.Equal(tc.hp, c.HP, "source must not change")
		})
	}
}

func (s *CreatureTestSuite) TestVariantBaseLevels() {
	s.Equal([]int{2}, bestiary.WeakBaseLevels(1))
	s.Equal([]int{0, 1}, bestiary.WeakBaseLevels(-1))
	s.Empty(bestiary.WeakBaseLevels(0))
	s.Equal([]int{-1}, bestiary.EliteBaseLevels(1))
	s.Equal([]int{1, 0}, bestiary.EliteBaseLevels(2))
	s.Equal([]int{3}, bestiary.EliteBaseLevels(4))
	s.Empty(bestiary.EliteBaseLevels(0))
}

func (s *CreatureTestSuite) TestParseEnums() {
	a, err := bestiary.ParseAlignment(" ng ")
	s.Require().NoError(err)
	s.Equal(bestiary.AlignmentNG, a)

	_, err = bestiary.ParseAlignment("XX")
	s.True(errors.IsInvalidArgument(err))

	size, err := bestiary.ParseSize("Huge")
	s.Require().NoError(err)
	s.Equal(4, size.Ordinal())

	_, err = bestiary.ParseSize("COLOSSAL")
	s.True(errors.IsInvalidArgument(err))

	r, err := bestiary.ParseRarity("")
	s.Require().NoError(err)
	s.Equal(bestiary.RarityCommon, r)

	r, err = bestiary.ParseRarity("unique")
	s.Require().NoError(err)
	s.Equal(3, r.Ordinal())
}
