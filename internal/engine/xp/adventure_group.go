package xp

import (
	"strings"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

// AdventureGroup is a fixed encounter shape expressed as levels relative to
// the party
type AdventureGroup string

// AdventureGroup constants
const (
	GroupBossAndLackeys       AdventureGroup = "BOSS_AND_LACKEYS"
	GroupBossAndLieutenant    AdventureGroup = "BOSS_AND_LIEUTENANT"
	GroupEliteEnemies         AdventureGroup = "ELITE_ENEMIES"
	GroupLieutenantAndLackeys AdventureGroup = "LIEUTENANT_AND_LACKEYS"
	GroupMatedPair            AdventureGroup = "MATED_PAIR"
	GroupTroop                AdventureGroup = "TROOP"
	GroupMookSquad            AdventureGroup = "MOOK_SQUAD"
)

var groupOffsets = map[AdventureGroup][]int{
	GroupBossAndLackeys:       {2, -4, -4, -4, -4},
	GroupBossAndLieutenant:    {2, 0},
	GroupEliteEnemies:         {0, 0, 0},
	GroupLieutenantAndLackeys: {0, -4, -4, -4, -4},
	GroupMatedPair:            {0, 0},
	GroupTroop:                {0, -2, -2},
	GroupMookSquad:            {-4, -4, -4, -4, -4, -4},
}

// AdventureGroups returns every group in declaration order
func AdventureGroups() []AdventureGroup {
	return []AdventureGroup{
		GroupBossAndLackeys,
		GroupBossAndLieutenant,
		GroupEliteEnemies,
		GroupLieutenantAndLackeys,
		GroupMatedPair,
		GroupTroop,
		GroupMookSquad,
	}
}

// ParseAdventureGroup converts a case-insensitive name into an AdventureGroup
func ParseAdventureGroup(s string) (AdventureGroup, error) {
	g := AdventureGroup(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := groupOffsets[g]; !ok {
		return "", errors.InvalidArgumentf("unknown adventure group %q", s)
	}
	return g, nil
}

// Levels returns the creature levels of the group relative to PartyBase.
// Members that would fall below MinCreatureLevel are dropped.
func (g AdventureGroup) Levels(partyLevels []int) []int {
	offsets, ok := groupOffsets[g]
	if !ok {
		errors.Invariantf("adventure group %q has no template", string(g))
	}

	base := PartyBase(partyLevels)
	out := make([]int, 0, len(offsets))
	for _, o := range offsets {
		if level := base + o; level >= MinCreatureLevel {
			out = append(out, level)
		}
	}
	return out
}
