package xp

import (
	"slices"

	"github.com/KirkDiggler/rpg-encounters/internal/engine/difficulty"
)

// FindCombinations returns every non-empty multiset of candidate values that
// sums exactly to target. Each combination is sorted ascending.
func FindCombinations(candidates []int, target int) [][]int {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return findFrom(sorted, 0, target, nil)
}

// findFrom only moves forward through candidates so permutations of the same
// multiset are not produced twice. prefix is never written after the call.
func findFrom(candidates []int, start, remaining int, prefix []int) [][]int {
	if remaining == 0 {
		if len(prefix) == 0 {
			return nil
		}
		return [][]int{prefix}
	}

	var out [][]int
	for i := start; i < len(candidates); i++ {
		c := candidates[i]
		if c > remaining {
			break
		}
		if c <= 0 {
			continue
		}
		next := append(slices.Clip(prefix), c)
		out = append(out, findFrom(candidates, i, remaining-c, next)...)
	}
	return out
}

// LevelCombinationsForBudget turns every XP combination for the budget into
// creature levels relative to partyFloor. Levels below MinCreatureLevel are
// dropped and combinations left empty are discarded.
func LevelCombinationsForBudget(target, partyFloor int) [][]int {
	var out [][]int
	for _, combo := range FindCombinations(Values(), target) {
		levels := make([]int, 0, len(combo))
		for _, v := range combo {
			level := partyFloor + MustDeltaForExp(v)
			if level < MinCreatureLevel {
				continue
			}
			levels = append(levels, level)
		}
		if len(levels) > 0 {
			out = append(out, levels)
		}
	}
	return out
}

// LevelCombinationForDifficulty returns the scaled budget of the tier for
// the party and every level combination that fills it
func LevelCombinationForDifficulty(tier difficulty.Tier, partyLevels []int) (int, [][]int) {
	budget := difficulty.ScaledBudget(tier, len(partyLevels))
	return budget, LevelCombinationsForBudget(budget, PartyFloor(partyLevels))
}

// FilterBySize keeps combinations whose creature count lies within
// [minCount, maxCount]. Zero disables a bound.
func FilterBySize(combos [][]int, minCount, maxCount int) [][]int {
	if minCount <= 0 && maxCount <= 0 {
		return combos
	}
	out := make([][]int, 0, len(combos))
	for _, c := range combos {
		if minCount > 0 && len(c) < minCount {
			continue
		}
		if maxCount > 0 && len(c) > maxCount {
			continue
		}
		out = append(out, c)
	}
	return out
}

// DistinctLevels returns the sorted set of levels used across combinations
func DistinctLevels(combos [][]int) []int {
	var out []int
	for _, c := range combos {
		out = append(out, c...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
