// Package xp implements the encounter experience model: the level delta to XP
// table, party level arithmetic and the exact combination search that turns
// an XP budget into sets of creature levels.
package xp

import (
	"math"

	"github.com/KirkDiggler/rpg-encounters/internal/engine/difficulty"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

const (
	// MinDelta is the lowest level delta with an XP value
	MinDelta = -4
	// MaxDelta is the highest level delta in the table
	MaxDelta = 4
	// MinCreatureLevel is the lowest creature level an encounter may use
	MinCreatureLevel = -1
)

// deltaXP is indexed by delta - MinDelta and strictly increasing.
var deltaXP = [...]int{10, 15, 20, 30, 40, 60, 80, 120, 160}

var _ = [1]struct{}{}[len(deltaXP)-(MaxDelta-MinDelta+1)]

// Values returns the XP values of the table in ascending order
func Values() []int {
	return append([]int(nil), deltaXP[:]...)
}

// ExpForDelta returns the XP a single creature is worth at the given level
// delta. Deltas below the table are worth nothing; deltas above it are
// pegged to the IMPOSSIBLE budget for the party size.
func ExpForDelta(delta, partySize int) int {
	switch {
	case delta < MinDelta:
		return 0
	case delta > MaxDelta:
		return difficulty.ScaledBudget(difficulty.TierImpossible, partySize)
	default:
		return deltaXP[delta-MinDelta]
	}
}

// DeltaForExp is the exact reverse of the table
func DeltaForExp(xp int) (int, bool) {
	for i, v := range deltaXP {
		if v == xp {
			return i + MinDelta, true
		}
	}
	return 0, false
}

// MustDeltaForExp is DeltaForExp for values known to come from the table.
// A miss panics with an internal error.
func MustDeltaForExp(xp int) int {
	delta, ok := DeltaForExp(xp)
	if !ok {
		errors.Invariantf("xp %d is not in the delta table", xp)
	}
	return delta
}

// AveragePartyLevel returns the arithmetic mean of the levels, or 0 for an
// empty party.
func AveragePartyLevel(levels []int) float64 {
	if len(levels) == 0 {
		return 0
	}
	sum := 0
	for _, l := range levels {
		sum += l
	}
	return float64(sum) / float64(len(levels))
}

// LevelDifference returns how far an enemy sits above (positive) or below
// (negative) the party average. Negative enemy levels below the average are
// measured as a distance so the sign is not counted twice.
func LevelDifference(enemyLevel int, partyAvg float64) float64 {
	enemy := float64(enemyLevel)
	if enemyLevel < 0 && enemy < partyAvg {
		return -math.Abs(partyAvg - enemy)
	}
	return enemy - partyAvg
}

// TotalEncounterXP sums the XP of every enemy against the party
func TotalEncounterXP(partyLevels, enemyLevels []int) int {
	avg := AveragePartyLevel(partyLevels)
	total := 0
	for _, e := range enemyLevels {
		delta := int(math.Floor(LevelDifference(e, avg)))
		total += ExpForDelta(delta, len(partyLevels))
	}
	return total
}

// PartyFloor returns the floored party average used as the base of derived
// creature levels
func PartyFloor(partyLevels []int) int {
	return int(math.Floor(AveragePartyLevel(partyLevels)))
}

// PartyBase returns the party average truncated toward zero, the base of
// adventure group templates. It differs from PartyFloor only for negative
// averages.
func PartyBase(partyLevels []int) int {
	if len(partyLevels) == 0 {
		return 0
	}
	sum := 0
	for _, l := range partyLevels {
		sum += l
	}
	return sum / len(partyLevels)
}
