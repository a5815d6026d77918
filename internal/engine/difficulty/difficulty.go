// Package difficulty defines the encounter difficulty tiers, their XP budgets
// and the classification of an XP total into a tier.
package difficulty

import (
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-encounters/internal/errors"
)

// BasePartySize is the party size the base budgets are written for
const BasePartySize = 4

// Tier is an encounter difficulty band
type Tier int

// Tier constants, easiest first
const (
	TierTrivial Tier = iota
	TierLow
	TierModerate
	TierSevere
	TierExtreme
	TierImpossible

	numTiers
)

type tierSpec struct {
	name       string
	baseBudget int
	adjustment int
}

var tierSpecs = [...]tierSpec{
	TierTrivial:    {name: "TRIVIAL", baseBudget: 40, adjustment: 10},
	TierLow:        {name: "LOW", baseBudget: 60, adjustment: 15},
	TierModerate:   {name: "MODERATE", baseBudget: 80, adjustment: 20},
	TierSevere:     {name: "SEVERE", baseBudget: 120, adjustment: 30},
	TierExtreme:    {name: "EXTREME", baseBudget: 160, adjustment: 40},
	TierImpossible: {name: "IMPOSSIBLE", baseBudget: 320, adjustment: 60},
}

// Fails to compile when a tier is added without a table row.
var _ = [1]struct{}{}[len(tierSpecs)-int(numTiers)]

func (t Tier) spec() tierSpec {
	if t < 0 || t >= numTiers {
		errors.Invariantf("unknown difficulty tier %d", int(t))
	}
	return tierSpecs[t]
}

// String returns the tier name
func (t Tier) String() string {
	if t < 0 || t >= numTiers {
		return "UNKNOWN"
	}
	return tierSpecs[t].name
}

// MarshalText implements encoding.TextMarshaler
func (t Tier) MarshalText() ([]byte, error) {
	if t < 0 || t >= numTiers {
		return nil, errors.InvalidArgumentf("unknown difficulty tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// BaseBudget returns the XP budget of the tier for a party of four
func (t Tier) BaseBudget() int {
	return t.spec().baseBudget
}

// Adjustment returns the XP added per party member above four
func (t Tier) Adjustment() int {
	return t.spec().adjustment
}

// Tiers returns every tier, easiest first
func Tiers() []Tier {
	out := make([]Tier, numTiers)
	for i := range out {
		out[i] = Tier(i)
	}
	return out
}

// Names returns every tier name, easiest first
func Names() []string {
	out := make([]string, numTiers)
	for i := range out {
		out[i] = Tier(i).String()
	}
	return out
}

// ParseTier converts a case-insensitive tier name into a Tier
func ParseTier(s string) (Tier, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for i, spec := range tierSpecs {
		if spec.name == want {
			return Tier(i), nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown difficulty tier %q", s)
}

// Random picks a tier uniformly at random
func Random(roller dice.Roller) (Tier, error) {
	n, err := roller.Roll(int(numTiers))
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll difficulty tier")
	}
	return Tier(n - 1), nil
}

// ScaledBudget returns the tier budget adjusted for the party size
func ScaledBudget(tier Tier, partySize int) int {
	s := tier.spec()
	return s.baseBudget + (partySize-BasePartySize)*s.adjustment
}

// Thresholds maps every tier to its scaled budget
type Thresholds map[Tier]int

// NewThresholds computes the scaled budget of every tier for the party size
func NewThresholds(partySize int) Thresholds {
	out := make(Thresholds, numTiers)
	for _, t := range Tiers() {
		out[t] = ScaledBudget(t, partySize)
	}
	return out
}

// Classify returns the tier an XP total falls into. A total equal to a
// threshold belongs to that threshold's tier.
func Classify(xp int, thresholds Thresholds) Tier {
	for t := TierLow; t < numTiers; t++ {
		if xp < thresholds[t] {
			return t - 1
		}
	}
	return TierImpossible
}
