package encounter

import (
	"cmp"
	"maps"
	"slices"
	"strconv"

	"github.com/KirkDiggler/rpg-encounters/internal/entities/bestiary"
	"github.com/KirkDiggler/rpg-encounters/internal/errors"
	"github.com/KirkDiggler/rpg-encounters/internal/services/creaturecache"
)

// candidate is a creature that can fill a slot at some level, possibly as a
// weak or elite variant of a creature from a neighbouring level
type candidate struct {
	id      int64
	variant bestiary.Variant
}

func compareCandidates(a, b candidate) int {
	if c := cmp.Compare(a.id, b.id); c != 0 {
		return c
	}
	return cmp.Compare(a.variant, b.variant)
}

// buildPools returns the candidates for each level, sorted by id. Levels
// without a candidate are left out.
func buildPools(
	snap *creaturecache.Snapshot,
	levels []int,
	allowed creaturecache.IDSet,
	filtered, allowWeak, allowElite bool,
) map[int][]candidate {
	idsAt := func(level int) []int64 {
		ids := snap.IDs(bestiary.DimensionLevel, strconv.Itoa(level))
		if filtered {
			return allowed.Intersect(ids)
		}
		return ids
	}

	pools := make(map[int][]candidate, len(levels))
	for _, level := range levels {
		var pool []candidate
		for _, id := range idsAt(level) {
			pool = append(pool, candidate{id: id})
		}
		if allowWeak {
			for _, base := range bestiary.WeakBaseLevels(level) {
				for _, id := range idsAt(base) {
					pool = append(pool, candidate{id: id, variant: bestiary.VariantWeak})
				}
			}
		}
		if allowElite {
			for _, base := range bestiary.EliteBaseLevels(level) {
				for _, id := range idsAt(base) {
					pool = append(pool, candidate{id: id, variant: bestiary.VariantElite})
				}
			}
		}
		if len(pool) == 0 {
			continue
		}
		slices.SortFunc(pool, compareCandidates)
		pools[level] = pool
	}
	return pools
}

// viableCombinations drops combinations that use a level without candidates
func viableCombinations(combos [][]int, pools map[int][]candidate) [][]int {
	out := make([][]int, 0, len(combos))
	for _, combo := range combos {
		ok := true
		for _, level := range combo {
			if _, found := pools[level]; !found {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, combo)
		}
	}
	return out
}

// fill picks creatures for every slot of the combination. A level needing
// more creatures than it has repeats its pool round-robin first, then each
// level is sampled without replacement.
func (o *orchestrator) fill(combo []int, pools map[int][]candidate) ([]candidate, error) {
	need := make(map[int]int)
	for _, level := range combo {
		need[level]++
	}

	var out []candidate
	for _, level := range slices.Sorted(maps.Keys(need)) {
		pool := pools[level]
		n := need[level]
		if len(pool) == 0 {
			errors.Invariantf("level %d selected without candidates", level)
		}

		filled := make([]candidate, max(n, len(pool)))
		for i := range filled {
			filled[i] = pool[i%len(pool)]
		}

		sample, err := o.sample(filled, n)
		if err != nil {
			return nil, err
		}
		out = append(out, sample...)
	}
	return out, nil
}

// sample draws n entries without replacement using a partial Fisher-Yates
// shuffle driven by the roller. pool is reordered in place.
func (o *orchestrator) sample(pool []candidate, n int) ([]candidate, error) {
	for i := 0; i < n; i++ {
		r, err := o.roller.Roll(len(pool) - i)
		if err != nil {
			return nil, errors.Wrap(err, "failed to sample creatures")
		}
		j := i + r - 1
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n], nil
}
