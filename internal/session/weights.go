package session

import (
	"math"

	"github.com/lexiquest/exercise-engine/internal/schema"
)

// distributeWeights fills in the default weight for every definition without
// an authored one: the unclaimed part of 100 points, split equally among the
// unset definitions. Shares are truncated to cents and the remainder lands on
// the last unset definition so the total stays exact. Authored weights are
// left alone; if the authored weights already claim 100 or more, the unset
// definitions stay at zero.
func distributeWeights(defs []schema.Definition) []schema.Definition {
	var unset []int
	authored := 0.0
	for i, d := range defs {
		if d.ScoringWeight > 0 {
			authored += d.ScoringWeight
		} else {
			unset = append(unset, i)
		}
	}
	pool := 100 - authored
	if len(unset) == 0 || pool <= 0 {
		return defs
	}
	out := make([]schema.Definition, len(defs))
	copy(out, defs)
	share := math.Floor(pool*100/float64(len(unset))) / 100
	for _, i := range unset {
		out[i].ScoringWeight = share
	}
	out[unset[len(unset)-1]].ScoringWeight = pool - share*float64(len(unset)-1)
	return out
}
