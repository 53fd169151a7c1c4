package session

import "github.com/lexiquest/exercise-engine/internal/schema"

// Per-kind retry limits after an incorrect answer. Multi-choice exercises do
// not offer a retry; every other kind allows exactly one before the learner
// must acknowledge and move on. Kept as data, and overridable per definition,
// because the allow/deny matrix is product configuration rather than a rule
// of the machine.
var defaultRetryLimits = map[schema.Kind]int{
	schema.KindSingleChoice:    1,
	schema.KindMultiChoice:     0,
	schema.KindPositionMapping: 1,
	schema.KindFreeText:        1,
	schema.KindOrderedSequence: 1,
	schema.KindHighlightSet:    1,
}

func retryLimit(def schema.Definition) int {
	if def.AllowRetry != nil {
		if *def.AllowRetry {
			return 1
		}
		return 0
	}
	return defaultRetryLimits[def.Kind]
}

func retryAllowed(def schema.Definition, used int) bool {
	return used < retryLimit(def)
}
