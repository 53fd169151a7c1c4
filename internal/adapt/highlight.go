package adapt

import "github.com/lexiquest/exercise-engine/internal/schema"

func init() {
	Register(schema.KindHighlightSet, normalizeHighlightSet)
}

// normalizeHighlightSet handles text-highlighting exercises: a token list
// where some tokens are the targets, flagged inline or listed separately.
func normalizeHighlightSet(raw RawExercise) (schema.Definition, error) {
	d := baseDefinition(raw, schema.KindHighlightSet)

	var targets []string
	for i, it := range itemsOf(raw, "tokens", "words", "items", "elements") {
		el := elementOf(it, i)
		d.Elements = append(d.Elements, el)
		if it.flag("correct", "highlight", "target") {
			targets = append(targets, el.ID)
		}
	}
	if len(targets) == 0 {
		targets = getStringSlice(raw, "correctTargets", "targetIds")
	}
	d.Solution.CorrectTargets = targets
	return d, nil
}
