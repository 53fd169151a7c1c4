package adapt

import "github.com/lexiquest/exercise-engine/internal/schema"

func init() {
	Register(schema.KindOrderedSequence, normalizeOrderedSequence)
}

// normalizeOrderedSequence builds phrase/word ordering exercises. The target
// order comes from an explicit "correctOrder" array (element ids, or 0-based
// indices into the item list). Without one, the input order itself is taken
// as correct; such definitions get the "implicit-order" subtype so authoring
// tools can surface the likely mistake of a trivially solvable puzzle.
func normalizeOrderedSequence(raw RawExercise) (schema.Definition, error) {
	d := baseDefinition(raw, schema.KindOrderedSequence)

	items := itemsOf(raw, "items", "phrases", "segments", "words", "elements")
	for i, it := range items {
		d.Elements = append(d.Elements, elementOf(it, i))
	}

	if ids := getStringSlice(raw, "correctOrder", "correctSequence", "order"); len(ids) > 0 {
		d.Solution.CorrectSequence = ids
	} else if idx := getSlice(raw, "correctOrder", "order"); len(idx) > 0 {
		for _, v := range idx {
			f, ok := v.(float64)
			if !ok || int(f) < 0 || int(f) >= len(d.Elements) {
				continue
			}
			d.Solution.CorrectSequence = append(d.Solution.CorrectSequence, d.Elements[int(f)].ID)
		}
	}

	if len(d.Solution.CorrectSequence) == 0 {
		for _, el := range d.Elements {
			d.Solution.CorrectSequence = append(d.Solution.CorrectSequence, el.ID)
		}
		if d.Subtype == "" {
			d.Subtype = "implicit-order"
		}
	}
	return d, nil
}
