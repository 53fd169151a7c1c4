package adapt

import "github.com/lexiquest/exercise-engine/internal/schema"

func init() {
	Register(schema.KindSingleChoice, normalizeSingleChoice)
	Register(schema.KindMultiChoice, normalizeMultiChoice)
}

// choiceParts extracts options and the set of ids flagged correct. Correct
// options can be flagged inline ("correct": true) or listed separately under
// "correctOptions"/"answer".
func choiceParts(raw RawExercise) ([]schema.Element, []string) {
	items := itemsOf(raw, "options", "choices", "answers", "elements")
	elements := make([]schema.Element, 0, len(items))
	var correct []string
	for i, it := range items {
		el := elementOf(it, i)
		elements = append(elements, el)
		if it.flag("correct", "isCorrect") {
			correct = append(correct, el.ID)
		}
	}
	if len(correct) == 0 {
		correct = getStringSlice(raw, "correctOptions", "correctOptionIds", "answerIds")
	}
	if len(correct) == 0 {
		// last resort: match the declared answer text against option content
		if ans := getString(raw, "answer", "correctAnswer"); ans != "" {
			for _, el := range elements {
				if el.Content == ans {
					correct = append(correct, el.ID)
					break
				}
			}
		}
	}
	return elements, correct
}

func normalizeSingleChoice(raw RawExercise) (schema.Definition, error) {
	d := baseDefinition(raw, schema.KindSingleChoice)
	d.Elements, d.Solution.CorrectOptionIDs = choiceParts(raw)
	return d, nil
}

func normalizeMultiChoice(raw RawExercise) (schema.Definition, error) {
	d := baseDefinition(raw, schema.KindMultiChoice)
	d.Elements, d.Solution.CorrectOptionIDs = choiceParts(raw)
	d.Solution.RequiredSelections = len(d.Solution.CorrectOptionIDs)
	if n, ok := getFloat(raw, "requiredSelections"); ok && int(n) > 0 {
		d.Solution.RequiredSelections = int(n)
	}
	return d, nil
}
