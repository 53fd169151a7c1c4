package adapt

import "github.com/lexiquest/exercise-engine/internal/schema"

func init() {
	Register(schema.KindFreeText, normalizeFreeText)
}

// normalizeFreeText covers every typed-answer exercise: blank completion,
// letter-gap words, plain spelling. Accepted answers come from a list or a
// single "answer"/"word" field; letter-gap input may instead carry the full
// word plus gap positions, in which case the word itself is the answer.
func normalizeFreeText(raw RawExercise) (schema.Definition, error) {
	d := baseDefinition(raw, schema.KindFreeText)

	answers := getStringSlice(raw, "answers", "correctAnswers", "acceptedAnswers")
	if len(answers) == 0 {
		if a := getString(raw, "answer", "correctAnswer", "word"); a != "" {
			answers = []string{a}
		}
	}
	d.Solution.CorrectAnswers = answers

	// Letter-gap authors often supply distractor letters to render; keep them
	// as elements so presentation has stable ids to work with.
	for i, it := range itemsOf(raw, "letters", "elements", "tiles") {
		d.Elements = append(d.Elements, elementOf(it, i))
	}

	// A prompt like "c_t" sometimes arrives only as the gapped word.
	if d.Prompt == "" {
		if gapped := getString(raw, "gappedWord", "maskedWord"); gapped != "" {
			d.Prompt = gapped
			if d.Subtype == "" {
				d.Subtype = "letter-gap"
			}
		}
	}
	return d, nil
}
