package adapt

import "github.com/lexiquest/exercise-engine/internal/schema"

// Defaults consulted by every normalizer so fallback behavior stays uniform
// across kinds instead of scattered per adapter.

const defaultDifficultyTag = "medium"

var difficultyWeights = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// difficultyWeight maps an author difficulty tag to its numeric weight,
// falling back to medium for unknown or missing tags.
func difficultyWeight(tag string) int {
	if w, ok := difficultyWeights[tag]; ok {
		return w
	}
	return difficultyWeights[defaultDifficultyTag]
}

var defaultInstructions = map[schema.Kind]string{
	schema.KindSingleChoice:    "Choose the correct answer.",
	schema.KindMultiChoice:     "Select all answers that apply.",
	schema.KindPositionMapping: "Drag each item to the group it belongs to.",
	schema.KindFreeText:        "Type your answer.",
	schema.KindOrderedSequence: "Arrange the items in the correct order.",
	schema.KindHighlightSet:    "Tap every item that matches.",
}

func instructionFor(kind schema.Kind) string { return defaultInstructions[kind] }
