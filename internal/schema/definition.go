package schema

// Element is one interactable unit of an exercise: an option, a draggable
// item, a token to highlight, a phrase to order.
type Element struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Audio   string `json:"audio,omitempty"` // media reference, presentation-only
}

// Zone is a drop target for position-mapping exercises.
type Zone struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Solution carries the data needed to validate one answer. Kind tags the
// variant; only the fields for that kind are populated.
type Solution struct {
	Kind Kind `json:"kind"`

	// single-choice (exactly one id) and multi-choice
	CorrectOptionIDs   []string `json:"correct_option_ids,omitempty"`
	RequiredSelections int      `json:"required_selections,omitempty"`

	// position-mapping: zone id -> element ids that belong there
	CorrectPositions map[string][]string `json:"correct_positions,omitempty"`

	// free-text: any accepted answer matches (case-insensitive, trimmed)
	CorrectAnswers []string `json:"correct_answers,omitempty"`

	// ordered-sequence
	CorrectSequence []string `json:"correct_sequence,omitempty"`

	// highlight-set
	CorrectTargets []string `json:"correct_targets,omitempty"`

	Explanation string   `json:"explanation,omitempty"`
	Hints       []string `json:"hints,omitempty"`
}

// Definition is the canonical, immutable description of one exercise.
// Adapters produce it once from raw author input; the validation engine and
// session controller only ever read it.
type Definition struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Subtype     string    `json:"subtype,omitempty"` // presentation/analytics hint only
	Prompt      string    `json:"prompt"`
	Instruction string    `json:"instruction,omitempty"`
	Difficulty  int       `json:"difficulty"` // 1..5, derived from author difficulty tag
	Elements    []Element `json:"elements,omitempty"`
	Zones       []Zone    `json:"zones,omitempty"` // position-mapping only
	Solution    Solution  `json:"solution"`

	// ScoringWeight is the point value of this exercise. Zero means unset;
	// the session controller distributes 100 across unset definitions.
	ScoringWeight float64 `json:"scoring_weight,omitempty"`

	// AllowRetry overrides the per-kind retry default when non-nil.
	AllowRetry *bool `json:"allow_retry,omitempty"`
}

// MaxScore sums the scoring weights of defs.
func MaxScore(defs []Definition) float64 {
	total := 0.0
	for _, d := range defs {
		total += d.ScoringWeight
	}
	return total
}
