package adapt

import (
	"errors"
	"testing"

	"github.com/lexiquest/exercise-engine/internal/schema"
)

func TestResolveKindAliases(t *testing.T) {
	cases := []struct {
		declared string
		want     schema.Kind
	}{
		{"dragAndDrop", schema.KindPositionMapping},
		{"drag-and-drop", schema.KindPositionMapping},
		{"drag_and_drop", schema.KindPositionMapping},
		{"Drag And Drop", schema.KindPositionMapping},
		{"multipleChoice", schema.KindMultiChoice},
		{"soundMatching", schema.KindMultiChoice},
		{"missing-letter", schema.KindFreeText},
		{"phraseSequencing", schema.KindOrderedSequence},
		{"textHighlight", schema.KindHighlightSet},
		{"trueFalse", schema.KindSingleChoice},
	}
	for _, tc := range cases {
		got, _, ok := ResolveKind(tc.declared)
		if !ok {
			t.Fatalf("ResolveKind(%q): not resolved", tc.declared)
		}
		if got != tc.want {
			t.Fatalf("ResolveKind(%q) = %q, want %q", tc.declared, got, tc.want)
		}
	}
	if _, _, ok := ResolveKind("crossword"); ok {
		t.Fatalf("unknown kind resolved")
	}
}

func TestNormalizeUnsupportedKind(t *testing.T) {
	_, err := Normalize(RawExercise{"prompt": "?"}, "crossword")
	var uk *UnsupportedKindError
	if !errors.As(err, &uk) {
		t.Fatalf("want UnsupportedKindError, got %v", err)
	}
	if uk.DeclaredKind != "crossword" {
		t.Fatalf("error should name the input kind, got %q", uk.DeclaredKind)
	}
}

// Round-trip property: every normalizer output passes shape validation.
func TestNormalizeRoundTrip(t *testing.T) {
	cases := []struct {
		name     string
		declared string
		raw      RawExercise
		want     schema.Kind
	}{
		{
			name:     "single choice",
			declared: "singleChoice",
			raw: RawExercise{
				"prompt": "Which color is the sun?",
				"options": []any{
					map[string]any{"id": "a", "text": "Yellow", "correct": true},
					map[string]any{"id": "b", "text": "Blue"},
				},
			},
			want: schema.KindSingleChoice,
		},
		{
			name:     "multi choice",
			declared: "multipleChoice",
			raw: RawExercise{
				"prompt": "Pick the vowels.",
				"options": []any{
					map[string]any{"id": "x", "text": "a", "correct": true},
					map[string]any{"id": "y", "text": "e", "correct": true},
					map[string]any{"id": "z", "text": "k"},
				},
			},
			want: schema.KindMultiChoice,
		},
		{
			name:     "drag and drop",
			declared: "dragAndDrop",
			raw: RawExercise{
				"prompt": "Sort the animals.",
				"zones":  []any{"Mammals", "Amphibians"},
				"items": []any{
					map[string]any{"id": "cat", "text": "Cat", "category": "Mammals"},
					map[string]any{"id": "frog", "text": "Frog", "category": "Amphibians"},
				},
			},
			want: schema.KindPositionMapping,
		},
		{
			name:     "free text",
			declared: "fillInTheBlank",
			raw: RawExercise{
				"prompt": "The capital of France is ___.",
				"answer": "Paris",
			},
			want: schema.KindFreeText,
		},
		{
			name:     "ordered sequence",
			declared: "phraseSequencing",
			raw: RawExercise{
				"prompt":       "Build the sentence.",
				"phrases":      []any{"the", "quick", "fox"},
				"correctOrder": []any{"e1", "e2", "e3"},
			},
			want: schema.KindOrderedSequence,
		},
		{
			name:     "highlight",
			declared: "textHighlight",
			raw: RawExercise{
				"prompt": "Tap every noun.",
				"tokens": []any{
					map[string]any{"id": "t1", "text": "dog", "correct": true},
					map[string]any{"id": "t2", "text": "runs"},
				},
			},
			want: schema.KindHighlightSet,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			def, err := Normalize(tc.raw, tc.declared)
			if err != nil {
				t.Fatalf("Normalize: %v", err)
			}
			if def.Kind != tc.want {
				t.Fatalf("kind = %q, want %q", def.Kind, tc.want)
			}
			if err := schema.ValidateShape(def); err != nil {
				t.Fatalf("normalized definition fails shape validation: %v", err)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	def, err := Normalize(RawExercise{
		"prompt": "Which color is the sun?",
		"options": []any{
			map[string]any{"id": "a", "text": "Yellow", "correct": true},
			map[string]any{"id": "b", "text": "Blue"},
		},
	}, "singleChoice")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if def.ID == "" {
		t.Fatalf("missing generated id")
	}
	if def.Difficulty != 3 {
		t.Fatalf("default difficulty = %d, want 3 (medium)", def.Difficulty)
	}
	if def.Instruction != "Choose the correct answer." {
		t.Fatalf("default instruction = %q", def.Instruction)
	}
}

func TestNormalizePositionGrouping(t *testing.T) {
	def, err := Normalize(RawExercise{
		"prompt": "Sort the words.",
		"items": []any{
			map[string]any{"id": "w1", "text": "run", "category": "Verbs"},
			map[string]any{"id": "w2", "text": "dog", "category": "Nouns"},
			map[string]any{"id": "w3", "text": "jump", "category": "Verbs"},
		},
	}, "categorize")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(def.Zones) != 2 {
		t.Fatalf("zones = %d, want 2 derived from categories", len(def.Zones))
	}
	verbs := def.Solution.CorrectPositions[def.Zones[0].ID]
	if len(verbs) != 2 || verbs[0] != "w1" || verbs[1] != "w3" {
		t.Fatalf("verb zone = %v", verbs)
	}
}

func TestNormalizeMappingDistractorZone(t *testing.T) {
	def, err := Normalize(RawExercise{
		"prompt": "Sort the animals.",
		"zones":  []any{"Mammals", "Birds"},
		"items": []any{
			map[string]any{"id": "cat", "text": "cat", "category": "Mammals"},
			map[string]any{"id": "dog", "text": "dog", "category": "Mammals"},
		},
	}, "dragAndDrop")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(def.Solution.CorrectPositions) != 2 {
		t.Fatalf("correct positions = %v, want an entry per zone", def.Solution.CorrectPositions)
	}
	empty, ok := def.Solution.CorrectPositions[def.Zones[1].ID]
	if !ok {
		t.Fatalf("distractor zone %q missing from solution", def.Zones[1].ID)
	}
	if len(empty) != 0 {
		t.Fatalf("distractor zone = %v, want empty", empty)
	}
}

func TestNormalizeSequenceFallback(t *testing.T) {
	def, err := Normalize(RawExercise{
		"prompt":  "Build the sentence.",
		"phrases": []any{"the", "quick", "fox"},
	}, "sequencing")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []string{"e1", "e2", "e3"}
	if len(def.Solution.CorrectSequence) != len(want) {
		t.Fatalf("sequence = %v", def.Solution.CorrectSequence)
	}
	for i := range want {
		if def.Solution.CorrectSequence[i] != want[i] {
			t.Fatalf("input order not preserved: %v", def.Solution.CorrectSequence)
		}
	}
	if def.Subtype != "implicit-order" {
		t.Fatalf("implicit order fallback should be tagged, got subtype %q", def.Subtype)
	}
}

func TestNormalizeExplicitIndexOrder(t *testing.T) {
	def, err := Normalize(RawExercise{
		"prompt":  "Build the sentence.",
		"phrases": []any{"fox", "the", "quick"},
		"order":   []any{float64(1), float64(2), float64(0)},
	}, "sequencing")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []string{"e2", "e3", "e1"}
	for i := range want {
		if def.Solution.CorrectSequence[i] != want[i] {
			t.Fatalf("sequence = %v, want %v", def.Solution.CorrectSequence, want)
		}
	}
}

func TestNormalizeAllAbortsOnFirstError(t *testing.T) {
	_, err := NormalizeAll([]RawExercise{
		{"kind": "singleChoice", "prompt": "ok?", "options": []any{
			map[string]any{"id": "a", "text": "Yes", "correct": true},
		}},
		{"kind": "unknown-kind", "prompt": "?"},
	})
	var uk *UnsupportedKindError
	if !errors.As(err, &uk) {
		t.Fatalf("want UnsupportedKindError, got %v", err)
	}
}
