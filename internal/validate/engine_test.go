package validate

import (
	"errors"
	"testing"

	"github.com/lexiquest/exercise-engine/internal/schema"
)

func singleChoiceDef() schema.Definition {
	return schema.Definition{
		ID:   "q1",
		Kind: schema.KindSingleChoice,
		Elements: []schema.Element{
			{ID: "a", Content: "Yellow"}, {ID: "b", Content: "Blue"},
		},
		Solution: schema.Solution{Kind: schema.KindSingleChoice, CorrectOptionIDs: []string{"a"}},
	}
}

func TestSingleChoice(t *testing.T) {
	def := singleChoiceDef()
	out, err := Validate(def, "a")
	if err != nil || !out.Correct {
		t.Fatalf("correct option rejected: %v %v", out, err)
	}
	out, err = Validate(def, "b")
	if err != nil || out.Correct {
		t.Fatalf("wrong option accepted: %v %v", out, err)
	}
}

func TestMultiChoiceExactSet(t *testing.T) {
	def := schema.Definition{
		ID:   "q2",
		Kind: schema.KindMultiChoice,
		Elements: []schema.Element{
			{ID: "x"}, {ID: "y"}, {ID: "z"},
		},
		Solution: schema.Solution{
			Kind:               schema.KindMultiChoice,
			CorrectOptionIDs:   []string{"x", "y"},
			RequiredSelections: 2,
		},
	}
	cases := []struct {
		name   string
		answer any
		want   bool
	}{
		{"exact set", []string{"x", "y"}, true},
		{"order irrelevant", []string{"y", "x"}, true},
		{"wrong size", []string{"x"}, false},
		{"wrong members", []string{"x", "z"}, false},
		{"superset", []string{"x", "y", "z"}, false},
		{"json-decoded slice", []any{"x", "y"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Validate(def, tc.answer)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if out.Correct != tc.want {
				t.Fatalf("correct = %v, want %v", out.Correct, tc.want)
			}
		})
	}
}

func TestPositionMapping(t *testing.T) {
	def := schema.Definition{
		ID:       "q3",
		Kind:     schema.KindPositionMapping,
		Elements: []schema.Element{{ID: "cat"}, {ID: "frog"}, {ID: "newt"}},
		Zones:    []schema.Zone{{ID: "mammals"}, {ID: "amphibians"}},
		Solution: schema.Solution{
			Kind: schema.KindPositionMapping,
			CorrectPositions: map[string][]string{
				"mammals":    {"cat"},
				"amphibians": {"frog", "newt"},
			},
		},
	}
	cases := []struct {
		name   string
		answer map[string][]string
		want   bool
	}{
		{"exact", map[string][]string{"mammals": {"cat"}, "amphibians": {"newt", "frog"}}, true},
		{"omission", map[string][]string{"mammals": {"cat"}, "amphibians": {"frog"}}, false},
		{"swap", map[string][]string{"mammals": {"frog"}, "amphibians": {"cat", "newt"}}, false},
		{"extra zone", map[string][]string{"mammals": {"cat"}, "amphibians": {"frog", "newt"}, "birds": {}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Validate(def, tc.answer)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if out.Correct != tc.want {
				t.Fatalf("correct = %v, want %v", out.Correct, tc.want)
			}
		})
	}
}

func TestPositionMappingDistractorZone(t *testing.T) {
	def := schema.Definition{
		ID:       "q3b",
		Kind:     schema.KindPositionMapping,
		Elements: []schema.Element{{ID: "cat"}, {ID: "dog"}},
		Zones:    []schema.Zone{{ID: "mammals"}, {ID: "birds"}},
		Solution: schema.Solution{
			Kind: schema.KindPositionMapping,
			CorrectPositions: map[string][]string{
				"mammals": {"cat", "dog"},
				"birds":   {},
			},
		},
	}
	cases := []struct {
		name   string
		answer map[string][]string
		want   bool
	}{
		{"full zone map", map[string][]string{"mammals": {"cat", "dog"}, "birds": {}}, true},
		{"empty zone omitted", map[string][]string{"mammals": {"cat", "dog"}}, true},
		{"element in distractor", map[string][]string{"mammals": {"cat"}, "birds": {"dog"}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Validate(def, tc.answer)
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if out.Correct != tc.want {
				t.Fatalf("correct = %v, want %v", out.Correct, tc.want)
			}
		})
	}
}

func TestFreeTextCaseAndSpace(t *testing.T) {
	def := schema.Definition{
		ID:   "q4",
		Kind: schema.KindFreeText,
		Solution: schema.Solution{
			Kind:           schema.KindFreeText,
			CorrectAnswers: []string{"Paris", "paris, france"},
		},
	}
	for _, ans := range []string{"Paris", "  paris ", "PARIS", "Paris, France"} {
		out, err := Validate(def, ans)
		if err != nil || !out.Correct {
			t.Fatalf("answer %q rejected: %v %v", ans, out, err)
		}
	}
	out, _ := Validate(def, "Lyon")
	if out.Correct {
		t.Fatalf("wrong answer accepted")
	}
}

func TestOrderedSequenceExactness(t *testing.T) {
	def := schema.Definition{
		ID:       "q5",
		Kind:     schema.KindOrderedSequence,
		Elements: []schema.Element{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		Solution: schema.Solution{Kind: schema.KindOrderedSequence, CorrectSequence: []string{"p1", "p2", "p3"}},
	}
	out, err := Validate(def, []string{"p1", "p3", "p2"})
	if err != nil || out.Correct {
		t.Fatalf("misordered sequence accepted: %v %v", out, err)
	}
	out, err = Validate(def, []string{"p1", "p2", "p3"})
	if err != nil || !out.Correct {
		t.Fatalf("correct sequence rejected: %v %v", out, err)
	}
}

func TestHighlightSet(t *testing.T) {
	def := schema.Definition{
		ID:       "q6",
		Kind:     schema.KindHighlightSet,
		Elements: []schema.Element{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}},
		Solution: schema.Solution{Kind: schema.KindHighlightSet, CorrectTargets: []string{"t1", "t3"}},
	}
	out, _ := Validate(def, []string{"t3", "t1"})
	if !out.Correct {
		t.Fatalf("exact target set rejected")
	}
	out, _ = Validate(def, []string{"t1"})
	if out.Correct {
		t.Fatalf("partial target set accepted")
	}
}

func TestMismatchIsNotIncorrect(t *testing.T) {
	def := singleChoiceDef()
	_, err := Validate(def, []string{"a"})
	var mm *MismatchError
	if !errors.As(err, &mm) {
		t.Fatalf("want MismatchError for wrong payload shape, got %v", err)
	}
	if mm.Kind != schema.KindSingleChoice {
		t.Fatalf("mismatch error should carry the kind, got %q", mm.Kind)
	}
}

func TestValidateIdempotent(t *testing.T) {
	def := singleChoiceDef()
	first, err1 := Validate(def, "a")
	second, err2 := Validate(def, "a")
	if err1 != nil || err2 != nil || first != second {
		t.Fatalf("validation not idempotent: %v %v %v %v", first, second, err1, err2)
	}
}
