// Package validate decides whether a candidate answer is correct for a
// canonical definition. One rule per kind, all boolean all-or-nothing;
// partial credit is deliberately not computed here.
package validate

import (
	"fmt"
	"strings"

	"github.com/lexiquest/exercise-engine/internal/schema"
)

// Outcome is the result of validating one answer. Incorrect is not an error;
// errors are reserved for malformed answer payloads.
type Outcome struct {
	Correct bool
}

// MismatchError reports a candidate answer whose shape does not match what
// the definition's kind expects (a string where a set was needed, etc.).
// Distinct from an incorrect answer, which is a normal Outcome.
type MismatchError struct {
	Kind schema.Kind
	Want string
	Got  any
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("answer for %s must be %s, got %T", e.Kind, e.Want, e.Got)
}

type rule func(sol schema.Solution, answer any) (Outcome, error)

var rules = map[schema.Kind]rule{
	schema.KindSingleChoice:    singleChoiceRule,
	schema.KindMultiChoice:     multiChoiceRule,
	schema.KindPositionMapping: positionMappingRule,
	schema.KindFreeText:        freeTextRule,
	schema.KindOrderedSequence: orderedSequenceRule,
	schema.KindHighlightSet:    highlightSetRule,
}

// Validate applies the rule for the definition's kind. Pure: identical inputs
// always yield identical outcomes.
func Validate(def schema.Definition, answer any) (Outcome, error) {
	r, ok := rules[def.Kind]
	if !ok {
		return Outcome{}, fmt.Errorf("no validation rule for kind %q", def.Kind)
	}
	return r(def.Solution, answer)
}

func singleChoiceRule(sol schema.Solution, answer any) (Outcome, error) {
	id, ok := answer.(string)
	if !ok {
		return Outcome{}, &MismatchError{Kind: schema.KindSingleChoice, Want: "an element id string", Got: answer}
	}
	for _, c := range sol.CorrectOptionIDs {
		if id == c {
			return Outcome{Correct: true}, nil
		}
	}
	return Outcome{}, nil
}

func multiChoiceRule(sol schema.Solution, answer any) (Outcome, error) {
	ids, ok := toStringSlice(answer)
	if !ok {
		return Outcome{}, &MismatchError{Kind: schema.KindMultiChoice, Want: "a set of element ids", Got: answer}
	}
	if len(ids) != sol.RequiredSelections {
		return Outcome{}, nil
	}
	return Outcome{Correct: setEqual(toSet(ids), toSet(sol.CorrectOptionIDs))}, nil
}

func positionMappingRule(sol schema.Solution, answer any) (Outcome, error) {
	placed, ok := toStringSliceMap(answer)
	if !ok {
		return Outcome{}, &MismatchError{Kind: schema.KindPositionMapping, Want: "a zone id -> element ids mapping", Got: answer}
	}
	// every zone, every id, no extras, no omissions
	for zone := range placed {
		if _, ok := sol.CorrectPositions[zone]; !ok {
			return Outcome{}, nil
		}
	}
	for zone, want := range sol.CorrectPositions {
		if !setEqual(toSet(placed[zone]), toSet(want)) {
			return Outcome{}, nil
		}
	}
	return Outcome{Correct: true}, nil
}

func freeTextRule(sol schema.Solution, answer any) (Outcome, error) {
	text, ok := answer.(string)
	if !ok {
		return Outcome{}, &MismatchError{Kind: schema.KindFreeText, Want: "a string", Got: answer}
	}
	text = strings.TrimSpace(text)
	for _, accepted := range sol.CorrectAnswers {
		if strings.EqualFold(text, strings.TrimSpace(accepted)) {
			return Outcome{Correct: true}, nil
		}
	}
	return Outcome{}, nil
}

func orderedSequenceRule(sol schema.Solution, answer any) (Outcome, error) {
	ids, ok := toStringSlice(answer)
	if !ok {
		return Outcome{}, &MismatchError{Kind: schema.KindOrderedSequence, Want: "an ordered list of element ids", Got: answer}
	}
	if len(ids) != len(sol.CorrectSequence) {
		return Outcome{}, nil
	}
	for i := range ids {
		if ids[i] != sol.CorrectSequence[i] {
			return Outcome{}, nil
		}
	}
	return Outcome{Correct: true}, nil
}

func highlightSetRule(sol schema.Solution, answer any) (Outcome, error) {
	ids, ok := toStringSlice(answer)
	if !ok {
		return Outcome{}, &MismatchError{Kind: schema.KindHighlightSet, Want: "a set of target ids", Got: answer}
	}
	return Outcome{Correct: setEqual(toSet(ids), toSet(sol.CorrectTargets))}, nil
}

// helpers

func toStringSlice(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}

func toStringSliceMap(v any) (map[string][]string, bool) {
	switch t := v.(type) {
	case map[string][]string:
		return t, true
	case map[string]any:
		out := make(map[string][]string, len(t))
		for k, e := range t {
			ss, ok := toStringSlice(e)
			if !ok {
				return nil, false
			}
			out[k] = ss
		}
		return out, true
	default:
		return nil, false
	}
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}

func setEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
