package adapt

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/lexiquest/exercise-engine/internal/schema"
)

// Raw-field coercion helpers. Author input arrives as decoded JSON, so
// everything is optional and loosely typed; these read the first usable value
// among the field spellings seen in the wild.

func getString(raw RawExercise, keys ...string) string {
	for _, k := range keys {
		if s, ok := raw[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func getSlice(raw RawExercise, keys ...string) []any {
	for _, k := range keys {
		if v, ok := raw[k].([]any); ok {
			return v
		}
	}
	return nil
}

func getFloat(raw RawExercise, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func getBool(raw map[string]any, keys ...string) (bool, bool) {
	for _, k := range keys {
		if v, ok := raw[k].(bool); ok {
			return v, true
		}
	}
	return false, false
}

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

func getStringSlice(raw RawExercise, keys ...string) []string {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			if ss, ok := toStringSlice(v); ok && len(ss) > 0 {
				return ss
			}
		}
	}
	return nil
}

// rawItem is one entry of an author-supplied element list, which may be a
// bare string or an object.
type rawItem struct {
	fields map[string]any
	text   string
}

func (it rawItem) str(keys ...string) string {
	if it.fields == nil {
		return ""
	}
	return getString(it.fields, keys...)
}

func (it rawItem) flag(keys ...string) bool {
	if it.fields == nil {
		return false
	}
	v, _ := getBool(it.fields, keys...)
	return v
}

func itemsOf(raw RawExercise, keys ...string) []rawItem {
	list := getSlice(raw, keys...)
	out := make([]rawItem, 0, len(list))
	for _, e := range list {
		switch v := e.(type) {
		case string:
			out = append(out, rawItem{text: v})
		case map[string]any:
			out = append(out, rawItem{fields: v})
		}
	}
	return out
}

// elementOf builds a canonical element from a raw list entry, generating a
// stable positional id when the author omitted one.
func elementOf(it rawItem, pos int) schema.Element {
	if it.fields == nil {
		return schema.Element{ID: fmt.Sprintf("e%d", pos+1), Content: it.text}
	}
	id := it.str("id", "elementId", "optionId")
	if id == "" {
		id = fmt.Sprintf("e%d", pos+1)
	}
	return schema.Element{
		ID:      id,
		Content: it.str("content", "text", "label", "word", "phrase"),
		Audio:   it.str("audio", "sound"),
	}
}

// baseDefinition fills the fields common to every kind, applying the shared
// defaults table for anything the author left out.
func baseDefinition(raw RawExercise, kind schema.Kind) schema.Definition {
	id := getString(raw, "id", "exerciseId")
	if id == "" {
		id = uuid.NewString()
	}
	instruction := getString(raw, "instruction", "instructions")
	if instruction == "" {
		instruction = instructionFor(kind)
	}
	d := schema.Definition{
		ID:          id,
		Kind:        kind,
		Subtype:     getString(raw, "subtype", "tag"),
		Prompt:      getString(raw, "prompt", "question", "title"),
		Instruction: instruction,
		Difficulty:  difficultyWeight(getString(raw, "difficulty")),
	}
	if w, ok := getFloat(raw, "points", "weight", "scoringWeight"); ok && w > 0 {
		d.ScoringWeight = w
	}
	if allow, ok := getBool(raw, "allowRetry", "retry"); ok {
		d.AllowRetry = &allow
	}
	d.Solution.Kind = kind
	d.Solution.Explanation = getString(raw, "explanation", "feedback")
	d.Solution.Hints = getStringSlice(raw, "hints")
	return d
}
