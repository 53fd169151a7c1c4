// Package adapt normalizes raw author-supplied exercise objects into
// canonical schema.Definition values. One normalizer per canonical kind;
// author-facing kind strings in any casing/format resolve through the alias
// table before dispatch.
package adapt

import (
	"fmt"
	"strings"

	"github.com/lexiquest/exercise-engine/internal/schema"
)

// RawExercise is a decoded JSON object as supplied by content pipelines.
type RawExercise map[string]any

// NormalizeFunc turns one raw object into a canonical definition. It must be
// pure and must not return a partially built definition alongside an error.
type NormalizeFunc func(raw RawExercise) (schema.Definition, error)

// UnsupportedKindError is returned when the declared kind resolves to no
// registered normalizer.
type UnsupportedKindError struct {
	DeclaredKind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported exercise kind %q", e.DeclaredKind)
}

var registry = map[schema.Kind]NormalizeFunc{}

// Register installs a normalizer for a canonical kind. Called from init()
// in the per-kind files of this package.
func Register(k schema.Kind, fn NormalizeFunc) { registry[k] = fn }

// alias maps a canonicalized author kind string to a canonical kind plus a
// default subtype hint. Subtype never affects validation.
type alias struct {
	kind    schema.Kind
	subtype string
}

var aliases = map[string]alias{
	"single-choice":   {schema.KindSingleChoice, ""},
	"choice":          {schema.KindSingleChoice, ""},
	"quiz":            {schema.KindSingleChoice, ""},
	"true-false":      {schema.KindSingleChoice, "true-false"},
	"color-matching":  {schema.KindSingleChoice, "color-matching"},
	"multi-choice":    {schema.KindMultiChoice, ""},
	"multiple-choice": {schema.KindMultiChoice, ""},
	"multi-select":    {schema.KindMultiChoice, ""},
	"sound-matching":  {schema.KindMultiChoice, "sound-matching"},

	"position-mapping": {schema.KindPositionMapping, ""},
	"drag-and-drop":    {schema.KindPositionMapping, ""},
	"drag-drop":        {schema.KindPositionMapping, ""},
	"drag-categorize":  {schema.KindPositionMapping, ""},
	"categorize":       {schema.KindPositionMapping, ""},
	"sorting":          {schema.KindPositionMapping, ""},

	"free-text":         {schema.KindFreeText, ""},
	"text-input":        {schema.KindFreeText, ""},
	"fill-in-the-blank": {schema.KindFreeText, "blank-completion"},
	"text-completion":   {schema.KindFreeText, "blank-completion"},
	"letter-gap":        {schema.KindFreeText, "letter-gap"},
	"missing-letter":    {schema.KindFreeText, "letter-gap"},
	"spelling":          {schema.KindFreeText, "spelling"},

	"ordered-sequence":  {schema.KindOrderedSequence, ""},
	"sequencing":        {schema.KindOrderedSequence, ""},
	"phrase-sequencing": {schema.KindOrderedSequence, "phrase-sequencing"},
	"sentence-order":    {schema.KindOrderedSequence, "phrase-sequencing"},
	"word-order":        {schema.KindOrderedSequence, "word-order"},

	"highlight-set":  {schema.KindHighlightSet, ""},
	"highlight":      {schema.KindHighlightSet, ""},
	"text-highlight": {schema.KindHighlightSet, ""},
	"find-words":     {schema.KindHighlightSet, "find-words"},
}

// ResolveKind maps an author kind string (any of "dragAndDrop",
// "drag_and_drop", "Drag-And-Drop", ...) to its canonical kind.
func ResolveKind(declared string) (schema.Kind, string, bool) {
	a, ok := aliases[canonicalKindKey(declared)]
	return a.kind, a.subtype, ok
}

// canonicalKindKey lowercases and dash-separates a kind string, folding
// camelCase, snake_case and spaces into one spelling.
func canonicalKindKey(s string) string {
	var b strings.Builder
	prevDash := true
	for i, r := range s {
		switch {
		case r == '_' || r == ' ' || r == '-':
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		case r >= 'A' && r <= 'Z':
			if i > 0 && !prevDash {
				b.WriteByte('-')
			}
			b.WriteRune(r + ('a' - 'A'))
			prevDash = false
		default:
			b.WriteRune(r)
			prevDash = false
		}
	}
	return strings.Trim(b.String(), "-")
}

// Normalize converts one raw exercise of the declared kind into a canonical
// definition. The result always satisfies schema.ValidateShape; a normalizer
// that produces an invalid definition surfaces the ShapeError instead of the
// definition.
func Normalize(raw RawExercise, declaredKind string) (schema.Definition, error) {
	kind, subtype, ok := ResolveKind(declaredKind)
	if !ok {
		return schema.Definition{}, &UnsupportedKindError{DeclaredKind: declaredKind}
	}
	fn, ok := registry[kind]
	if !ok {
		return schema.Definition{}, &UnsupportedKindError{DeclaredKind: declaredKind}
	}
	def, err := fn(raw)
	if err != nil {
		return schema.Definition{}, err
	}
	if def.Subtype == "" {
		def.Subtype = subtype
	}
	if err := schema.ValidateShape(def); err != nil {
		return schema.Definition{}, err
	}
	return def, nil
}

// NormalizeAll normalizes a batch, reading each item's declared kind from its
// "kind" (or "type") field. Any failure aborts the whole batch.
func NormalizeAll(raws []RawExercise) ([]schema.Definition, error) {
	defs := make([]schema.Definition, 0, len(raws))
	for i, raw := range raws {
		declared := getString(raw, "kind", "type")
		if declared == "" {
			return nil, &UnsupportedKindError{DeclaredKind: fmt.Sprintf("(missing kind on item %d)", i)}
		}
		def, err := Normalize(raw, declared)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}
