package schema

// Kind is the closed set of canonical exercise kinds. Adapters resolve the
// many author-facing type strings down to one of these.
type Kind string

const (
	KindSingleChoice    Kind = "single-choice"
	KindMultiChoice     Kind = "multi-choice"
	KindPositionMapping Kind = "position-mapping"
	KindFreeText        Kind = "free-text"
	KindOrderedSequence Kind = "ordered-sequence"
	KindHighlightSet    Kind = "highlight-set"
)

var knownKinds = map[Kind]bool{
	KindSingleChoice:    true,
	KindMultiChoice:     true,
	KindPositionMapping: true,
	KindFreeText:        true,
	KindOrderedSequence: true,
	KindHighlightSet:    true,
}

// IsKnownKind reports whether k is one of the canonical kinds.
func IsKnownKind(k Kind) bool { return knownKinds[k] }

// Kinds returns the canonical kinds in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindSingleChoice,
		KindMultiChoice,
		KindPositionMapping,
		KindFreeText,
		KindOrderedSequence,
		KindHighlightSet,
	}
}
