package schema

// ValidateShape runs structural consistency checks on a definition: known
// kind, unique ids, solution variant matching the kind, and referential
// integrity between solution and elements. It never evaluates correctness of
// any answer.
func ValidateShape(d Definition) error {
	if d.ID == "" {
		return shapeErr("", "id", "required")
	}
	if !IsKnownKind(d.Kind) {
		return shapeErr(d.ID, "kind", "unknown kind %q", d.Kind)
	}
	if d.Prompt == "" {
		return shapeErr(d.ID, "prompt", "required")
	}
	if d.Solution.Kind != d.Kind {
		return shapeErr(d.ID, "solution.kind", "tag %q does not match kind %q", d.Solution.Kind, d.Kind)
	}
	if d.ScoringWeight < 0 {
		return shapeErr(d.ID, "scoring_weight", "must not be negative")
	}

	elems := map[string]bool{}
	for i, el := range d.Elements {
		if el.ID == "" {
			return shapeErr(d.ID, "elements", "element %d has empty id", i)
		}
		if elems[el.ID] {
			return shapeErr(d.ID, "elements", "duplicate element id %q", el.ID)
		}
		elems[el.ID] = true
	}

	switch d.Kind {
	case KindSingleChoice:
		if len(d.Solution.CorrectOptionIDs) != 1 {
			return shapeErr(d.ID, "solution.correct_option_ids", "single-choice needs exactly 1 correct id, got %d", len(d.Solution.CorrectOptionIDs))
		}
		return checkElementRefs(d, "solution.correct_option_ids", d.Solution.CorrectOptionIDs, elems)

	case KindMultiChoice:
		if len(d.Solution.CorrectOptionIDs) == 0 {
			return shapeErr(d.ID, "solution.correct_option_ids", "required")
		}
		if d.Solution.RequiredSelections != len(d.Solution.CorrectOptionIDs) {
			return shapeErr(d.ID, "solution.required_selections",
				"must equal number of correct ids (%d), got %d", len(d.Solution.CorrectOptionIDs), d.Solution.RequiredSelections)
		}
		return checkElementRefs(d, "solution.correct_option_ids", d.Solution.CorrectOptionIDs, elems)

	case KindPositionMapping:
		if len(d.Zones) == 0 {
			return shapeErr(d.ID, "zones", "required for position-mapping")
		}
		zones := map[string]bool{}
		for _, z := range d.Zones {
			if z.ID == "" {
				return shapeErr(d.ID, "zones", "zone with empty id")
			}
			if zones[z.ID] {
				return shapeErr(d.ID, "zones", "duplicate zone id %q", z.ID)
			}
			zones[z.ID] = true
		}
		if len(d.Solution.CorrectPositions) == 0 {
			return shapeErr(d.ID, "solution.correct_positions", "required")
		}
		placed := map[string]bool{}
		for zoneID, ids := range d.Solution.CorrectPositions {
			if !zones[zoneID] {
				return shapeErr(d.ID, "solution.correct_positions", "unknown zone id %q", zoneID)
			}
			for _, id := range ids {
				if !elems[id] {
					return shapeErr(d.ID, "solution.correct_positions", "unknown element id %q", id)
				}
				if placed[id] {
					return shapeErr(d.ID, "solution.correct_positions", "element %q placed in more than one zone", id)
				}
				placed[id] = true
			}
		}
		return nil

	case KindFreeText:
		if len(d.Solution.CorrectAnswers) == 0 {
			return shapeErr(d.ID, "solution.correct_answers", "required")
		}
		for i, a := range d.Solution.CorrectAnswers {
			if a == "" {
				return shapeErr(d.ID, "solution.correct_answers", "answer %d is empty", i)
			}
		}
		return nil

	case KindOrderedSequence:
		if len(d.Solution.CorrectSequence) == 0 {
			return shapeErr(d.ID, "solution.correct_sequence", "required")
		}
		seen := map[string]bool{}
		for _, id := range d.Solution.CorrectSequence {
			if !elems[id] {
				return shapeErr(d.ID, "solution.correct_sequence", "unknown element id %q", id)
			}
			if seen[id] {
				return shapeErr(d.ID, "solution.correct_sequence", "duplicate element id %q", id)
			}
			seen[id] = true
		}
		if len(d.Solution.CorrectSequence) != len(d.Elements) {
			return shapeErr(d.ID, "solution.correct_sequence",
				"must order every element: %d of %d", len(d.Solution.CorrectSequence), len(d.Elements))
		}
		return nil

	case KindHighlightSet:
		if len(d.Solution.CorrectTargets) == 0 {
			return shapeErr(d.ID, "solution.correct_targets", "required")
		}
		seen := map[string]bool{}
		for _, id := range d.Solution.CorrectTargets {
			if !elems[id] {
				return shapeErr(d.ID, "solution.correct_targets", "unknown element id %q", id)
			}
			if seen[id] {
				return shapeErr(d.ID, "solution.correct_targets", "duplicate target id %q", id)
			}
			seen[id] = true
		}
		return nil
	}
	return shapeErr(d.ID, "kind", "unhandled kind %q", d.Kind)
}

func checkElementRefs(d Definition, field string, ids []string, elems map[string]bool) error {
	seen := map[string]bool{}
	for _, id := range ids {
		if !elems[id] {
			return shapeErr(d.ID, field, "unknown element id %q", id)
		}
		if seen[id] {
			return shapeErr(d.ID, field, "duplicate id %q", id)
		}
		seen[id] = true
	}
	return nil
}
