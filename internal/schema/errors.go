package schema

import "fmt"

// ShapeError reports a structurally invalid definition: a missing field, a
// dangling reference, a solution tag that does not match the kind. It marks a
// defect in whatever built the definition, not a recoverable user condition.
type ShapeError struct {
	DefinitionID string
	Field        string
	Reason       string
}

func (e *ShapeError) Error() string {
	if e.DefinitionID == "" {
		return fmt.Sprintf("invalid definition shape: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid definition shape: %s: %s: %s", e.DefinitionID, e.Field, e.Reason)
}

func shapeErr(id, field, format string, args ...any) *ShapeError {
	return &ShapeError{DefinitionID: id, Field: field, Reason: fmt.Sprintf(format, args...)}
}
