package http

import (
	"errors"
	"net/http"

	"github.com/lexiquest/exercise-engine/internal/adapt"
	"github.com/lexiquest/exercise-engine/internal/schema"
	"github.com/lexiquest/exercise-engine/internal/session"
	"github.com/lexiquest/exercise-engine/internal/validate"
)

// statusFor maps engine errors onto HTTP statuses: bad author input is 400,
// an event invalid for the current state is 409, a malformed answer payload
// is 422, unknown ids are 404.
func statusFor(err error) int {
	var unsupported *adapt.UnsupportedKindError
	var shape *schema.ShapeError
	var protocol *session.ProtocolError
	var mismatch *validate.MismatchError
	switch {
	case errors.As(err, &unsupported), errors.As(err, &shape):
		return http.StatusBadRequest
	case errors.As(err, &protocol):
		return http.StatusConflict
	case errors.As(err, &mismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrSetNotFound), errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeErr(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}
