package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viral-agent/internal/models"
	"github.com/viral-agent/pkg/logger"
)

// ErrInvalidInput marks failures caused by the caller's request
var ErrInvalidInput = errors.New("invalid input")

// Messages returned to clients
const (
	MsgInvalidNiche    = "Invalid niche provided"
	MsgInvalidBody     = "Invalid request body"
	MsgGenerateFailed  = "Failed to generate ideas"
	MsgTooManyRequests = "Too many requests"
)

// inputError is an ErrInvalidInput carrying the client-facing message
type inputError struct {
	msg string
	err error
}

func (e *inputError) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

func (e *inputError) Unwrap() []error {
	if e.err != nil {
		return []error{ErrInvalidInput, e.err}
	}
	return []error{ErrInvalidInput}
}

func invalidInput(msg string, cause error) error {
	return &inputError{msg: msg, err: cause}
}

// WriteJSON writes v with the given status code
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError maps err onto the wire contract: invalid input becomes a 400
// with its message, anything else a generic 500 with the detail logged.
func WriteError(w http.ResponseWriter, log *logger.Logger, err error) {
	var in *inputError
	if errors.As(err, &in) {
		log.Debug().Err(err).Msg("Rejected generate request")
		WriteJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: in.msg})
		return
	}

	log.Error().Err(err).Msg("Error generating ideas")
	WriteJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: MsgGenerateFailed})
}
