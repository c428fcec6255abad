package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/gorilla/mux"

	"backstage/internal/auth"
	"backstage/internal/logging"
	"backstage/internal/models"
	"backstage/internal/store"
)

// envelope is the uniform response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, envelope{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string, details any) {
	writeJSON(w, status, envelope{Success: false, Message: message, Errors: details})
}

// reply writes data on success and maps err otherwise.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, status int, message string, data any, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	respond(w, status, message, data)
}

// writeError maps service and store errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "Validation failed", verr.Fields)
	case errors.Is(err, store.ErrInvalidReference):
		respondError(w, http.StatusBadRequest, sentence(err.Error()), nil)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		respondError(w, http.StatusUnauthorized, sentence(err.Error()), nil)
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, sentence(err.Error()), nil)
	case errors.Is(err, store.ErrConflict):
		respondError(w, http.StatusConflict, sentence(err.Error()), nil)
	default:
		logger := logging.WithContext(r.Context())
		if s.logger != nil {
			logger = s.logger.WithContext(r.Context())
		}
		logger.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		respondError(w, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}

// decodeJSON reads the request body into dst. An empty body decodes to the
// zero value so that validation can report the missing fields.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	respondError(w, http.StatusBadRequest, "Invalid request body", err.Error())
	return false
}

// pathID parses a positive integer path variable.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, r, models.NewValidationError(name, fmt.Sprintf("must be a positive integer, got %q", raw)))
		return 0, false
	}
	return id, true
}

func searchQuery(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("query"))
}

// sentence upper-cases the first letter of an error message.
func sentence(msg string) string {
	if msg == "" {
		return msg
	}
	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
