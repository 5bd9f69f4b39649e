package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"larder/internal/ai"
	"larder/internal/domain"
	"larder/internal/ocr"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps service errors onto HTTP statuses. Unrecognised errors are
// logged server-side and reported as a plain 500; their text never reaches
// the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error()})
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: "not found"})
	case errors.Is(err, ai.ErrUnavailable), errors.Is(err, ocr.ErrUnavailable):
		s.writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "upstream service unavailable"})
	default:
		s.logger.Error("request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// decodeJSON decodes the request body into dst, rejecting unknown fields.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return domain.Validationf("invalid request body: %v", err)
	}
	return nil
}
