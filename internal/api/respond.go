package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"fanclub/internal/common/errors"
)

const maxRequestBodyBytes = 64 * 1024

type errorBody struct {
	Error errorPayload `json:"error"`
}

type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error code to the HTTP status the API answers with.
func StatusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeArtistNotFound,
		errors.ErrCodeTierNotFound,
		errors.ErrCodeContentNotFound,
		errors.ErrCodeUserNotFound,
		errors.ErrCodeSubscriptionNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTierLimitReached,
		errors.ErrCodeTierHasSubscribers,
		errors.ErrCodeTierGatesContent,
		errors.ErrCodeSubscriptionsDisabled:
		return http.StatusConflict
	case errors.ErrCodeValidationFailed,
		errors.ErrCodeInputParsingFailed,
		errors.ErrCodeTierArtistMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := errors.Normalize(err)
	status := StatusFor(stdErr.Code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", map[string]interface{}{
			"method": r.Method,
			"path":   r.URL.Path,
			"code":   string(stdErr.Code),
			"error":  err.Error(),
		})
	}
	writeJSON(w, status, errorBody{Error: errorPayload{
		Code:    string(stdErr.Code),
		Message: stdErr.Message,
		Details: stdErr.Details,
	}})
}

// decodeJSON reads a size-limited JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewValidationError(fmt.Sprintf("invalid JSON body: %v", err))
	}
	return nil
}
