package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"amenibook-backend/internal/domain"
	"amenibook-backend/internal/logger"
	"amenibook-backend/internal/security"
	"amenibook-backend/internal/service"
)

type errorResponse struct {
	Error                    string `json:"error"`
	Code                     string `json:"code"`
	ConflictingReservationID int32  `json:"conflicting_reservation_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps domain error types onto HTTP statuses. Unclassified
// errors are logged and reported as a plain 500 so internals never leak.
func writeError(w http.ResponseWriter, err error) {
	var conflictErr *domain.ConflictError
	var invalidStateErr *domain.InvalidStateError
	var permissionErr *domain.PermissionError
	var validationErr *domain.ValidationError
	var policyErr *domain.PolicyError

	switch {
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:                    conflictErr.Error(),
			Code:                     "SCHEDULE_CONFLICT",
			ConflictingReservationID: conflictErr.ConflictingReservationID,
		})
	case errors.As(err, &invalidStateErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: invalidStateErr.Error(), Code: "INVALID_STATE"})
	case errors.As(err, &permissionErr):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: permissionErr.Error(), Code: "PERMISSION_DENIED"})
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error(), Code: "VALIDATION_FAILED"})
	case errors.As(err, &policyErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: policyErr.Error(), Code: "POLICY_VIOLATION"})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, security.ErrInvalidToken),
		errors.Is(err, security.ErrExpiredToken),
		errors.Is(err, security.ErrWrongTokenType):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error(), Code: "UNAUTHORIZED"})
	default:
		logger.Error("unhandled API error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error", Code: "INTERNAL"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body", Code: "VALIDATION_FAILED"})
		return false
	}
	return true
}
