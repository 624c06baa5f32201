// Package handler exposes the coffee-kart services over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"coffee-kart/internal/middleware"
	"coffee-kart/internal/model"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// statusByCode maps domain error codes to HTTP statuses. Codes not listed are server errors.
var statusByCode = map[string]int{
	model.ErrCodeInvalidSelection:        http.StatusBadRequest,
	model.ErrCodeInvalidQuantity:         http.StatusBadRequest,
	model.ErrCodeInvalidPaymentMethod:    http.StatusBadRequest,
	model.ErrCodeMissingAddress:          http.StatusUnprocessableEntity,
	model.ErrCodeCartEmpty:               http.StatusConflict,
	model.ErrCodeInvalidStatusTransition: http.StatusConflict,
	model.ErrCodeProductNotFound:         http.StatusNotFound,
	model.ErrCodeCartItemNotFound:        http.StatusNotFound,
	model.ErrCodeOrderNotFound:           http.StatusNotFound,
	model.ErrCodeNotificationNotFound:    http.StatusNotFound,
}

// domainRules maps validator failures ("Field.tag") to the domain error the services raise
// for the same rule, so clients see one code whichever layer rejects the input.
var domainRules = map[string]*model.DomainError{
	"Quantity.required": model.ErrInvalidQuantity,
	"Quantity.gte":      model.ErrInvalidQuantity,
	"Sugar.oneof":       model.ErrInvalidSelection,
	"Ice.oneof":         model.ErrInvalidSelection,
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code, code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: chimw.GetReqID(r.Context()),
	})
}

// writeServiceError maps err to a response. Domain errors keep their code and message;
// anything else is reported as an internal error without leaking details.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByCode[domainErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeError(w, r, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Str("path", r.URL.Path).Msg("service call failed")
	writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}

// decodeJSON reads the request body into dst and validates it.
// On failure the error response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, logger zerolog.Logger) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		message := "invalid request body"
		if errors.Is(err, io.EOF) {
			message = "request body is required"
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, message, logger)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		if domainErr := domainRuleError(err); domainErr != nil {
			writeServiceError(w, r, domainErr, logger)
			return false
		}
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidationFailed, validationMessage(err), logger)
		return false
	}

	return true
}

// domainRuleError returns the domain error for the first failure listed in domainRules, or nil.
func domainRuleError(err error) *model.DomainError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	for _, fe := range verrs {
		if domainErr, ok := domainRules[fe.Field()+"."+fe.Tag()]; ok {
			return domainErr
		}
	}
	return nil
}

// validationMessage turns validator output into a short client-facing message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid request"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}

// requireUser returns the caller's user ID set by middleware.UserIdentity.
func requireUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeUnauthorised, "missing user identity", logger)
		return "", false
	}
	return userID, true
}

// uuidParam parses the named URL parameter as a UUID.
func uuidParam(w http.ResponseWriter, r *http.Request, name string, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidationFailed, "invalid "+name+" format", logger)
		return uuid.Nil, false
	}
	return id, true
}
