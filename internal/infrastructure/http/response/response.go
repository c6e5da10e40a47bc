// Package response writes the JSON envelope shared by every API endpoint
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/alchemorsel/recipe-assistant/pkg/errors"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool                    `json:"success"`
	Data    interface{}             `json:"data,omitempty"`
	Error   *apperrors.ErrorDetails `json:"error,omitempty"`
	Message string                  `json:"message,omitempty"`
}

// JSON writes a JSON response
func JSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// OK writes a successful envelope
func OK(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}, message string) {
	JSON(w, logger, status, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Error writes err as a failed envelope. Errors that are not AppErrors are
// reported as internal errors without leaking their text.
func Error(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.NewInternalError("An unexpected error occurred").WithCause(err)
	}

	requestID := chimiddleware.GetReqID(r.Context())
	status := appErr.StatusCode()

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.String("code", string(appErr.Code)),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", fields...)
	} else {
		logger.Debug("Request rejected", fields...)
	}

	details := apperrors.ToErrorDetails(appErr, requestID)
	JSON(w, logger, status, APIResponse{
		Success: false,
		Error:   &details,
		Message: appErr.Message,
	})
}

// Decode reads a JSON body into dst, rejecting unknown fields and trailing
// data. Failures are returned as bad request AppErrors.
func Decode(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.NewAppError(apperrors.CodePayloadTooLarge, "Request body too large",
				fmt.Sprintf("limit is %d bytes", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return apperrors.NewBadRequestError("Request body is empty")
		default:
			return apperrors.NewAppError(apperrors.CodeBadRequest, "Invalid JSON payload", err.Error())
		}
	}

	if dec.More() {
		return apperrors.NewBadRequestError("Request body must contain a single JSON object")
	}
	return nil
}

// Bearer extracts the token from an Authorization header
func Bearer(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
