// Package errors provides the structured error type shared by every layer
// of the recipe assistant. Handlers translate an AppError into an HTTP status
// and a JSON body without knowing which layer produced it.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode is the stable, machine readable identifier sent to API clients.
type ErrorCode string

// Generic codes.
const (
	CodeBadRequest           ErrorCode = "BAD_REQUEST"
	CodeUnauthorized         ErrorCode = "UNAUTHORIZED"
	CodeForbidden            ErrorCode = "FORBIDDEN"
	CodeNotFound             ErrorCode = "NOT_FOUND"
	CodeConflict             ErrorCode = "CONFLICT"
	CodeValidationFailed     ErrorCode = "VALIDATION_FAILED"
	CodeTooManyRequests      ErrorCode = "TOO_MANY_REQUESTS"
	CodeUnsupportedMediaType ErrorCode = "UNSUPPORTED_MEDIA_TYPE"
	CodeMethodNotAllowed     ErrorCode = "METHOD_NOT_ALLOWED"
	CodePayloadTooLarge      ErrorCode = "PAYLOAD_TOO_LARGE"
	CodeInternal             ErrorCode = "INTERNAL_ERROR"
	CodeServiceUnavailable   ErrorCode = "SERVICE_UNAVAILABLE"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Recipe assistant codes.
const (
	CodeRecipeNotFound     ErrorCode = "RECIPE_NOT_FOUND"
	CodeNotRecipeOwner     ErrorCode = "NOT_RECIPE_OWNER"
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailAlreadyExists ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeAIUnavailable      ErrorCode = "AI_UNAVAILABLE"
)

// statusByCode lists every code that does not map to 500.
var statusByCode = map[ErrorCode]int{
	CodeBadRequest:           http.StatusBadRequest,
	CodeValidationFailed:     http.StatusBadRequest,
	CodeUnauthorized:         http.StatusUnauthorized,
	CodeInvalidCredentials:   http.StatusUnauthorized,
	CodeForbidden:            http.StatusForbidden,
	CodeNotRecipeOwner:       http.StatusForbidden,
	CodeNotFound:             http.StatusNotFound,
	CodeRecipeNotFound:       http.StatusNotFound,
	CodeUserNotFound:         http.StatusNotFound,
	CodeConflict:             http.StatusConflict,
	CodeEmailAlreadyExists:   http.StatusConflict,
	CodeTooManyRequests:      http.StatusTooManyRequests,
	CodeUnsupportedMediaType: http.StatusUnsupportedMediaType,
	CodeMethodNotAllowed:     http.StatusMethodNotAllowed,
	CodePayloadTooLarge:      http.StatusRequestEntityTooLarge,
	CodeExternalServiceError: http.StatusBadGateway,
	CodeServiceUnavailable:   http.StatusServiceUnavailable,
	CodeAIUnavailable:        http.StatusServiceUnavailable,
}

// AppError carries a code, a human message and optional context.
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

func (e *AppError) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the HTTP status for the error's code.
func (e *AppError) StatusCode() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WithMetadata attaches a key to the error and returns it for chaining.
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// WithCause records the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError builds an AppError from its parts.
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

func orDefault(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError reports a single failed rule.
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

func NewUnauthorizedError(message string) *AppError {
	return NewAppError(CodeUnauthorized, orDefault(message, "Authentication required"), "")
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(CodeForbidden, orDefault(message, "Access forbidden"), "")
}

// NewNotFoundError names the missing resource when one is given.
func NewNotFoundError(resource string) *AppError {
	if resource == "" {
		return NewAppError(CodeNotFound, "Resource not found", "")
	}
	return NewAppError(CodeNotFound, resource+" not found", "")
}

func NewTooManyRequestsError() *AppError {
	return NewAppError(CodeTooManyRequests, "Too many requests", "Rate limit exceeded, retry after the indicated delay")
}

func NewInternalError(message string) *AppError {
	return NewAppError(CodeInternal, orDefault(message, "An unexpected error occurred"), "")
}

// NewDatabaseError wraps a storage failure; operation reads like "load recipe".
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(CodeDatabaseError, "Storage failure", "could not "+operation).WithCause(cause)
}

// NewExternalServiceError wraps a failed call to an upstream such as an AI provider.
func NewExternalServiceError(service string, cause error) *AppError {
	return NewAppError(CodeExternalServiceError, "Upstream request failed", service+" returned an error").
		WithCause(cause).
		WithMetadata("service", service)
}

// NewAIUnavailableError reports that no AI provider could answer.
func NewAIUnavailableError(cause error) *AppError {
	return NewAppError(CodeAIUnavailable, "AI assistant unavailable", "no provider answered, try again later").WithCause(cause)
}

func NewRecipeNotFoundError(recipeID string) *AppError {
	return NewAppError(CodeRecipeNotFound, "Recipe not found", fmt.Sprintf("no recipe with id %s", recipeID)).
		WithMetadata("recipe_id", recipeID)
}

// NewNotRecipeOwnerError is returned when a user touches someone else's recipe.
func NewNotRecipeOwnerError(recipeID string) *AppError {
	return NewAppError(CodeNotRecipeOwner, "Not authorized", "recipes can only be changed by their author").
		WithMetadata("recipe_id", recipeID)
}

func NewUserNotFoundError(userID string) *AppError {
	return NewAppError(CodeUserNotFound, "User not found", fmt.Sprintf("no user with id %s", userID)).
		WithMetadata("user_id", userID)
}

func NewEmailAlreadyExistsError(email string) *AppError {
	return NewAppError(CodeEmailAlreadyExists, "Email already registered", "").WithMetadata("email", email)
}

// NewInvalidCredentialsError does not say which of email or password was wrong.
func NewInvalidCredentialsError() *AppError {
	return NewAppError(CodeInvalidCredentials, "Invalid credentials", "")
}

// Wrap returns the AppError already in err's chain, or an internal error
// with err as its cause. A nil err stays nil.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := As(err); ok {
		return appErr
	}
	return NewInternalError(message).WithCause(err)
}

// As returns the AppError in err's chain, if any.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// Is reports whether err carries code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// GetCode returns err's code, or CodeInternal for foreign errors.
func GetCode(err error) ErrorCode {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// HTTPStatus is StatusCode for any error.
func HTTPStatus(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// ValidationError describes one rejected field.
type ValidationError struct {
	Field   string      `json:"field"`
	Value   interface{} `json:"value,omitempty"`
	Tag     string      `json:"tag"`
	Message string      `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fe.Message
	}
	return strings.Join(parts, "; ")
}

// NewValidationErrors folds field errors into one VALIDATION_FAILED error;
// the individual fields travel in Metadata["validation_errors"].
func NewValidationErrors(errs []ValidationError) *AppError {
	fields := ValidationErrors(errs)
	return NewValidationError(fields.Error()).WithMetadata("validation_errors", fields)
}

// ErrorDetails is the "error" object of the API envelope.
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorDetails stamps err with the request id and the current UTC time.
func ToErrorDetails(err *AppError, requestID string) ErrorDetails {
	return ErrorDetails{
		Code:      err.Code,
		Message:   err.Message,
		Details:   err.Details,
		Metadata:  err.Metadata,
		RequestID: requestID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
