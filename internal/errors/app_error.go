package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	RetryAfter int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

// WithRetryAfter sets the Retry-After hint in seconds.
func (e *AppError) WithRetryAfter(seconds int) *AppError {
	e.RetryAfter = seconds

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeDatabaseError      = "DATABASE_ERROR"
	ErrCodeDuplicateEntry     = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError    = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeResourceExhausted  = "RESOURCE_EXHAUSTED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Messages shown to shoppers when a backend service fails.
const (
	MsgAccessDenied       = "Access denied. You do not have permission to perform this action."
	MsgNotFound           = "Resource not found."
	MsgValidationFailed   = "Validation error occurred."
	MsgServerError        = "Internal server error. Please try again later."
	MsgUnexpected         = "An unexpected error occurred."
	MsgNetworkError       = "Network error. Please check your connection."
	MsgSessionExpired     = "Your session has expired. Please sign in again."
	MsgUpstreamBadRequest = "The request could not be processed."
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, http.StatusConflict)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func DatabaseError(message string) *AppError {
	return NewAppError(ErrCodeDatabaseError, message, http.StatusInternalServerError)
}

func DuplicateEntryError(message string) *AppError {
	return NewAppError(ErrCodeDuplicateEntry, message, http.StatusConflict)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusBadGateway)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func ResourceExhaustedError(message string) *AppError {
	return NewAppError(ErrCodeResourceExhausted, message, http.StatusTooManyRequests)
}

func ServiceUnavailableError(message string) *AppError {
	return NewAppError(ErrCodeServiceUnavailable, message, http.StatusServiceUnavailable)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}

// UpstreamError is kept as the wrapped cause of errors built by FromUpstream.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s service responded with status %d", e.Service, e.StatusCode)
}

// FromUpstream converts a non-2xx response of a backend service into an AppError.
func FromUpstream(service string, status int, body []byte) *AppError {
	cause := &UpstreamError{Service: service, StatusCode: status, Body: string(body)}
	detail, msgs := parseDetail(body)

	var appErr *AppError

	switch status {
	case http.StatusBadRequest:
		message := detail
		if message == "" {
			message = MsgUpstreamBadRequest
		}
		appErr = BadRequestError(message)
	case http.StatusUnauthorized:
		appErr = UnauthorizedError(MsgSessionExpired).WithDetail(detail)
	case http.StatusForbidden:
		appErr = ForbiddenError(MsgAccessDenied).WithDetail(detail)
	case http.StatusNotFound:
		appErr = NotFoundError(MsgNotFound).WithDetail(detail)
	case http.StatusConflict:
		appErr = ConflictError(firstNonEmpty(detail, MsgUnexpected))
	case http.StatusUnprocessableEntity:
		if len(msgs) > 0 {
			appErr = ValidationError(strings.Join(msgs, ", "))
		} else {
			appErr = ValidationError(MsgValidationFailed).WithDetail(detail)
		}
	case http.StatusTooManyRequests:
		appErr = TooManyRequestsError(firstNonEmpty(detail, MsgUnexpected))
	case http.StatusInternalServerError:
		appErr = InternalError(MsgServerError)
	default:
		appErr = ThirdPartyError(MsgUnexpected)
	}

	return appErr.WithError(cause)
}

// Unavailable reports a transport failure while calling a backend service.
func Unavailable(service string, err error) *AppError {
	return ServiceUnavailableError(MsgNetworkError).
		WithDetail(service + " service is unreachable").
		WithError(err)
}

// parseDetail reads the "detail" field of an error body. It is either a plain
// string or a list of {"msg": ...} validation entries.
func parseDetail(body []byte) (string, []string) {
	if len(body) == 0 {
		return "", nil
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}

	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return "", nil
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return text, nil
	}

	var items []struct {
		Msg string `json:"msg"`
	}

	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}

		return "", msgs
	}

	return "", nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
