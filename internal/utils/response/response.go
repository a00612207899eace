package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/errors"
	"github.com/go-playground/validator/v10"
)

type APIResponse struct {
	Success bool           `json:"success"`
	Data    any            `json:"data,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func WriteJson(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

func Success(w http.ResponseWriter, statusCode int, data any) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	_ = WriteJson(w, statusCode, response)
}

func Error(w http.ResponseWriter, err error) {

	var statusCode int
	var errorResponse *ErrorResponse

	if appErr, ok := errors.IsAppError(err); ok {
		statusCode = appErr.StatusCode
		errorResponse = &ErrorResponse{
			Code:    appErr.Code,
			Message: appErr.Message,
		}

		if appErr.Detail != "" {
			errorResponse.Details = []string{appErr.Detail}
		}

		if appErr.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(appErr.RetryAfter))
		}

	} else {

		statusCode = http.StatusInternalServerError
		errorResponse = &ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: errors.MsgUnexpected,
		}

	}

	response := APIResponse{
		Success: false,
		Error:   errorResponse,
	}

	_ = WriteJson(w, statusCode, response)
}

// ValidationError writes one message per failed field.
func ValidationError(w http.ResponseWriter, errs validator.ValidationErrors) {

	errMsgs := make([]string, 0, len(errs))

	for _, err := range errs {

		var message string

		field := err.Field()

		switch err.Tag() {
		case "required", "required_if":
			message = fmt.Sprintf("Field %s is required", field)
		case "email":
			message = fmt.Sprintf("Field %s must be a valid email address", field)
		case "url":
			message = fmt.Sprintf("Field %s must be a valid URL", field)
		case "min":
			message = fmt.Sprintf("Field %s must be at least %s characters", field, err.Param())
		case "max":
			message = fmt.Sprintf("Field %s must be at most %s characters", field, err.Param())
		case "gt":
			message = fmt.Sprintf("Field %s must be greater than %s", field, err.Param())
		case "gte":
			message = fmt.Sprintf("Field %s must be at least %s", field, err.Param())
		case "lte":
			message = fmt.Sprintf("Field %s must be at most %s", field, err.Param())
		case "oneof":
			message = fmt.Sprintf("Field %s must be one of: %s", field, strings.ReplaceAll(err.Param(), " ", ", "))
		case "eqfield":
			message = fmt.Sprintf("Field %s must match %s", field, err.Param())
		case "password":
			message = fmt.Sprintf("Field %s must contain at least one uppercase letter, one lowercase letter and one number", field)
		default:
			message = fmt.Sprintf("Field %s is invalid: %s=%s", field, err.Tag(), err.Param())
		}

		errMsgs = append(errMsgs, message)

	}

	errorResponse := &ErrorResponse{
		Code:    errors.ErrCodeValidation,
		Message: "Validation failed",
		Details: errMsgs,
	}

	response := APIResponse{
		Success: false,
		Error:   errorResponse,
	}

	_ = WriteJson(w, http.StatusBadRequest, response)

}
