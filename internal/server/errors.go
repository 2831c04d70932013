package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasthttp"
)

// ErrorCode is a stable machine-readable error identifier
type ErrorCode string

const (
	ErrCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrCodeValidation       ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrCodeUnknownYear      ErrorCode = "UNKNOWN_FISCAL_YEAR"
	ErrCodeUnavailable      ErrorCode = "UNAVAILABLE"
	ErrCodeInternal         ErrorCode = "INTERNAL"
)

// APIError is the JSON body of every error response
type APIError struct {
	Status  int               `json:"status"`
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

func newAPIError(status int, code ErrorCode, format string, args ...any) *APIError {
	return &APIError{Status: status, Code: code, Message: fmt.Sprintf(format, args...)}
}

func badRequest(code ErrorCode, format string, args ...any) *APIError {
	return newAPIError(fasthttp.StatusBadRequest, code, format, args...)
}

// validationError maps validator failures to one message per JSON field
func validationError(err error) *APIError {
	apiErr := badRequest(ErrCodeValidation, "request validation failed")

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		apiErr.Message = err.Error()
		return apiErr
	}

	apiErr.Fields = make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		if fe.Param() != "" {
			apiErr.Fields[field] = fe.Tag() + "=" + fe.Param()
		} else {
			apiErr.Fields[field] = fe.Tag()
		}
	}
	return apiErr
}

// fieldPath drops the struct name from a validator namespace:
// "SimulateRequest.perks.km_per_month" -> "perks.km_per_month"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
