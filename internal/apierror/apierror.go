// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import "prestadores-api/internal/validation"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries every violation found in the request, in rule order.
type ValidationError struct {
	Detail string                 `json:"detail"`
	Errors []validation.Violation `json:"errors"`
}

func NewValidation(errs validation.Errors) *ValidationError {
	return &ValidationError{Detail: "Erro de validação", Errors: errs}
}
