// Package server provides the HTTP API for generating, parsing and reviewing financial profiles.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/benefits-advisor/internal/advisor"
	"github.com/jonathan/benefits-advisor/internal/document"
	"github.com/jonathan/benefits-advisor/internal/generator"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates the requested resource does not exist
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("not found: %s", e.Resource)
}

// ErrBadUpload indicates the request carried no readable file
type ErrBadUpload struct {
	Message string
	Cause   error
}

func (e *ErrBadUpload) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bad upload: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("bad upload: %s", e.Message)
}

func (e *ErrBadUpload) Unwrap() error {
	return e.Cause
}

// ErrUploadTooLarge indicates the upload exceeded the configured limit
type ErrUploadTooLarge struct {
	Limit int64
}

func (e *ErrUploadTooLarge) Error() string {
	return fmt.Sprintf("upload exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrNotFound
		badUploadErr  *ErrBadUpload
		tooLargeErr   *ErrUploadTooLarge
		argErr        *generator.InvalidArgumentError
		decodeErr     *document.DecodeError
		malformedErr  *document.MalformedSectionError
		upstreamErr   *advisor.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &badUploadErr),
		errors.As(err, &argErr), errors.As(err, &decodeErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &malformedErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &upstreamErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
