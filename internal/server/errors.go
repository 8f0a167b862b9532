// Package server provides the HTTP API for the career readiness dashboard.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/career-readiness/internal/controller"
	"github.com/jonathan/career-readiness/internal/readiness"
)

// ErrValidation indicates request decoding or validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrNotFound indicates the requested resource does not exist for the session
type ErrNotFound struct {
	Resource string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if status, ok := requestStatus(err); ok {
		return status
	}

	switch readiness.Kind(err) {
	case readiness.KindValidation:
		return http.StatusBadRequest
	case readiness.KindTimeout:
		return http.StatusGatewayTimeout
	case readiness.KindCancelled:
		return http.StatusServiceUnavailable
	case readiness.KindInvalidShape, readiness.KindParse, readiness.KindAPI:
		if isPipelineError(err) {
			return http.StatusBadGateway
		}
	}
	return http.StatusInternalServerError
}

// requestStatus maps errors caused by the request or the session state rather than a pipeline.
func requestStatus(err error) (int, bool) {
	var (
		validationErr *ErrValidation
		notFoundErr   *ErrNotFound
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, true
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, true
	case errors.Is(err, controller.ErrInvalidView),
		errors.Is(err, controller.ErrInvalidIndex),
		errors.Is(err, controller.ErrAnswerRequired):
		return http.StatusBadRequest, true
	case errors.Is(err, controller.ErrNotSignedIn):
		return http.StatusForbidden, true
	case errors.Is(err, controller.ErrNoInsight),
		errors.Is(err, controller.ErrInterviewBlocked),
		errors.Is(err, controller.ErrNoInterview):
		return http.StatusConflict, true
	}
	return 0, false
}

// isPipelineError reports whether err came back from a model-backed call.
func isPipelineError(err error) bool {
	var (
		apiErr   *readiness.APICallError
		parseErr *readiness.ParseError
		shapeErr *readiness.InvalidResponseShapeError
	)
	return errors.As(err, &apiErr) || errors.As(err, &parseErr) || errors.As(err, &shapeErr)
}

// pipelineFailure returns the user-facing failure for a pipeline error, or nil when err
// is a request or session-state error.
func pipelineFailure(pipeline string, err error) *readiness.Failure {
	if pipeline == "" {
		return nil
	}
	if _, ok := requestStatus(err); ok {
		return nil
	}
	return readiness.NewFailure(pipeline, err)
}
