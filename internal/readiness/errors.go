package readiness

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Pipeline names used in failures, logs and metrics.
const (
	PipelineAnalysis        = "analysis"
	PipelineRecommendations = "recommendations"
	PipelineQuestions       = "questions"
	PipelineEvaluation      = "evaluation"
)

// Failure kinds
const (
	KindValidation   = "validation"
	KindTimeout      = "timeout"
	KindCancelled    = "cancelled"
	KindAPI          = "api"
	KindParse        = "parse"
	KindInvalidShape = "invalid_shape"
)

// APICallError represents a transport or provider error from the generation service
type APICallError struct {
	Pipeline string
	Message  string
	Cause    error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: API call failed: %s: %v", e.Pipeline, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: API call failed: %s", e.Pipeline, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an error parsing the API response
type ParseError struct {
	Pipeline string
	Message  string
	Cause    error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: parse error: %s: %v", e.Pipeline, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: parse error: %s", e.Pipeline, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// InvalidResponseShapeError reports a reply whose collection size breaks a fixed-arity contract
type InvalidResponseShapeError struct {
	Pipeline string
	Field    string
	Expected int
	Got      int
}

func (e *InvalidResponseShapeError) Error() string {
	return fmt.Sprintf("%s: invalid response shape: expected %d %s, got %d", e.Pipeline, e.Expected, e.Field, e.Got)
}

// TimeoutError reports a pipeline call that exceeded its deadline
type TimeoutError struct {
	Pipeline string
	After    time.Duration
	Cause    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s: timed out after %s", e.Pipeline, e.After)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// ValidationError represents invalid caller input
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Failure is the user-facing record of a failed pipeline request.
type Failure struct {
	Pipeline  string `json:"pipeline"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// Kind classifies err into one of the failure kinds.
func Kind(err error) string {
	var (
		validationErr *ValidationError
		timeoutErr    *TimeoutError
		shapeErr      *InvalidResponseShapeError
		parseErr      *ParseError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCancelled
	case errors.As(err, &shapeErr):
		return KindInvalidShape
	case errors.As(err, &parseErr):
		return KindParse
	default:
		return KindAPI
	}
}

// NewFailure converts a pipeline error into a Failure. It returns nil for a nil error.
func NewFailure(pipeline string, err error) *Failure {
	if err == nil {
		return nil
	}
	kind := Kind(err)
	return &Failure{
		Pipeline:  pipeline,
		Kind:      kind,
		Message:   failureMessage(pipeline, kind),
		Retryable: kind != KindValidation,
	}
}

func failureMessage(pipeline, kind string) string {
	switch kind {
	case KindValidation:
		return "The request was incomplete. Check the form and try again."
	case KindTimeout:
		return fmt.Sprintf("The %s request took too long. Please retry.", pipeline)
	case KindCancelled:
		return fmt.Sprintf("The %s request was cancelled.", pipeline)
	case KindInvalidShape, KindParse:
		return fmt.Sprintf("The %s reply could not be understood. Please retry.", pipeline)
	default:
		return fmt.Sprintf("The %s service is unavailable. Please retry.", pipeline)
	}
}
