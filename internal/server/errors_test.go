package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jonathan/career-readiness/internal/controller"
	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/stretchr/testify/assert"
)

func TestErrValidation(t *testing.T) {
	err := &ErrValidation{Field: "step", Message: "must be 0 or 1"}
	assert.Equal(t, "validation error: step - must be 0 or 1", err.Error())
	assert.Equal(t, "validation error: bad body", (&ErrValidation{Message: "bad body"}).Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
}

func TestErrNotFound(t *testing.T) {
	err := &ErrNotFound{Resource: "analysis"}
	assert.Equal(t, "analysis not found", err.Error())
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid view", fmt.Errorf("%w: %q", controller.ErrInvalidView, "x"), http.StatusBadRequest},
		{"invalid index", controller.ErrInvalidIndex, http.StatusBadRequest},
		{"answer required", controller.ErrAnswerRequired, http.StatusBadRequest},
		{"not signed in", controller.ErrNotSignedIn, http.StatusForbidden},
		{"no insight", controller.ErrNoInsight, http.StatusConflict},
		{"interview blocked", controller.ErrInterviewBlocked, http.StatusConflict},
		{"no interview", controller.ErrNoInterview, http.StatusConflict},
		{"pipeline validation", &readiness.ValidationError{Field: "Role", Message: "bad"}, http.StatusBadRequest},
		{"timeout", &readiness.TimeoutError{Pipeline: readiness.PipelineAnalysis, After: time.Second, Cause: context.DeadlineExceeded}, http.StatusGatewayTimeout},
		{"cancelled", &readiness.APICallError{Pipeline: readiness.PipelineAnalysis, Cause: context.Canceled}, http.StatusServiceUnavailable},
		{"api", &readiness.APICallError{Pipeline: readiness.PipelineRecommendations, Message: "boom"}, http.StatusBadGateway},
		{"parse", &readiness.ParseError{Pipeline: readiness.PipelineEvaluation, Message: "bad json"}, http.StatusBadGateway},
		{"shape", &readiness.InvalidResponseShapeError{Pipeline: readiness.PipelineQuestions, Field: "questions", Expected: 2, Got: 3}, http.StatusBadGateway},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
