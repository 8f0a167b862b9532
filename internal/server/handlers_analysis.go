package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jonathan/career-readiness/internal/controller"
	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
)

// analysisRequest decodes and validates an intake submission.
func analysisRequest(w http.ResponseWriter, r *http.Request) (types.AnalyzeRequest, error) {
	var req types.AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return req, err
	}
	if err := req.Validate(); err != nil {
		return req, &ErrValidation{Message: err.Error()}
	}
	return req, nil
}

// handleCreateAnalysis runs the analysis pipeline and stores the insight
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}

	req, err := analysisRequest(w, r)
	if err != nil {
		s.writeError(w, "", err)
		return
	}

	insight, err := c.SubmitAnalysis(r.Context(), req)
	if err != nil {
		s.writeError(w, readiness.PipelineAnalysis, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, insight)
}

// handleLatestAnalysis returns the held insight
func (s *Server) handleLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	insight := c.Insight()
	if insight == nil {
		s.writeError(w, "", &ErrNotFound{Resource: "analysis"})
		return
	}
	s.jsonResponse(w, http.StatusOK, insight)
}

// handleResetAnalysis clears the held insight so the intake form shows again
func (s *Server) handleResetAnalysis(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	c.ResetAnalysis()
	s.jsonResponse(w, http.StatusOK, c.Render())
}

// handleRecommendations returns the roadmap for the held insight
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	recs, err := c.Recommendations(r.Context())
	if err != nil {
		s.writeError(w, readiness.PipelineRecommendations, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"recommendations": recs})
}

// handleReportStream builds the full report and streams progress as server-sent events
func (s *Server) handleReportStream(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}

	req, err := analysisRequest(w, r)
	if err != nil {
		s.writeError(w, "", err)
		return
	}
	if c.User() == nil {
		s.writeError(w, "", controller.ErrNotSignedIn)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := c.RunReport(r.Context(), req, func(ctx context.Context) (*readiness.Report, error) {
		return s.reports.BuildReport(ctx, req, func(event readiness.ProgressEvent) {
			if err := sse.WriteProgress(event); err != nil {
				s.logger.Debug("progress event not delivered", zap.Error(err))
			}
		})
	})
	if err != nil {
		sse.WriteFailure(streamFailure(err))
		return
	}
	sse.WriteComplete(report)
}

// streamFailure converts a report error into the failure sent on the stream.
func streamFailure(err error) *readiness.Failure {
	if errors.Is(err, controller.ErrNotSignedIn) || errors.Is(err, controller.ErrNoInsight) {
		return &readiness.Failure{
			Pipeline: readiness.PipelineAnalysis,
			Kind:     readiness.KindAPI,
			Message:  err.Error(),
		}
	}
	return readiness.NewFailure(readiness.PipelineAnalysis, err)
}
