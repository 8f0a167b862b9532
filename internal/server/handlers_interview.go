package server

import (
	"net/http"
	"strconv"

	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/types"
)

// handleStartInterview generates a fresh question set for the insight's primary role
func (s *Server) handleStartInterview(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	view, err := c.StartInterview(r.Context())
	if err != nil {
		s.writeError(w, readiness.PipelineQuestions, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleSetAnswer records the answer for one question
func (s *Server) handleSetAnswer(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.writeError(w, "", &ErrValidation{Field: "index", Message: "must be an integer"})
		return
	}

	var req types.AnswerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, "", err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, "", &ErrValidation{Field: "answer", Message: err.Error()})
		return
	}

	view, err := c.SetAnswer(index, req.Answer)
	if err != nil {
		s.writeError(w, "", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleSetStep moves between the two questions
func (s *Server) handleSetStep(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}

	var req types.StepRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, "", err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, "", &ErrValidation{Field: "step", Message: "must be 0 or 1"})
		return
	}

	view, err := c.SetStep(req.Step)
	if err != nil {
		s.writeError(w, "", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleEvaluateInterview scores the answers
func (s *Server) handleEvaluateInterview(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	eval, err := c.SubmitInterview(r.Context())
	if err != nil {
		s.writeError(w, readiness.PipelineEvaluation, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, eval)
}
