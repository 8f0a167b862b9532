package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/career-readiness/internal/controller"
	"github.com/jonathan/career-readiness/internal/server/middleware"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.registry.Len(),
	})
}

// handleOptions returns the intake form enumerations
func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, types.IntakeOptions())
}

// handleCreateSession opens a browser session and returns its bearer token
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionID := uuid.NewString()

	if _, err := s.registry.Get(r.Context(), sessionID); err != nil {
		s.writeError(w, "", err)
		return
	}

	token, err := s.jwtService.GenerateToken(sessionID)
	if err != nil {
		s.registry.Remove(sessionID)
		s.writeError(w, "", err)
		return
	}

	s.logger.Info("session opened", zap.String("session_id", sessionID))
	s.jsonResponse(w, http.StatusCreated, types.SessionResponse{SessionID: sessionID, Token: token})
}

// controllerFor resolves the authenticated session's controller, writing an error response on failure.
func (s *Server) controllerFor(w http.ResponseWriter, r *http.Request) (*controller.Controller, bool) {
	sessionID, err := middleware.GetSessionID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	c, err := s.registry.Get(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, "", err)
		return nil, false
	}
	return c, true
}

// handleView renders the active screen
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, c.Render())
}

// handleGetStarted signs in when needed and moves to the dashboard
func (s *Server) handleGetStarted(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	if err := c.GetStarted(r.Context()); err != nil {
		s.writeError(w, "", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, c.Render())
}

// handleNavigate switches views
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}

	var req types.NavigateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, "", err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, "", &ErrValidation{Field: "view", Message: "must be one of landing, dashboard, interview"})
		return
	}

	view, err := controller.ParseView(req.View)
	if err == nil {
		err = c.Navigate(view)
	}
	if err != nil {
		s.writeError(w, "", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, c.Render())
}

// handleSignOut clears the session identity
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	if err := c.SignOut(r.Context()); err != nil {
		s.writeError(w, "", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, c.Render())
}

// handleMe returns the signed-in profile
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controllerFor(w, r)
	if !ok {
		return
	}
	user := c.User()
	if user == nil {
		s.writeError(w, "", &ErrNotFound{Resource: "user"})
		return
	}
	s.jsonResponse(w, http.StatusOK, user)
}
