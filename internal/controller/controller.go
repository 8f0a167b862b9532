// Package controller holds the per-session view state: which screen is active and the data it gates on.
package controller

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/session"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
)

// View is a top-level navigation state.
type View string

// Views
const (
	ViewLanding   View = "landing"
	ViewDashboard View = "dashboard"
	ViewInterview View = "interview"
)

// Views lists every navigable state.
var Views = []View{ViewLanding, ViewDashboard, ViewInterview}

// ParseView validates a view name.
func ParseView(s string) (View, error) {
	v := View(s)
	if !slices.Contains(Views, v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidView, s)
	}
	return v, nil
}

// Screen is what a client should display for the current state.
type Screen string

// Screens
const (
	ScreenLoading          Screen = "loading"
	ScreenLanding          Screen = "landing"
	ScreenDashboardIntake  Screen = "dashboard_intake"
	ScreenDashboardReport  Screen = "dashboard_report"
	ScreenInterview        Screen = "interview"
	ScreenInterviewBlocked Screen = "interview_blocked"
)

// Controller errors
var (
	ErrInvalidView      = errors.New("invalid view")
	ErrNotSignedIn      = errors.New("no user is signed in")
	ErrNoInsight        = errors.New("an analysis is required first")
	ErrInterviewBlocked = errors.New("interview requires an analysis with a primary role")
	ErrNoInterview      = errors.New("no interview in progress")
	ErrAnswerRequired   = errors.New("an answer is required")
	ErrInvalidIndex     = errors.New("invalid question index")
)

// Identity is the mock identity and analysis store for one session.
type Identity interface {
	SignIn(ctx context.Context) (*types.UserProfile, error)
	SignOut(ctx context.Context) error
	CurrentUser(ctx context.Context) (*types.UserProfile, error)
	SaveAnalysis(ctx context.Context, userID string, insight *types.ReadinessInsight) (*session.Ack, error)
	GetLatestAnalysis(ctx context.Context, userID string) (*types.ReadinessInsight, error)
}

// Pipelines runs the model-backed requests.
type Pipelines interface {
	Analyze(ctx context.Context, req types.AnalyzeRequest) (*types.ReadinessInsight, error)
	Recommend(ctx context.Context, gaps []string, role string) ([]types.Recommendation, error)
	GenerateQuestions(ctx context.Context, role string) ([]types.InterviewQuestion, error)
	Evaluate(ctx context.Context, questions []types.InterviewQuestion, answers []string) (*types.InterviewEvaluation, error)
}

// Controller is the single owner of a session's identity, insight and screen state.
type Controller struct {
	identity  Identity
	pipelines Pipelines
	logger    *zap.Logger

	mu         sync.Mutex
	ready      bool
	view       View
	user       *types.UserProfile
	userGen    uint64
	insight    *types.ReadinessInsight
	insightGen uint64
	intakeRole string
	recs       []types.Recommendation
	recsGen    uint64
	interview  *interviewState
	attemptGen uint64
	failures   map[string]readiness.Failure
	lastActive time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// New creates a controller in the landing state. Render reports loading until Init completes.
func New(identity Identity, pipelines Pipelines, opts ...Option) *Controller {
	c := &Controller{
		identity:   identity,
		pipelines:  pipelines,
		logger:     zap.NewNop(),
		view:       ViewLanding,
		failures:   make(map[string]readiness.Failure),
		lastActive: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init performs the startup identity check and restores the user's latest analysis.
func (c *Controller) Init(ctx context.Context) error {
	user, err := c.identity.CurrentUser(ctx)
	if err != nil {
		return fmt.Errorf("identity check failed: %w", err)
	}

	var insight *types.ReadinessInsight
	if user != nil {
		insight, err = c.identity.GetLatestAnalysis(ctx, user.Email)
		if err != nil {
			c.logger.Warn("failed to restore latest analysis", zap.Error(err))
			insight = nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setUserLocked(user)
	if insight != nil {
		c.setInsightLocked(insight)
	}
	c.ready = true
	c.touchLocked()
	return nil
}

// Ready reports whether the startup identity check has completed.
func (c *Controller) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// GetStarted moves to the dashboard, signing in first when no user is known.
func (c *Controller) GetStarted(ctx context.Context) error {
	c.mu.Lock()
	known := c.user != nil
	if known {
		c.view = ViewDashboard
		c.touchLocked()
	}
	c.mu.Unlock()
	if known {
		return nil
	}

	user, err := c.identity.SignIn(ctx)
	if err != nil {
		return fmt.Errorf("sign in failed: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setUserLocked(user)
	c.setViewLocked(ViewDashboard)
	c.touchLocked()
	return nil
}

// Navigate switches to any view. The router is flat: every view is reachable from every other.
func (c *Controller) Navigate(view View) error {
	if !slices.Contains(Views, view) {
		return fmt.Errorf("%w: %q", ErrInvalidView, view)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setViewLocked(view)
	c.touchLocked()
	return nil
}

// SignOut clears the identity, the insight and all derived state, and returns to landing.
// Results of requests started before the sign-out are discarded.
func (c *Controller) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.setUserLocked(nil)
	c.clearInsightLocked()
	c.failures = make(map[string]readiness.Failure)
	c.view = ViewLanding
	c.touchLocked()
	c.mu.Unlock()

	if err := c.identity.SignOut(ctx); err != nil {
		return fmt.Errorf("sign out failed: %w", err)
	}
	return nil
}

// User returns the signed-in profile or nil.
func (c *Controller) User() *types.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userLocked()
}

// Insight returns the held insight or nil.
func (c *Controller) Insight() *types.ReadinessInsight {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.insight
}

// SubmitAnalysis runs the analysis pipeline for the signed-in user, persists the result
// and makes it the held insight. A result that arrives after the user changed is discarded.
func (c *Controller) SubmitAnalysis(ctx context.Context, req types.AnalyzeRequest) (*types.ReadinessInsight, error) {
	userGen, err := c.beginAnalysis()
	if err != nil {
		return nil, err
	}

	insight, err := c.pipelines.Analyze(ctx, req)
	if err != nil {
		c.recordFailureFor(userGen, readiness.PipelineAnalysis, err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.acceptLocked(ctx, userGen, req, &readiness.Report{Insight: insight}); err != nil {
		return nil, err
	}
	return insight, nil
}

// RunReport builds a full report for the signed-in user with build, persists its insight and makes
// it the held insight. The report's roadmap seeds the recommendation cache and its questions seed
// the interview. Branch failures carried by the report are recorded. A report that completes after
// the user changed is discarded with ErrNotSignedIn.
func (c *Controller) RunReport(ctx context.Context, req types.AnalyzeRequest, build func(ctx context.Context) (*readiness.Report, error)) (*readiness.Report, error) {
	userGen, err := c.beginAnalysis()
	if err != nil {
		return nil, err
	}

	report, err := build(ctx)
	if err != nil {
		c.recordFailureFor(userGen, readiness.PipelineAnalysis, err)
		return nil, err
	}
	if report == nil || report.Insight == nil {
		return nil, ErrNoInsight
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.acceptLocked(ctx, userGen, req, report); err != nil {
		return nil, err
	}
	return report, nil
}

// beginAnalysis checks sign-in, clears the analysis failure and returns the current user generation.
func (c *Controller) beginAnalysis() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return 0, ErrNotSignedIn
	}
	delete(c.failures, readiness.PipelineAnalysis)
	c.touchLocked()
	return c.userGen, nil
}

// CompleteAnalysis replaces the held insight wholesale and discards state derived from the old one.
func (c *Controller) CompleteAnalysis(insight *types.ReadinessInsight) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setInsightLocked(insight)
	c.touchLocked()
}

// acceptLocked persists the report's insight for the user of generation userGen and makes it the
// held insight. It fails with ErrNotSignedIn when that user is no longer signed in.
// The report's roadmap seeds the recommendation cache and a full question set seeds the interview.
func (c *Controller) acceptLocked(ctx context.Context, userGen uint64, req types.AnalyzeRequest, report *readiness.Report) error {
	if c.user == nil || c.userGen != userGen {
		c.logger.Info("analysis result discarded, user changed while it was running")
		return ErrNotSignedIn
	}

	userID := c.user.Email
	if _, err := c.identity.SaveAnalysis(ctx, userID, report.Insight); err != nil {
		c.logger.Error("failed to save analysis", zap.String("user_id", userID), zap.Error(err))
	}

	c.intakeRole = req.Role
	c.setInsightLocked(report.Insight)
	delete(c.failures, readiness.PipelineAnalysis)
	if report.Recommendations != nil {
		c.recs = slices.Clone(report.Recommendations)
		c.recsGen = c.insightGen
	}
	if role, ok := report.Insight.PrimaryRole(); ok && len(report.Questions) == types.InterviewQuestionCount {
		c.attemptGen++
		c.interview = newInterviewState(role, report.Questions)
	}
	for _, f := range report.Failures {
		c.failures[f.Pipeline] = f
	}
	c.touchLocked()
	return nil
}

// ResetAnalysis clears the held insight so the dashboard shows the intake form again.
func (c *Controller) ResetAnalysis() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearInsightLocked()
	c.touchLocked()
}

// Recommendations returns the roadmap for the held insight, requesting it on first use.
func (c *Controller) Recommendations(ctx context.Context) ([]types.Recommendation, error) {
	c.mu.Lock()
	if c.insight == nil {
		c.mu.Unlock()
		return nil, ErrNoInsight
	}
	if c.recs != nil && c.recsGen == c.insightGen {
		recs := slices.Clone(c.recs)
		c.mu.Unlock()
		return recs, nil
	}
	gen := c.insightGen
	gaps := slices.Clone(c.insight.Gaps)
	role := readiness.RoleFor(c.insight, c.intakeRole)
	delete(c.failures, readiness.PipelineRecommendations)
	c.touchLocked()
	c.mu.Unlock()

	recs, err := c.pipelines.Recommend(ctx, gaps, role)
	if err != nil {
		c.RecordFailure(readiness.PipelineRecommendations, err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.insightGen {
		c.recs = slices.Clone(recs)
		c.recsGen = gen
	}
	return recs, nil
}

// RecordFailure logs a pipeline failure and keeps it for rendering until the pipeline is retried.
func (c *Controller) RecordFailure(pipeline string, err error) {
	failure := readiness.NewFailure(pipeline, err)
	c.logger.Warn("pipeline failed",
		zap.String("pipeline", pipeline),
		zap.String("kind", failure.Kind),
		zap.Error(err),
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[pipeline] = *failure
}

// recordFailureFor records a failure only while the user of generation userGen is still signed in.
func (c *Controller) recordFailureFor(userGen uint64, pipeline string, err error) {
	c.mu.Lock()
	current := c.userGen == userGen
	c.mu.Unlock()
	if current {
		c.RecordFailure(pipeline, err)
	}
}

// Failure returns the last recorded failure for a pipeline.
func (c *Controller) Failure(pipeline string) (readiness.Failure, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.failures[pipeline]
	return f, ok
}

// LastActive returns when the controller last handled a request.
func (c *Controller) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}

func (c *Controller) touchLocked() {
	c.lastActive = time.Now()
}

func (c *Controller) setUserLocked(user *types.UserProfile) {
	c.user = user
	c.userGen++
}

func (c *Controller) setViewLocked(view View) {
	if c.view == ViewInterview && view != ViewInterview {
		c.attemptGen++
		c.interview = nil
		delete(c.failures, readiness.PipelineQuestions)
		delete(c.failures, readiness.PipelineEvaluation)
	}
	c.view = view
}

func (c *Controller) setInsightLocked(insight *types.ReadinessInsight) {
	c.insight = insight
	c.insightGen++
	c.recs = nil
	c.attemptGen++
	c.interview = nil
	delete(c.failures, readiness.PipelineRecommendations)
	delete(c.failures, readiness.PipelineQuestions)
	delete(c.failures, readiness.PipelineEvaluation)
}

func (c *Controller) clearInsightLocked() {
	c.setInsightLocked(nil)
	c.intakeRole = ""
}
