package controller

import (
	"slices"

	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/types"
)

// Actions offered on screens with a single way forward
const (
	ActionGetStarted  = "get_started"
	ActionGoDashboard = "go_dashboard"
)

// Render is a snapshot of everything the active screen displays.
type Render struct {
	Screen          Screen                  `json:"screen"`
	View            View                    `json:"view"`
	User            *types.UserProfile      `json:"user,omitempty"`
	Options         *types.Options          `json:"options,omitempty"`
	Insight         *types.ReadinessInsight `json:"insight,omitempty"`
	Recommendations []types.Recommendation  `json:"recommendations,omitempty"`
	Interview       *InterviewView          `json:"interview,omitempty"`
	Actions         []string                `json:"actions,omitempty"`
	Failures        []readiness.Failure     `json:"failures,omitempty"`
}

// Render returns the screen for the current state.
// The interview screen is never rendered without an insight carrying a primary role.
func (c *Controller) Render() Render {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.ready {
		return Render{Screen: ScreenLoading, View: c.view}
	}

	r := Render{View: c.view, User: c.userLocked()}

	switch c.view {
	case ViewDashboard:
		if c.insight == nil {
			opts := types.IntakeOptions()
			r.Screen = ScreenDashboardIntake
			r.Options = &opts
			r.Failures = c.failuresLocked(readiness.PipelineAnalysis)
			break
		}
		r.Screen = ScreenDashboardReport
		r.Insight = c.insight
		if c.recsGen == c.insightGen {
			r.Recommendations = slices.Clone(c.recs)
		}
		r.Failures = c.failuresLocked(readiness.PipelineRecommendations)
	case ViewInterview:
		if !c.insight.HasPrimaryRole() {
			r.Screen = ScreenInterviewBlocked
			r.Actions = []string{ActionGoDashboard}
			break
		}
		r.Screen = ScreenInterview
		if c.interview != nil {
			r.Interview = c.interview.view()
		}
		r.Failures = c.failuresLocked(readiness.PipelineQuestions, readiness.PipelineEvaluation)
	default:
		r.Screen = ScreenLanding
		r.Actions = []string{ActionGetStarted}
	}
	return r
}

func (c *Controller) userLocked() *types.UserProfile {
	if c.user == nil {
		return nil
	}
	user := *c.user
	return &user
}

func (c *Controller) failuresLocked(pipelines ...string) []readiness.Failure {
	var out []readiness.Failure
	for _, p := range pipelines {
		if f, ok := c.failures[p]; ok {
			out = append(out, f)
		}
	}
	return out
}
