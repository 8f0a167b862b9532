package readiness

import (
	"context"
	"sync"

	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Report steps announced through progress events
const (
	StepAnalysis        = "analysis"
	StepRecommendations = "recommendations"
	StepQuestions       = "questions"
	StepComplete        = "complete"
)

// ProgressEvent represents a progress update during report generation
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when report progress occurs
type ProgressCallback func(event ProgressEvent)

// Report bundles an insight with the roadmap and interview questions derived from it.
type Report struct {
	Insight         *types.ReadinessInsight   `json:"insight"`
	Recommendations []types.Recommendation    `json:"recommendations"`
	Questions       []types.InterviewQuestion `json:"questions"`
	Failures        []Failure                 `json:"failures,omitempty"`
}

// RoleFor returns the role downstream pipelines target: the insight's primary role, else fallback.
func RoleFor(insight *types.ReadinessInsight, fallback string) string {
	if role, ok := insight.PrimaryRole(); ok && role != "" {
		return role
	}
	return fallback
}

// BuildReport runs the analysis, then the recommendation and question pipelines in parallel.
// Analysis failure is returned as an error. Later failures are recorded on the report.
func (s *Service) BuildReport(ctx context.Context, req types.AnalyzeRequest, onProgress ProgressCallback) (*Report, error) {
	var progressMu sync.Mutex
	emit := func(step, message string, content any) {
		if onProgress == nil {
			return
		}
		progressMu.Lock()
		defer progressMu.Unlock()
		onProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}

	emit(StepAnalysis, "Analyzing document evidence", nil)
	insight, err := s.Analyze(ctx, req)
	if err != nil {
		return nil, err
	}
	emit(StepAnalysis, "Readiness insight ready", insight)

	report := &Report{
		Insight:         insight,
		Recommendations: []types.Recommendation{},
		Questions:       []types.InterviewQuestion{},
	}
	var failuresMu sync.Mutex
	fail := func(pipeline string, err error) {
		s.logger.Warn("report branch failed", zap.String("pipeline", pipeline), zap.Error(err))
		failuresMu.Lock()
		report.Failures = append(report.Failures, *NewFailure(pipeline, err))
		failuresMu.Unlock()
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		emit(StepRecommendations, "Building roadmap", nil)
		recs, err := s.Recommend(gCtx, insight.Gaps, RoleFor(insight, req.Role))
		if err != nil {
			fail(PipelineRecommendations, err)
			return nil
		}
		report.Recommendations = recs
		emit(StepRecommendations, "Roadmap ready", recs)
		return nil
	})

	g.Go(func() error {
		role, ok := insight.PrimaryRole()
		if !ok {
			fail(PipelineQuestions, &InvalidResponseShapeError{
				Pipeline: PipelineAnalysis,
				Field:    "roleAnalysis",
				Expected: 1,
				Got:      0,
			})
			return nil
		}
		emit(StepQuestions, "Preparing interview questions", nil)
		questions, err := s.GenerateQuestions(gCtx, role)
		if err != nil {
			fail(PipelineQuestions, err)
			return nil
		}
		report.Questions = questions
		emit(StepQuestions, "Interview questions ready", questions)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	emit(StepComplete, "Report complete", report)
	return report, nil
}
