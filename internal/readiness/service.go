// Package readiness turns model replies into typed readiness insights, roadmaps and interview results.
package readiness

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-readiness/internal/llm"
	"github.com/jonathan/career-readiness/internal/metrics"
	"github.com/jonathan/career-readiness/internal/prompts"
	"github.com/jonathan/career-readiness/internal/schemas"
	"github.com/jonathan/career-readiness/internal/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DemoResumeText is analyzed when the intake form carries no extracted text.
const DemoResumeText = `Name: Demo Student
Education: B.Tech Computer Science, 2025 Grad
Experience: Summer Internship at TechCorp (Worked on React and Node.js)
Projects: Personal E-commerce site using MongoDB, Flask, and React.
Skills: JavaScript, Python, C++, AWS Foundations Certification.
No mentioned LeetCode link. No mentioned GitHub profile.`

// Service runs the four model-backed pipelines.
type Service struct {
	client  llm.Client
	timeout time.Duration
	logger  *zap.Logger
	recs    singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds each pipeline call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithLogger sets the service logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a pipeline service over an LLM client.
func NewService(client llm.Client, opts ...Option) *Service {
	s := &Service{
		client:  client,
		timeout: llm.DefaultTimeout,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze produces a readiness insight for the intake form submission.
// A reply that is not valid JSON yields an empty insight rather than an error.
func (s *Service) Analyze(ctx context.Context, req types.AnalyzeRequest) (*types.ReadinessInsight, error) {
	if err := req.Validate(); err != nil {
		return nil, validationError(err)
	}
	if strings.TrimSpace(req.DocumentText) == "" {
		req.DocumentText = DemoResumeText
	}

	prompt, err := prompts.Render(prompts.ReadinessFile, prompts.KeyAnalyzeReadiness, map[string]string{
		"Role":         req.Role,
		"AcademicYear": req.AcademicYear,
		"FileName":     req.FileName,
		"DocumentText": req.DocumentText,
	})
	if err != nil {
		return nil, err
	}

	reply, err := s.call(ctx, PipelineAnalysis, prompt, schemas.Insight, llm.TierAdvanced)
	if err != nil {
		return nil, err
	}

	insight := &types.ReadinessInsight{}
	if err := json.Unmarshal([]byte(reply), insight); err != nil {
		s.logger.Warn("analysis reply is not valid JSON, using empty insight", zap.Error(err))
		metrics.Degraded(PipelineAnalysis, "malformed_json")
		insight = &types.ReadinessInsight{}
	} else {
		s.checkSchema(PipelineAnalysis, schemas.Insight, reply)
	}

	if repaired := normalizeInsight(insight); repaired > 0 {
		s.logger.Warn("analysis reply normalized", zap.Int("fields", repaired))
		metrics.Degraded(PipelineAnalysis, "normalized")
	}
	insight.AcademicYear = req.AcademicYear

	s.logger.Info("analysis completed",
		zap.String("role", req.Role),
		zap.String("academic_year", req.AcademicYear),
		zap.Float64("score", insight.Score),
	)
	return insight, nil
}

// Recommend requests prioritized action items for the given gaps.
// Concurrent calls with the same role and gaps share one request. The shared request is detached
// from any single caller's cancellation and bounded by the pipeline timeout; each caller stops
// waiting when its own context ends.
func (s *Service) Recommend(ctx context.Context, gaps []string, role string) ([]types.Recommendation, error) {
	key := role + "\x00" + strings.Join(gaps, "\x1f")
	shared := context.WithoutCancel(ctx)
	ch := s.recs.DoChan(key, func() (any, error) {
		return s.recommend(shared, gaps, role)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", PipelineRecommendations, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("recommendation request shared", zap.String("role", role))
		}
		return slices.Clone(res.Val.([]types.Recommendation)), nil
	}
}

func (s *Service) recommend(ctx context.Context, gaps []string, role string) ([]types.Recommendation, error) {
	prompt, err := prompts.Render(prompts.ReadinessFile, prompts.KeyGenerateRecommendations, map[string]string{
		"Gaps": strings.Join(gaps, ", "),
		"Role": role,
	})
	if err != nil {
		return nil, err
	}

	reply, err := s.call(ctx, PipelineRecommendations, prompt, schemas.Recommendations, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var recs []types.Recommendation
	if err := json.Unmarshal([]byte(reply), &recs); err != nil {
		s.logger.Warn("recommendation reply is not valid JSON, using empty list", zap.Error(err))
		metrics.Degraded(PipelineRecommendations, "malformed_json")
		return []types.Recommendation{}, nil
	}
	s.checkSchema(PipelineRecommendations, schemas.Recommendations, reply)

	if repaired := normalizeRecommendations(recs); repaired > 0 {
		s.logger.Warn("recommendation priorities coerced", zap.Int("items", repaired))
		metrics.Degraded(PipelineRecommendations, "normalized")
	}
	return nonNil(recs), nil
}

// GenerateQuestions requests the interview questions for a role.
// Anything other than exactly InterviewQuestionCount questions is an InvalidResponseShapeError.
func (s *Service) GenerateQuestions(ctx context.Context, role string) ([]types.InterviewQuestion, error) {
	if strings.TrimSpace(role) == "" {
		return nil, &ValidationError{Field: "role", Message: "role is required"}
	}

	prompt, err := prompts.Render(prompts.ReadinessFile, prompts.KeyGenerateInterviewQuestion, map[string]string{
		"Role":          role,
		"QuestionCount": strconv.Itoa(types.InterviewQuestionCount),
	})
	if err != nil {
		return nil, err
	}

	reply, err := s.call(ctx, PipelineQuestions, prompt, schemas.InterviewQuestions, llm.TierLite)
	if err != nil {
		return nil, err
	}

	var questions []types.InterviewQuestion
	if err := json.Unmarshal([]byte(reply), &questions); err != nil {
		return nil, &ParseError{Pipeline: PipelineQuestions, Message: "failed to parse JSON response", Cause: err}
	}
	if len(questions) != types.InterviewQuestionCount {
		return nil, &InvalidResponseShapeError{
			Pipeline: PipelineQuestions,
			Field:    "questions",
			Expected: types.InterviewQuestionCount,
			Got:      len(questions),
		}
	}
	s.checkSchema(PipelineQuestions, schemas.InterviewQuestions, reply)

	fillQuestionIDs(questions)
	return questions, nil
}

// Evaluate scores the answers to a question set. Answers are paired with questions by index.
func (s *Service) Evaluate(ctx context.Context, questions []types.InterviewQuestion, answers []string) (*types.InterviewEvaluation, error) {
	if len(questions) != types.InterviewQuestionCount {
		return nil, &ValidationError{
			Field:   "questions",
			Message: fmt.Sprintf("exactly %d questions are required, got %d", types.InterviewQuestionCount, len(questions)),
		}
	}

	transcript, err := json.Marshal(types.PairAnswers(questions, answers))
	if err != nil {
		return nil, fmt.Errorf("failed to encode transcript: %w", err)
	}

	prompt, err := prompts.Render(prompts.ReadinessFile, prompts.KeyEvaluateInterview, map[string]string{
		"Transcript": string(transcript),
	})
	if err != nil {
		return nil, err
	}

	reply, err := s.call(ctx, PipelineEvaluation, prompt, schemas.InterviewEvaluation, llm.TierStandard)
	if err != nil {
		return nil, err
	}

	var eval types.InterviewEvaluation
	if err := json.Unmarshal([]byte(reply), &eval); err != nil {
		return nil, &ParseError{Pipeline: PipelineEvaluation, Message: "failed to parse JSON response", Cause: err}
	}
	s.checkSchema(PipelineEvaluation, schemas.InterviewEvaluation, reply)

	if repaired := normalizeEvaluation(&eval); repaired > 0 {
		metrics.Degraded(PipelineEvaluation, "normalized")
	}
	return &eval, nil
}

// call submits one schema-constrained request under the pipeline timeout.
func (s *Service) call(ctx context.Context, pipeline, prompt, schemaName string, tier llm.ModelTier) (string, error) {
	schema, err := schemas.Load(schemaName)
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	reply, err := s.client.GenerateStructured(callCtx, prompt, schema, tier)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			metrics.ObservePipeline(pipeline, metrics.OutcomeTimeout, elapsed)
			s.logger.Warn("pipeline timed out", zap.String("pipeline", pipeline), zap.Duration("timeout", s.timeout))
			return "", &TimeoutError{Pipeline: pipeline, After: s.timeout, Cause: err}
		}
		if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
			metrics.ObservePipeline(pipeline, metrics.OutcomeCancelled, elapsed)
			s.logger.Warn("pipeline request cancelled", zap.String("pipeline", pipeline))
			if !errors.Is(err, context.Canceled) {
				err = fmt.Errorf("%w: %w", context.Canceled, err)
			}
			return "", &APICallError{Pipeline: pipeline, Message: "request cancelled", Cause: err}
		}
		metrics.ObservePipeline(pipeline, metrics.OutcomeError, elapsed)
		s.logger.Error("pipeline request failed", zap.String("pipeline", pipeline), zap.Error(err))
		return "", &APICallError{Pipeline: pipeline, Message: "failed to generate content from LLM", Cause: err}
	}

	metrics.ObservePipeline(pipeline, metrics.OutcomeSuccess, elapsed)
	s.logger.Debug("pipeline reply received",
		zap.String("pipeline", pipeline),
		zap.String("model", s.client.GetModel(tier)),
		zap.Duration("elapsed", elapsed),
	)
	return llm.CleanJSONBlock(reply), nil
}

// checkSchema logs schema violations in a parsed reply. Violations are repaired by normalization.
func (s *Service) checkSchema(pipeline, schemaName, reply string) {
	err := schemas.Validate(schemaName, reply)
	if err == nil {
		return
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		s.logger.Warn("reply violates response schema",
			zap.String("pipeline", pipeline),
			zap.Strings("fields", validationErr.Fields()),
		)
		metrics.Degraded(pipeline, "schema_violation")
		return
	}
	s.logger.Warn("schema check failed", zap.String("pipeline", pipeline), zap.Error(err))
}

func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("failed %q check", fe.Tag())}
	}
	return &ValidationError{Message: err.Error()}
}
