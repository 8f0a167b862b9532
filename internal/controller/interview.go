package controller

import (
	"context"
	"slices"
	"strings"

	"github.com/jonathan/career-readiness/internal/readiness"
	"github.com/jonathan/career-readiness/internal/types"
)

type interviewState struct {
	role       string
	questions  []types.InterviewQuestion
	answers    []string
	step       int
	evaluation *types.InterviewEvaluation
}

// InterviewView is the renderable interview sub-state.
type InterviewView struct {
	Role       string                     `json:"role"`
	Questions  []types.InterviewQuestion  `json:"questions"`
	Answers    []string                   `json:"answers"`
	Step       int                        `json:"step"`
	CanAdvance bool                       `json:"canAdvance"`
	CanSubmit  bool                       `json:"canSubmit"`
	Evaluation *types.InterviewEvaluation `json:"evaluation,omitempty"`
}

func newInterviewState(role string, questions []types.InterviewQuestion) *interviewState {
	return &interviewState{
		role:      role,
		questions: slices.Clone(questions),
		answers:   make([]string, types.InterviewQuestionCount),
	}
}

func (s *interviewState) view() *InterviewView {
	return &InterviewView{
		Role:       s.role,
		Questions:  slices.Clone(s.questions),
		Answers:    slices.Clone(s.answers),
		Step:       s.step,
		CanAdvance: s.step == 0 && answered(s.answers[0]),
		CanSubmit:  s.step == types.InterviewQuestionCount-1 && answered(s.answers[1]) && s.evaluation == nil,
		Evaluation: s.evaluation,
	}
}

func answered(s string) bool {
	return strings.TrimSpace(s) != ""
}

// StartInterview generates a fresh question set for the insight's primary role.
func (c *Controller) StartInterview(ctx context.Context) (*InterviewView, error) {
	c.mu.Lock()
	role, ok := c.insight.PrimaryRole()
	if !ok {
		c.mu.Unlock()
		return nil, ErrInterviewBlocked
	}
	gen := c.insightGen
	c.setViewLocked(ViewInterview)
	c.attemptGen++
	attempt := c.attemptGen
	c.interview = nil
	delete(c.failures, readiness.PipelineQuestions)
	delete(c.failures, readiness.PipelineEvaluation)
	c.touchLocked()
	c.mu.Unlock()

	questions, err := c.pipelines.GenerateQuestions(ctx, role)
	if err != nil {
		c.RecordFailure(readiness.PipelineQuestions, err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// The attempt is stale once the insight changed, the screen was left or another attempt began.
	if gen != c.insightGen || attempt != c.attemptGen || c.view != ViewInterview {
		return nil, ErrNoInterview
	}
	c.interview = newInterviewState(role, questions)
	return c.interview.view(), nil
}

// SetAnswer records the answer text for question index.
func (c *Controller) SetAnswer(index int, answer string) (*InterviewView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.interview == nil {
		return nil, ErrNoInterview
	}
	if index < 0 || index >= types.InterviewQuestionCount {
		return nil, ErrInvalidIndex
	}
	c.interview.answers[index] = answer
	c.touchLocked()
	return c.interview.view(), nil
}

// SetStep moves between the two questions. Advancing requires a non-blank first answer.
func (c *Controller) SetStep(step int) (*InterviewView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.interview == nil {
		return nil, ErrNoInterview
	}
	if step < 0 || step >= types.InterviewQuestionCount {
		return nil, ErrInvalidIndex
	}
	if step > 0 && !answered(c.interview.answers[0]) {
		return nil, ErrAnswerRequired
	}
	c.interview.step = step
	c.touchLocked()
	return c.interview.view(), nil
}

// NextStep advances to the second question.
func (c *Controller) NextStep() (*InterviewView, error) {
	return c.SetStep(1)
}

// PreviousStep returns to the first question.
func (c *Controller) PreviousStep() (*InterviewView, error) {
	return c.SetStep(0)
}

// SubmitInterview evaluates the answers. It requires the final question to be answered.
func (c *Controller) SubmitInterview(ctx context.Context) (*types.InterviewEvaluation, error) {
	c.mu.Lock()
	state := c.interview
	if state == nil {
		c.mu.Unlock()
		return nil, ErrNoInterview
	}
	if !answered(state.answers[types.InterviewQuestionCount-1]) {
		c.mu.Unlock()
		return nil, ErrAnswerRequired
	}
	questions := slices.Clone(state.questions)
	answers := slices.Clone(state.answers)
	delete(c.failures, readiness.PipelineEvaluation)
	c.touchLocked()
	c.mu.Unlock()

	eval, err := c.pipelines.Evaluate(ctx, questions, answers)
	if err != nil {
		c.RecordFailure(readiness.PipelineEvaluation, err)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.interview == state {
		state.evaluation = eval
	}
	return eval, nil
}
