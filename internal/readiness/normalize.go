package readiness

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/career-readiness/internal/types"
)

// clampScore bounds v to [0,100].
func clampScore(v float64) float64 {
	return min(max(v, 0), 100)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// normalizeInsight repairs out-of-range values in place and reports how many fields were changed.
func normalizeInsight(insight *types.ReadinessInsight) int {
	repaired := 0

	if clamped := clampScore(insight.Score); clamped != insight.Score {
		insight.Score = clamped
		repaired++
	}

	for i := range insight.SkillData {
		if clamped := clampScore(insight.SkillData[i].A); clamped != insight.SkillData[i].A {
			insight.SkillData[i].A = clamped
			repaired++
		}
	}

	for i := range insight.EvidenceSignals {
		if !insight.EvidenceSignals[i].EvidenceLevel.Valid() {
			insight.EvidenceSignals[i].EvidenceLevel = types.EvidenceNotMentioned
			repaired++
		}
	}

	if insight.RoadmapType != "" && !slices.Contains(types.RoadmapTypes, insight.RoadmapType) {
		insight.RoadmapType = ""
		repaired++
	}

	insight.RoleAnalysis = nonNil(insight.RoleAnalysis)
	insight.Gaps = nonNil(insight.Gaps)
	insight.Strengths = nonNil(insight.Strengths)
	insight.Weaknesses = nonNil(insight.Weaknesses)
	insight.SkillData = nonNil(insight.SkillData)
	insight.EvidenceSignals = nonNil(insight.EvidenceSignals)

	return repaired
}

// normalizeRecommendations coerces unknown priorities to Moderate and reports how many were changed.
func normalizeRecommendations(recs []types.Recommendation) int {
	repaired := 0
	for i := range recs {
		if !recs[i].Priority.Valid() {
			recs[i].Priority = types.PriorityModerate
			repaired++
		}
	}
	return repaired
}

// fillQuestionIDs assigns identifiers to questions the model left unnamed.
func fillQuestionIDs(questions []types.InterviewQuestion) {
	for i := range questions {
		if strings.TrimSpace(questions[i].ID) == "" {
			questions[i].ID = uuid.NewString()
		}
	}
}

func normalizeEvaluation(eval *types.InterviewEvaluation) int {
	repaired := 0
	if clamped := clampScore(eval.OverallScore); clamped != eval.OverallScore {
		eval.OverallScore = clamped
		repaired++
	}
	eval.Suggestions = nonNil(eval.Suggestions)
	return repaired
}
