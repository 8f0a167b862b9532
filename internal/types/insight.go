package types

import "slices"

// EvidenceLevel is the tri-state confidence tag attached to an extracted signal category.
type EvidenceLevel string

// Evidence levels
const (
	EvidenceStrong       EvidenceLevel = "Strong Evidence"
	EvidenceSome         EvidenceLevel = "Some Evidence"
	EvidenceNotMentioned EvidenceLevel = "Not Mentioned"
)

// EvidenceLevels lists all valid evidence levels.
var EvidenceLevels = []EvidenceLevel{EvidenceStrong, EvidenceSome, EvidenceNotMentioned}

// Valid reports whether the level is one of the three allowed values.
func (l EvidenceLevel) Valid() bool {
	return slices.Contains(EvidenceLevels, l)
}

// Roadmap types describing the overall readiness posture.
const (
	RoadmapLearning     = "Learning"
	RoadmapExecution    = "Execution"
	RoadmapAcceleration = "Acceleration"
)

// RoadmapTypes lists the roadmap classifications the analysis may produce.
var RoadmapTypes = []string{RoadmapLearning, RoadmapExecution, RoadmapAcceleration}

// RoleFit is a single role assessment. The first entry of an insight is the primary role.
type RoleFit struct {
	Role string `json:"role"`
	Fit  string `json:"fit"`
}

// SkillPoint is a radar chart axis.
type SkillPoint struct {
	Subject string  `json:"subject"`
	A       float64 `json:"A"`
}

// EvidenceSignal describes how strongly the document supports a signal category.
type EvidenceSignal struct {
	Category      string        `json:"category"`
	EvidenceLevel EvidenceLevel `json:"evidenceLevel"`
	Details       string        `json:"details"`
}

// ReadinessInsight is the structured output of the analysis pipeline.
type ReadinessInsight struct {
	Score              float64          `json:"score"`
	RoleAnalysis       []RoleFit        `json:"roleAnalysis"`
	Gaps               []string         `json:"gaps"`
	Strengths          []string         `json:"strengths"`
	Weaknesses         []string         `json:"weaknesses"`
	Explanation        string           `json:"explanation"`
	RoadmapDescription string           `json:"roadmapDescription"`
	RoadmapType        string           `json:"roadmapType"`
	SkillData          []SkillPoint     `json:"skillData"`
	AcademicYear       string           `json:"academicYear"`
	EvidenceSignals    []EvidenceSignal `json:"evidenceSignals"`
	NextBestAction     string           `json:"nextBestAction"`
}

// PrimaryRole returns roleAnalysis[0].role and false when the role analysis is empty.
func (i *ReadinessInsight) PrimaryRole() (string, bool) {
	if i == nil || len(i.RoleAnalysis) == 0 {
		return "", false
	}
	return i.RoleAnalysis[0].Role, true
}

// HasPrimaryRole reports whether the insight can drive the interview screen.
func (i *ReadinessInsight) HasPrimaryRole() bool {
	_, ok := i.PrimaryRole()
	return ok
}
