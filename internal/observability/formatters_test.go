package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/career-readiness/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintInsight(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	insight := &types.ReadinessInsight{
		Score:        62,
		RoleAnalysis: []types.RoleFit{{Role: "Backend Developer", Fit: "Good"}},
		AcademicYear: types.YearThird,
		RoadmapType:  types.RoadmapExecution,
		Strengths:    []string{"Strong OOP"},
		Gaps:         []string{"No DB experience"},
		EvidenceSignals: []types.EvidenceSignal{
			{Category: "Technical", EvidenceLevel: types.EvidenceSome},
		},
		NextBestAction: "Build a DB-backed project",
	}

	p.PrintInsight(insight)
	output := buf.String()

	assert.Contains(t, output, "READINESS INSIGHT")
	assert.Contains(t, output, "62/100")
	assert.Contains(t, output, "Backend Developer (Good)")
	assert.Contains(t, output, "3rd Year")
	assert.Contains(t, output, "Execution")
	assert.Contains(t, output, "Strong OOP")
	assert.Contains(t, output, "No DB experience")
	assert.Contains(t, output, "Some Evidence")
	assert.Contains(t, output, "Build a DB-backed project")
}

func TestPrintInsight_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintInsight(&types.ReadinessInsight{})
	output := buf.String()

	assert.Contains(t, output, "0/100")
	assert.NotContains(t, output, "Role:")
	assert.NotContains(t, output, "Gaps:")
}

func TestPrintInsight_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintInsight(nil)

	assert.Empty(t, buf.String())
}

func TestPrintInsight_TruncatesLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	gaps := make([]string, 8)
	for i := range gaps {
		gaps[i] = fmt.Sprintf("gap-%d", i)
	}
	p.PrintInsight(&types.ReadinessInsight{Gaps: gaps})
	output := buf.String()

	assert.Contains(t, output, "gap-4")
	assert.NotContains(t, output, "gap-5")
	assert.Contains(t, output, "... and 3 more")
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations([]types.Recommendation{
		{Priority: types.PriorityCritical, Action: "Build a DB-backed project", EstimatedTime: "3 weeks"},
		{Priority: types.PriorityHigh, Action: "Learn SQL"},
	})
	output := buf.String()

	assert.Contains(t, output, "ROADMAP")
	assert.Contains(t, output, "Total actions: 2")
	assert.Contains(t, output, "#1  [Critical] Build a DB-backed project")
	assert.Contains(t, output, "Time: 3 weeks")
	assert.Contains(t, output, "#2  [High] Learn SQL")
}

func TestPrintRecommendations_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRecommendations(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 100))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	for _, line := range lines {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
	assert.Contains(t, buf.String(), "...")
}
