// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/career-readiness/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // verbose output; write errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList appends up to limit items under a heading.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintInsight outputs a human-readable summary of a readiness insight.
func (p *Printer) PrintInsight(insight *types.ReadinessInsight) {
	if insight == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Score:    %.0f/100\n", insight.Score))
	if role, ok := insight.PrimaryRole(); ok {
		fit := insight.RoleAnalysis[0].Fit
		sb.WriteString(fmt.Sprintf("Role:     %s", role))
		if fit != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", fit))
		}
		sb.WriteString("\n")
	}
	if insight.AcademicYear != "" {
		sb.WriteString(fmt.Sprintf("Year:     %s\n", insight.AcademicYear))
	}
	if insight.RoadmapType != "" {
		sb.WriteString(fmt.Sprintf("Roadmap:  %s\n", insight.RoadmapType))
	}
	sb.WriteString("\n")

	writeList(&sb, "Strengths", insight.Strengths, maxItemsToShow)
	writeList(&sb, "Gaps", insight.Gaps, maxItemsToShow)

	if len(insight.EvidenceSignals) > 0 {
		sb.WriteString("Evidence:\n")
		for _, signal := range insight.EvidenceSignals {
			sb.WriteString(fmt.Sprintf("  %-12s %s\n", signal.Category, signal.EvidenceLevel))
		}
		sb.WriteString("\n")
	}

	if insight.NextBestAction != "" {
		sb.WriteString(fmt.Sprintf("Next: %s\n", insight.NextBestAction))
	}

	p.printBox("READINESS INSIGHT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the roadmap actions in priority order as received.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total actions: %d\n\n", len(recs)))

	count := min(len(recs), maxItemsToShow)
	for i, rec := range recs[:count] {
		sb.WriteString(fmt.Sprintf("#%d  [%s] %s\n", i+1, rec.Priority, rec.Action))
		if rec.EstimatedTime != "" {
			sb.WriteString(fmt.Sprintf("    Time: %s\n", rec.EstimatedTime))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(recs) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more actions", len(recs)-maxItemsToShow))
	}

	p.printBox("ROADMAP", sb.String())
}
