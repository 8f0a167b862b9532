package types

import "slices"

// Priority ranks a recommended action.
type Priority string

// Priorities
const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityModerate Priority = "Moderate"
)

// Priorities lists the valid priorities from most to least urgent.
var Priorities = []Priority{PriorityCritical, PriorityHigh, PriorityModerate}

// Valid reports whether the priority is one of the allowed values.
func (p Priority) Valid() bool {
	return slices.Contains(Priorities, p)
}

// Recommendation is one time-estimated action item on the roadmap.
type Recommendation struct {
	Priority      Priority `json:"priority"`
	Action        string   `json:"action"`
	Description   string   `json:"description"`
	EstimatedTime string   `json:"estimatedTime"`
}
