// Package types provides type definitions for structured data used throughout the career readiness service.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"path/filepath"
	"slices"
	"strings"
)

// Target specializations offered by the intake form.
const (
	RoleSoftwareDevelopmentEngineer = "Software Development Engineer"
	RoleBackendDeveloper            = "Backend Developer"
	RoleDataScientist               = "Data Scientist"
	RoleFrontendSpecialist          = "Frontend Specialist"
)

// Class-standing labels offered by the intake form.
const (
	YearFirst  = "1st Year"
	YearSecond = "2nd Year"
	YearThird  = "3rd Year"
	YearFourth = "4th Year"
)

// Roles lists the selectable target roles in display order.
var Roles = []string{
	RoleSoftwareDevelopmentEngineer,
	RoleBackendDeveloper,
	RoleDataScientist,
	RoleFrontendSpecialist,
}

// AcademicYears lists the selectable academic years in display order.
var AcademicYears = []string{YearFirst, YearSecond, YearThird, YearFourth}

// AcceptedExtensions lists the document extensions the intake form accepts.
var AcceptedExtensions = []string{".pdf", ".txt", ".docx"}

// DefaultRole is preselected on the intake form.
const DefaultRole = RoleSoftwareDevelopmentEngineer

// DefaultAcademicYear is preselected on the intake form.
const DefaultAcademicYear = YearFourth

// IsRole reports whether role is one of the enumerated target roles.
func IsRole(role string) bool {
	return slices.Contains(Roles, role)
}

// IsAcademicYear reports whether year is one of the enumerated class standings.
func IsAcademicYear(year string) bool {
	return slices.Contains(AcademicYears, year)
}

// IsAcceptedFile reports whether the file name carries an accepted document extension.
func IsAcceptedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return slices.Contains(AcceptedExtensions, ext)
}

// Options is the payload describing the intake form choices.
type Options struct {
	Roles               []string `json:"roles"`
	AcademicYears       []string `json:"academicYears"`
	AcceptedExtensions  []string `json:"acceptedExtensions"`
	DefaultRole         string   `json:"defaultRole"`
	DefaultAcademicYear string   `json:"defaultAcademicYear"`
}

// IntakeOptions returns the intake form choices.
func IntakeOptions() Options {
	return Options{
		Roles:               slices.Clone(Roles),
		AcademicYears:       slices.Clone(AcademicYears),
		AcceptedExtensions:  slices.Clone(AcceptedExtensions),
		DefaultRole:         DefaultRole,
		DefaultAcademicYear: DefaultAcademicYear,
	}
}
