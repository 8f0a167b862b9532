package types

import (
	"github.com/go-playground/validator/v10"
)

// UserProfile is the signed-in identity. Email is the identity key.
type UserProfile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	AcademicYear string `json:"academicYear,omitempty"`
	UploadedFile string `json:"uploadedFile,omitempty"`
}

// SessionResponse is returned when a new browser session is opened.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

// AnalyzeRequest is the intake form submission.
type AnalyzeRequest struct {
	Role         string `json:"role" validate:"required,role"`
	AcademicYear string `json:"academicYear" validate:"required,academic_year"`
	FileName     string `json:"fileName" validate:"required,document"`
	DocumentText string `json:"documentText,omitempty"`
}

// NavigateRequest asks the controller to switch screens.
type NavigateRequest struct {
	View string `json:"view" validate:"required,oneof=landing dashboard interview"`
}

// AnswerRequest records the free-text answer to an interview question.
type AnswerRequest struct {
	Answer string `json:"answer" validate:"max=20000"`
}

// StepRequest moves the interview between its two questions.
type StepRequest struct {
	Step int `json:"step" validate:"min=0,max=1"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	return newValidator().Struct(r)
}

// Validate validates the NavigateRequest using the validator.
func (r *NavigateRequest) Validate() error {
	return newValidator().Struct(r)
}

// Validate validates the AnswerRequest using the validator.
func (r *AnswerRequest) Validate() error {
	return newValidator().Struct(r)
}

// Validate validates the StepRequest using the validator.
func (r *StepRequest) Validate() error {
	return newValidator().Struct(r)
}

// newValidator returns a validator with the intake enumerations registered as tags.
func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return IsRole(fl.Field().String())
	})
	_ = validate.RegisterValidation("academic_year", func(fl validator.FieldLevel) bool {
		return IsAcademicYear(fl.Field().String())
	})
	_ = validate.RegisterValidation("document", func(fl validator.FieldLevel) bool {
		return IsAcceptedFile(fl.Field().String())
	})
	return validate
}
