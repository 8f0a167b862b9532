//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request AnalyzeRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: AnalyzeRequest{
				Role:         RoleBackendDeveloper,
				AcademicYear: YearThird,
				FileName:     "resume.pdf",
			},
			wantErr: false,
		},
		{
			name: "valid request with text",
			request: AnalyzeRequest{
				Role:         RoleDataScientist,
				AcademicYear: YearFirst,
				FileName:     "Resume.DOCX",
				DocumentText: "Skills: Python",
			},
			wantErr: false,
		},
		{
			name: "missing role",
			request: AnalyzeRequest{
				AcademicYear: YearThird,
				FileName:     "resume.pdf",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "unknown role",
			request: AnalyzeRequest{
				Role:         "Astronaut",
				AcademicYear: YearThird,
				FileName:     "resume.pdf",
			},
			wantErr: true,
			errMsg:  "role",
		},
		{
			name: "unknown academic year",
			request: AnalyzeRequest{
				Role:         RoleBackendDeveloper,
				AcademicYear: "5th Year",
				FileName:     "resume.pdf",
			},
			wantErr: true,
			errMsg:  "academic_year",
		},
		{
			name: "unsupported file extension",
			request: AnalyzeRequest{
				Role:         RoleBackendDeveloper,
				AcademicYear: YearThird,
				FileName:     "resume.png",
			},
			wantErr: true,
			errMsg:  "document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNavigateRequest_Validation(t *testing.T) {
	for _, view := range []string{"landing", "dashboard", "interview"} {
		req := NavigateRequest{View: view}
		assert.NoError(t, req.Validate(), view)
	}

	for _, view := range []string{"", "results", "settings"} {
		req := NavigateRequest{View: view}
		assert.Error(t, req.Validate(), view)
	}
}

func TestStepRequest_Validation(t *testing.T) {
	assert.NoError(t, (&StepRequest{Step: 0}).Validate())
	assert.NoError(t, (&StepRequest{Step: 1}).Validate())
	assert.Error(t, (&StepRequest{Step: 2}).Validate())
	assert.Error(t, (&StepRequest{Step: -1}).Validate())
}

func TestUserProfile_JSONOmitsOptionalFields(t *testing.T) {
	profile := UserProfile{Name: "Demo Student", Email: "student@university.edu"}

	data, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Demo Student","email":"student@university.edu"}`, string(data))
}
