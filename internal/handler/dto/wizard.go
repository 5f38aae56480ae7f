// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/setuprelay/setuprelay/internal/wizard"

// SubmissionRequest represents the wizard form payload.
// Only email and company_name are required; everything else is optional
// and degrades to a display default when absent.
type SubmissionRequest struct {
	Email        string `json:"email"`
	CompanyName  string `json:"company_name"`
	YourName     string `json:"your_name,omitempty"`
	Role         string `json:"role,omitempty"`
	TeamSize     string `json:"team_size,omitempty"`
	Timeline     string `json:"timeline,omitempty"`
	CurrentTools string `json:"current_tools,omitempty"`
	LicenseType  string `json:"license_type,omitempty"`
	AccessMethod string `json:"access_method,omitempty"`
	OrgUUID      string `json:"org_uuid,omitempty"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

// ToSubmission converts the request payload into the service model.
func (r SubmissionRequest) ToSubmission() wizard.Submission {
	return wizard.Submission{
		Email:        r.Email,
		CompanyName:  r.CompanyName,
		YourName:     r.YourName,
		Role:         r.Role,
		TeamSize:     r.TeamSize,
		Timeline:     r.Timeline,
		CurrentTools: r.CurrentTools,
		LicenseType:  r.LicenseType,
		AccessMethod: r.AccessMethod,
		OrgUUID:      r.OrgUUID,
		CompletedAt:  r.CompletedAt,
	}
}

// SubmitResponse is the success response for a submission.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the error response shape for all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}
