// Package wizard implements the setup-wizard submission workflow:
// validation, email rendering, and dispatch through the mail transport.
package wizard

import "time"

// License type and access method values recognized by the wizard form.
// Unrecognized values are displayed as-is rather than rejected, so new
// form options keep working without a server change.
const (
	LicensePerUser = "per-user"

	AccessFirstParty = "first-party"
	AccessBedrock    = "bedrock"
	AccessVertex     = "vertex"
)

// Display defaults for absent optional fields.
const (
	notProvided   = "Not provided"
	noneSpecified = "None specified"
	notSpecified  = "Not specified"
)

// Submission is one wizard form payload. It is request-scoped: consumed
// once, never persisted.
type Submission struct {
	Email        string
	CompanyName  string
	YourName     string
	Role         string
	TeamSize     string
	Timeline     string
	CurrentTools string
	LicenseType  string
	AccessMethod string
	OrgUUID      string
	CompletedAt  string
}

// Valid reports whether both required fields are present.
// No further validation happens: email format, enum membership and the
// rest degrade gracefully at render time.
func (s Submission) Valid() bool {
	return s.Email != "" && s.CompanyName != ""
}

// SalesFollowUp reports whether this submission needs a sales follow-up.
func (s Submission) SalesFollowUp() bool {
	return s.LicenseType == LicensePerUser
}

// licenseLabel maps the license type to its display string.
func (s Submission) licenseLabel() string {
	if s.SalesFollowUp() {
		return "Per-User License ($200/month per developer) - SALES FOLLOW-UP REQUIRED"
	}
	return "API Token (Pay-as-you-go)"
}

// accessLabel maps the access method through the fixed lookup table.
// Unrecognized values pass through unchanged; absent becomes "Not specified".
func (s Submission) accessLabel() string {
	switch s.AccessMethod {
	case AccessFirstParty:
		return "First-Party API (Direct)"
	case AccessBedrock:
		return "AWS Bedrock"
	case AccessVertex:
		return "Google Cloud Vertex AI"
	case "":
		return notSpecified
	default:
		return s.AccessMethod
	}
}

// orgUUIDLabel derives the organization UUID display value. The UUID is
// only meaningful for first-party access; third-party access shows N/A.
func (s Submission) orgUUIDLabel() string {
	if s.OrgUUID != "" {
		return s.OrgUUID
	}
	if s.AccessMethod == AccessFirstParty {
		return notProvided
	}
	return "N/A (Third-party access)"
}

// timestampLabel formats the completion time for display. RFC 3339 values
// are reformatted; anything else is shown raw.
func (s Submission) timestampLabel() string {
	if s.CompletedAt == "" {
		return notProvided
	}
	if t, err := time.Parse(time.RFC3339, s.CompletedAt); err == nil {
		return t.Format("Jan 2, 2006 15:04:05 MST")
	}
	return s.CompletedAt
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// notificationView is the template data for the notification email.
type notificationView struct {
	Timestamp     string
	CompanyName   string
	ContactName   string
	Email         string
	Role          string
	TeamSize      string
	Timeline      string
	LicenseLabel  string
	AccessLabel   string
	OrgUUID       string
	CurrentTools  string
	SalesFollowUp bool
}

// confirmationView is the template data for the customer thank-you email.
type confirmationView struct {
	Name        string
	CompanyName string
	PerUser     bool
}

func (s Submission) notificationView() notificationView {
	return notificationView{
		Timestamp:     s.timestampLabel(),
		CompanyName:   orDefault(s.CompanyName, notProvided),
		ContactName:   orDefault(s.YourName, notProvided),
		Email:         orDefault(s.Email, notProvided),
		Role:          orDefault(s.Role, notProvided),
		TeamSize:      orDefault(s.TeamSize, notProvided),
		Timeline:      orDefault(s.Timeline, notProvided),
		LicenseLabel:  s.licenseLabel(),
		AccessLabel:   s.accessLabel(),
		OrgUUID:       s.orgUUIDLabel(),
		CurrentTools:  orDefault(s.CurrentTools, noneSpecified),
		SalesFollowUp: s.SalesFollowUp(),
	}
}

func (s Submission) confirmationView() confirmationView {
	return confirmationView{
		Name:        s.YourName,
		CompanyName: s.CompanyName,
		PerUser:     s.SalesFollowUp(),
	}
}
