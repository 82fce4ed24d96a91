package domain

import "github.com/google/uuid"

// Record is one job-application entry. JSON property names double as the
// column headers on spreadsheet export.
type Record struct {
	ID               string         `json:"id"`
	Category         Category       `json:"category"`
	Source           Source         `json:"source"`
	ContactName      string         `json:"contactName"`
	OrganizationName string         `json:"organizationName"`
	EndClient        string         `json:"endClient"`
	Location         string         `json:"location"`
	Position         Position       `json:"position"`
	EmploymentType   EmploymentType `json:"employmentType"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	AppliedDate      string         `json:"appliedDate"` // YYYY-MM-DD
	InvitationLink   string         `json:"invitationLink"`
	InterviewTime    string         `json:"interviewTime"`
	Notes            string         `json:"notes"`
	Status           Status         `json:"status"`
}

// FieldNames lists the record fields in export column order.
var FieldNames = []string{
	"id", "category", "source", "contactName", "organizationName", "endClient",
	"location", "position", "employmentType", "email", "phone", "appliedDate",
	"invitationLink", "interviewTime", "notes", "status",
}

func NewID() string {
	return uuid.NewString()
}
