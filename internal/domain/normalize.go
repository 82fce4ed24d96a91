package domain

import (
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Alias probe order per field: current property name first, then spreadsheet
// headers, then the legacy narrow schema (resource/name/company). First
// non-empty value wins. There is no version marker on persisted data; field
// presence is the only discriminator between old and new shapes.
var fieldAliases = map[string][]string{
	"id":               {"id"},
	"category":         {"category", "Type", "type", "Resource", "resource"},
	"source":           {"source", "Source"},
	"contactName":      {"contactName", "Full Name", "fullName", "Name", "name"},
	"organizationName": {"organizationName", "Company", "company", "Company Name", "companyName"},
	"endClient":        {"endClient", "EndClient", "End Client"},
	"location":         {"location", "Location"},
	"position":         {"position", "Position"},
	"employmentType":   {"employmentType", "Job Type", "jobType"},
	"email":            {"email", "Email"},
	"phone":            {"phone", "Phone"},
	"appliedDate":      {"appliedDate", "Date", "date"},
	"invitationLink":   {"invitationLink", "InvitationLink"},
	"interviewTime":    {"interviewTime", "Interview Time"},
	"notes":            {"notes", "Notes"},
	"status":           {"status", "Remarks", "remarks"},
}

// Normalize coerces a loosely-typed mapping (stored snapshot entry or imported
// spreadsheet row) into a fully-populated Record. It never fails: unknown keys
// are ignored, missing fields take defaults, a missing id gets a fresh one and
// a missing or unparseable date becomes today.
func Normalize(raw map[string]any) Record {
	pick := func(field string) string {
		for _, k := range fieldAliases[field] {
			if v, ok := raw[k]; ok {
				if s := stringify(v); s != "" {
					return s
				}
			}
		}
		return ""
	}

	id := pick("id")
	if id == "" {
		id = NewID()
	}

	return Record{
		ID:               id,
		Category:         CoerceCategory(pick("category")),
		Source:           CoerceSource(pick("source")),
		ContactName:      pick("contactName"),
		OrganizationName: pick("organizationName"),
		EndClient:        pick("endClient"),
		Location:         pick("location"),
		Position:         CoercePosition(pick("position")),
		EmploymentType:   CoerceEmploymentType(pick("employmentType")),
		Email:            pick("email"),
		Phone:            pick("phone"),
		AppliedDate:      CoerceDate(pick("appliedDate")),
		InvitationLink:   pick("invitationLink"),
		InterviewTime:    pick("interviewTime"),
		Notes:            pick("notes"),
		Status:           CoerceStatus(pick("status")),
	}
}

// NormalizeRow adapts a header-keyed spreadsheet row for Normalize.
func NormalizeRow(row map[string]string) Record {
	raw := make(map[string]any, len(row))
	for k, v := range row {
		raw[k] = v
	}
	return Normalize(raw)
}

// CoerceDate returns a valid YYYY-MM-DD string: the input if it parses,
// its date prefix for datetime-ish inputs, otherwise today.
func CoerceDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Today()
	}
	if _, err := time.Parse(DateLayout, s); err == nil {
		return s
	}
	if len(s) > len(DateLayout) {
		if _, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return s[:len(DateLayout)]
		}
	}
	return Today()
}

func Today() string {
	return time.Now().Format(DateLayout)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		// JSON numbers; keep integers unadorned
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
