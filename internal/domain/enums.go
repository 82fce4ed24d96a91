package domain

import "strings"

// Closed-set fields. Each list is ordered with the normalization default first;
// CoerceX maps anything outside the set (after alias translation) to that default.

type Category string

const (
	CategoryCompany Category = "Company"
	CategoryVendor  Category = "Vendor"
)

var Categories = []Category{CategoryCompany, CategoryVendor}

type Source string

const (
	SourceLinkedin       Source = "Linkedin"
	SourceIndeed         Source = "Indeed"
	SourceGlassdoor      Source = "Glassdoor"
	SourceCompanyWebpage Source = "Company webpage"
	SourceVendorWebpage  Source = "Vendor webpage"
)

var Sources = []Source{
	SourceLinkedin, SourceIndeed, SourceGlassdoor,
	SourceCompanyWebpage, SourceVendorWebpage,
}

type Position string

const DefaultPosition Position = "AI Engineer"

// Positions is closed but meant to grow; add new titles here.
var Positions = []Position{
	"AI Engineer", "AI Developer", "Data Analyst", "Data Scientist",
	"Gen AI Engineer", "Gen AI Developer", "ML Engineer", "ML Developer",
	"MLOps Engineer", "LLMOps Engineer", "Python Developer", "Data Engineer",
	"DevOps Engineer", "Agentic AI role", "Back End Engineer", "Software Engineer",
	"AI Solutions Developer", "Applied AI/ML Engineer", "AI Product Engineer",
	"AI Deployment Engineer",
}

type EmploymentType string

const (
	EmploymentFullTimeHybrid EmploymentType = "full-time-hybrid"
	EmploymentContractHybrid EmploymentType = "contract-hybrid"
	EmploymentPartTime       EmploymentType = "part-time"
	EmploymentFullTimeRemote EmploymentType = "full-time-remote"
	EmploymentContractRemote EmploymentType = "contract-remote"
)

var EmploymentTypes = []EmploymentType{
	EmploymentFullTimeHybrid, EmploymentContractHybrid, EmploymentPartTime,
	EmploymentFullTimeRemote, EmploymentContractRemote,
}

type Status string

const (
	StatusApplied            Status = "Applied"
	StatusSubmittedResume    Status = "Submitted-Resume"
	StatusInterviewScheduled Status = "Interview-Scheduled"
	StatusInitialScreening   Status = "Initial-Screening"
	StatusSecondRound        Status = "Second-Round"
	StatusFinalRound         Status = "Final-Round"
	StatusForFuture          Status = "For-Future-Positions"
	StatusFollowup           Status = "Followup"
	StatusRejected           Status = "Rejected"
)

var Statuses = []Status{
	StatusApplied, StatusSubmittedResume, StatusInterviewScheduled,
	StatusInitialScreening, StatusSecondRound, StatusFinalRound,
	StatusForFuture, StatusFollowup, StatusRejected,
}

// Spellings accepted from older exports and spreadsheets.
var (
	employmentAliases = map[string]EmploymentType{
		"Full Time - Hybrid": EmploymentFullTimeHybrid,
		"Contract - Hybrid":  EmploymentContractHybrid,
		"Part time":          EmploymentPartTime,
		"Full Time - Remote": EmploymentFullTimeRemote,
		"Contract - Remote":  EmploymentContractRemote,
	}
	statusAliases = map[string]Status{
		"Initial Screeing":     StatusInitialScreening,
		"Initial Screening":    StatusInitialScreening,
		"Second Round":         StatusSecondRound,
		"Final Round":          StatusFinalRound,
		"For Future Positions": StatusForFuture,
	}
)

func CoerceCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if s == string(c) {
			return c
		}
	}
	return CategoryCompany
}

func CoerceSource(s string) Source {
	s = strings.TrimSpace(s)
	for _, v := range Sources {
		if s == string(v) {
			return v
		}
	}
	return SourceLinkedin
}

func CoercePosition(s string) Position {
	s = strings.TrimSpace(s)
	for _, p := range Positions {
		if s == string(p) {
			return p
		}
	}
	return DefaultPosition
}

func CoerceEmploymentType(s string) EmploymentType {
	s = strings.TrimSpace(s)
	for _, e := range EmploymentTypes {
		if s == string(e) {
			return e
		}
	}
	if e, ok := employmentAliases[s]; ok {
		return e
	}
	return EmploymentFullTimeHybrid
}

func CoerceStatus(s string) Status {
	s = strings.TrimSpace(s)
	for _, v := range Statuses {
		if s == string(v) {
			return v
		}
	}
	if v, ok := statusAliases[s]; ok {
		return v
	}
	return StatusApplied
}
