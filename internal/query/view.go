// Package query computes the visible, ordered subset of the record
// collection. Everything here is pure: same inputs, same output, safe to
// recompute on every change.
package query

import (
	"sort"
	"strings"

	"apptrack-engine/internal/domain"
)

type Options struct {
	Search   string
	Category string
	Position string
	Status   string
	Date     string // exact YYYY-MM-DD match
	Sort     string // record field name
	Order    string // asc | desc
}

const (
	DefaultSort  = "appliedDate"
	DefaultOrder = "desc"
)

// sortKeys whitelists sortable fields (prevents surprises from arbitrary
// client-supplied keys). appliedDate is YYYY-MM-DD, so lexicographic order is
// chronological order.
var sortKeys = map[string]func(domain.Record) string{
	"id":               func(r domain.Record) string { return r.ID },
	"category":         func(r domain.Record) string { return string(r.Category) },
	"source":           func(r domain.Record) string { return string(r.Source) },
	"contactName":      func(r domain.Record) string { return r.ContactName },
	"organizationName": func(r domain.Record) string { return r.OrganizationName },
	"endClient":        func(r domain.Record) string { return r.EndClient },
	"location":         func(r domain.Record) string { return r.Location },
	"position":         func(r domain.Record) string { return string(r.Position) },
	"employmentType":   func(r domain.Record) string { return string(r.EmploymentType) },
	"email":            func(r domain.Record) string { return r.Email },
	"phone":            func(r domain.Record) string { return r.Phone },
	"appliedDate":      func(r domain.Record) string { return r.AppliedDate },
	"invitationLink":   func(r domain.Record) string { return r.InvitationLink },
	"interviewTime":    func(r domain.Record) string { return r.InterviewTime },
	"notes":            func(r domain.Record) string { return r.Notes },
	"status":           func(r domain.Record) string { return string(r.Status) },
}

// ValidSortKey reports whether the field name can be sorted on.
func ValidSortKey(key string) bool {
	_, ok := sortKeys[key]
	return ok
}

// View applies search, then the four exact-match filters, then a stable sort.
// The input slice is never modified.
func View(records []domain.Record, opts Options) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if !matchesSearch(r, opts.Search) {
			continue
		}
		if opts.Category != "" && string(r.Category) != opts.Category {
			continue
		}
		if opts.Position != "" && string(r.Position) != opts.Position {
			continue
		}
		if opts.Status != "" && string(r.Status) != opts.Status {
			continue
		}
		if opts.Date != "" && r.AppliedDate != opts.Date {
			continue
		}
		out = append(out, r)
	}

	key := sortKeys[opts.Sort]
	if key == nil {
		key = sortKeys[DefaultSort]
	}
	desc := opts.Order != "asc"
	sort.SliceStable(out, func(i, j int) bool {
		a, b := key(out[i]), key(out[j])
		if desc {
			return a > b
		}
		return a < b
	})
	return out
}

// matchesSearch is a case-insensitive substring OR across the fields a user
// would scan a table row for.
func matchesSearch(r domain.Record, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, v := range []string{
		r.ContactName, r.OrganizationName, r.EndClient, r.Location,
		r.Email, r.Phone, string(r.Position),
	} {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}
