// Package tracker owns the record collection: one process-wide cell that only
// the mutation methods replace, always wholesale, with a snapshot write after
// every successful change.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"apptrack-engine/internal/domain"
	"apptrack-engine/internal/query"
)

// ErrValidation marks user-correctable rejections; the collection is left
// untouched when it is returned.
var ErrValidation = errors.New("validation failed")

// Store is the persistence sync boundary (see internal/store.Snapshots).
type Store interface {
	LoadAll(ctx context.Context) []domain.Record
	SaveAll(ctx context.Context, records []domain.Record) error
}

// Input is the form-level record shape: no id, no defaults applied yet.
type Input struct {
	Category         string `json:"category"`
	Source           string `json:"source"`
	ContactName      string `json:"contactName"`
	OrganizationName string `json:"organizationName"`
	EndClient        string `json:"endClient"`
	Location         string `json:"location"`
	Position         string `json:"position"`
	EmploymentType   string `json:"employmentType"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	AppliedDate      string `json:"appliedDate"`
	InvitationLink   string `json:"invitationLink"`
	InterviewTime    string `json:"interviewTime"`
	Notes            string `json:"notes"`
	Status           string `json:"status"`
}

type Tracker struct {
	store Store
	log   *zap.Logger

	mu      sync.Mutex
	records []domain.Record
	loaded  bool
}

func New(store Store, log *zap.Logger) *Tracker {
	return &Tracker{store: store, log: log}
}

// Load pulls the stored snapshot into memory. Runs once per process, before
// anything reads derived state; later calls are no-ops.
func (t *Tracker) Load(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.loaded {
		return
	}
	t.records = t.store.LoadAll(ctx)
	t.loaded = true
}

// Records returns a copy of the full collection, newest first.
func (t *Tracker) Records() []domain.Record {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Record, len(t.records))
	copy(out, t.records)
	return out
}

// View computes the filtered, sorted subset for display.
func (t *Tracker) View(opts query.Options) []domain.Record {
	return query.View(t.Records(), opts)
}

// Create validates and prepends a new record, so the collection stays in
// most-recent-first order.
func (t *Tracker) Create(ctx context.Context, in Input) (domain.Record, error) {
	rec, err := fromInput(in)
	if err != nil {
		return domain.Record{}, err
	}
	rec.ID = domain.NewID()

	t.mu.Lock()
	next := make([]domain.Record, 0, len(t.records)+1)
	next = append(next, rec)
	next = append(next, t.records...)
	t.records = next
	t.mu.Unlock()

	t.persist(ctx)
	t.log.Info("record created", zap.String("id", rec.ID))
	return rec, nil
}

// Update replaces the mutable fields of the record with the given id,
// preserving the id and the collection order. An unknown id is a no-op: the
// second return value reports whether anything changed.
func (t *Tracker) Update(ctx context.Context, id string, in Input) (bool, error) {
	rec, err := fromInput(in)
	if err != nil {
		return false, err
	}

	t.mu.Lock()
	found := false
	next := make([]domain.Record, len(t.records))
	for i, r := range t.records {
		if r.ID == id {
			rec.ID = id
			next[i] = rec
			found = true
		} else {
			next[i] = r
		}
	}
	if found {
		t.records = next
	}
	t.mu.Unlock()

	if !found {
		return false, nil
	}
	t.persist(ctx)
	t.log.Info("record updated", zap.String("id", id))
	return true, nil
}

// Remove deletes the record with the given id; unknown ids are a no-op.
// Confirmation prompts belong to the display layer, not here.
func (t *Tracker) Remove(ctx context.Context, id string) bool {
	t.mu.Lock()
	found := false
	next := make([]domain.Record, 0, len(t.records))
	for _, r := range t.records {
		if r.ID == id {
			found = true
			continue
		}
		next = append(next, r)
	}
	if found {
		t.records = next
	}
	t.mu.Unlock()

	if !found {
		return false
	}
	t.persist(ctx)
	t.log.Info("record deleted", zap.String("id", id))
	return true
}

// Import normalizes every row into a fresh record and prepends the whole
// batch ahead of existing records, keeping the rows' own order. Each row
// always yields a record (missing cells take defaults); file-level parse
// failures are the caller's to surface before ever reaching here.
func (t *Tracker) Import(ctx context.Context, rows []map[string]string) int {
	if len(rows) == 0 {
		return 0
	}

	imported := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec := domain.NormalizeRow(row)
		rec.ID = domain.NewID() // imported rows never reuse a spreadsheet id
		imported = append(imported, rec)
	}

	t.mu.Lock()
	next := make([]domain.Record, 0, len(imported)+len(t.records))
	next = append(next, imported...)
	next = append(next, t.records...)
	t.records = next
	t.mu.Unlock()

	t.persist(ctx)
	t.log.Info("records imported", zap.Int("count", len(imported)))
	return len(imported)
}

// persist writes the whole collection. Failures are logged by the store and
// swallowed: in-memory state stays authoritative, there are no retries.
func (t *Tracker) persist(ctx context.Context) {
	_ = t.store.SaveAll(ctx, t.Records())
}

// fromInput trims free text, validates the two required fields and coerces
// the closed-set fields. The id is left for the caller.
func fromInput(in Input) (domain.Record, error) {
	contact := strings.TrimSpace(in.ContactName)
	org := strings.TrimSpace(in.OrganizationName)
	if contact == "" {
		return domain.Record{}, fmt.Errorf("%w: contact name is required", ErrValidation)
	}
	if org == "" {
		return domain.Record{}, fmt.Errorf("%w: organization name is required", ErrValidation)
	}

	return domain.Record{
		Category:         domain.CoerceCategory(in.Category),
		Source:           domain.CoerceSource(in.Source),
		ContactName:      contact,
		OrganizationName: org,
		EndClient:        strings.TrimSpace(in.EndClient),
		Location:         strings.TrimSpace(in.Location),
		Position:         domain.CoercePosition(in.Position),
		EmploymentType:   domain.CoerceEmploymentType(in.EmploymentType),
		Email:            strings.TrimSpace(in.Email),
		Phone:            strings.TrimSpace(in.Phone),
		AppliedDate:      domain.CoerceDate(in.AppliedDate),
		InvitationLink:   strings.TrimSpace(in.InvitationLink),
		InterviewTime:    strings.TrimSpace(in.InterviewTime),
		Notes:            strings.TrimSpace(in.Notes),
		Status:           domain.CoerceStatus(in.Status),
	}, nil
}
