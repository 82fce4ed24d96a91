package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"

	"apptrack-engine/internal/config"
	"apptrack-engine/internal/domain"
	"apptrack-engine/internal/events"
	"apptrack-engine/internal/httpapi"
	"apptrack-engine/internal/sheet"
	"apptrack-engine/internal/tracker"
)

type memStore struct {
	initial []domain.Record
}

func (m *memStore) LoadAll(ctx context.Context) []domain.Record { return m.initial }
func (m *memStore) SaveAll(ctx context.Context, records []domain.Record) error {
	return nil
}

func newTestMux(t *testing.T, initial []domain.Record) (*http.ServeMux, *tracker.Tracker) {
	t.Helper()

	trk := tracker.New(&memStore{initial: initial}, zap.NewNop())
	trk.Load(context.Background())

	var cfg config.Config
	cfg.App.Port = 39471
	cfg.View.Sort = "appliedDate"
	cfg.View.Order = "desc"
	var cfgVal atomic.Value
	cfgVal.Store(cfg)

	mux := httpapi.NewMux(httpapi.Deps{
		Tracker: trk,
		Hub:     events.NewHub(),
		Log:     zap.NewNop(),
		CfgVal:  &cfgVal,
	})
	return mux, trk
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = httptest.NewRequest(method, path, bytes.NewReader(b))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestRecords_CreateAndList(t *testing.T) {
	mux, _ := newTestMux(t, nil)

	w := doJSON(t, mux, http.MethodPost, "/records", tracker.Input{
		ContactName:      "Jane Doe",
		OrganizationName: "Acme",
		Status:           "Applied",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	var created domain.Record
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Error("created record has no id")
	}

	w = doJSON(t, mux, http.MethodGet, "/records", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var listed []domain.Record
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Errorf("list = %+v", listed)
	}
}

func TestRecords_CreateValidationFailure(t *testing.T) {
	mux, trk := newTestMux(t, nil)

	w := doJSON(t, mux, http.MethodPost, "/records", tracker.Input{
		ContactName:      "   ",
		OrganizationName: "Acme",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var apiErr httpapi.APIError
	if err := json.Unmarshal(w.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if apiErr.Error.Code != "validation_failed" {
		t.Errorf("error code = %q", apiErr.Error.Code)
	}
	if len(trk.Records()) != 0 {
		t.Error("rejected create changed the collection")
	}
}

func TestRecords_ListAppliesViewParams(t *testing.T) {
	mux, _ := newTestMux(t, []domain.Record{
		{ID: "1", ContactName: "A", OrganizationName: "Acme", Status: domain.StatusApplied, AppliedDate: "2024-01-10"},
		{ID: "2", ContactName: "B", OrganizationName: "Beta", Status: domain.StatusRejected, AppliedDate: "2024-02-01"},
	})

	w := doJSON(t, mux, http.MethodGet, "/records?status=Applied", nil)
	var got []domain.Record
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("filtered list = %+v", got)
	}

	w = doJSON(t, mux, http.MethodGet, "/records?sort=appliedDate&order=asc", nil)
	got = nil
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("sorted list = %+v", got)
	}
}

func TestRecords_UpdateUnknownIDIsNoOp(t *testing.T) {
	mux, trk := newTestMux(t, []domain.Record{
		{ID: "a", ContactName: "A", OrganizationName: "ACo"},
	})

	w := doJSON(t, mux, http.MethodPut, "/records/missing", tracker.Input{
		ContactName:      "New",
		OrganizationName: "NewCo",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"updated":false`) {
		t.Errorf("body = %s", w.Body.String())
	}
	if trk.Records()[0].ContactName != "A" {
		t.Error("no-op update changed the record")
	}
}

func TestRecords_Delete(t *testing.T) {
	mux, trk := newTestMux(t, []domain.Record{{ID: "a"}, {ID: "b"}})

	w := doJSON(t, mux, http.MethodDelete, "/records/a", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(trk.Records()) != 1 {
		t.Errorf("collection length = %d, want 1", len(trk.Records()))
	}

	w = doJSON(t, mux, http.MethodDelete, "/records/a", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("repeat delete status = %d, want 200 no-op", w.Code)
	}
}

func TestRecords_ImportSpreadsheet(t *testing.T) {
	mux, trk := newTestMux(t, []domain.Record{
		{ID: "old", ContactName: "Old", OrganizationName: "OldCo"},
	})

	f, err := sheet.Encode([]domain.Record{
		{ID: "x", ContactName: "Jane", OrganizationName: "Acme",
			Category: domain.CategoryCompany, Source: domain.SourceLinkedin,
			Position: domain.DefaultPosition, EmploymentType: domain.EmploymentFullTimeHybrid,
			AppliedDate: "2024-01-10", Status: domain.StatusApplied},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	defer f.Close()
	wb, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "import.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(wb.Bytes()); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/records/import", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"imported":1`) {
		t.Errorf("body = %s", w.Body.String())
	}

	got := trk.Records()
	if len(got) != 2 {
		t.Fatalf("collection length = %d, want 2", len(got))
	}
	if got[0].ContactName != "Jane" || got[1].ID != "old" {
		t.Errorf("imported batch not prepended: %+v", got)
	}
}

func TestRecords_ImportBadFileRejectsWholeImport(t *testing.T) {
	mux, trk := newTestMux(t, []domain.Record{{ID: "old"}})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, _ := mw.CreateFormFile("file", "junk.xlsx")
	_, _ = fw.Write([]byte("definitely not a workbook"))
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/records/import", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(trk.Records()) != 1 {
		t.Error("failed import changed the collection")
	}
}

func TestRecords_Export(t *testing.T) {
	mux, _ := newTestMux(t, []domain.Record{
		{ID: "1", ContactName: "Jane", OrganizationName: "Acme",
			Category: domain.CategoryCompany, Source: domain.SourceLinkedin,
			Position: domain.DefaultPosition, EmploymentType: domain.EmploymentFullTimeHybrid,
			AppliedDate: "2024-01-10", Status: domain.StatusApplied},
	})

	w := doJSON(t, mux, http.MethodGet, "/records/export", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	cd := w.Header().Get("Content-Disposition")
	if !strings.Contains(cd, "job_tracker_export_") || !strings.Contains(cd, ".xlsx") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	rows, err := sheet.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("exported file does not decode: %v", err)
	}
	if len(rows) != 1 || rows[0]["contactName"] != "Jane" {
		t.Errorf("exported rows = %+v", rows)
	}
}

func TestRecords_Storage(t *testing.T) {
	mux, _ := newTestMux(t, []domain.Record{{ID: "1"}})

	w := doJSON(t, mux, http.MethodGet, "/storage", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got struct {
		Bytes int  `json:"bytes"`
		Warn  bool `json:"warn"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Bytes <= 0 {
		t.Errorf("bytes = %d, want > 0", got.Bytes)
	}
	if got.Warn {
		t.Error("one record should not trip the capacity warning")
	}
}

func TestRecords_MethodNotAllowed(t *testing.T) {
	mux, _ := newTestMux(t, nil)

	w := doJSON(t, mux, http.MethodPatch, "/records", nil)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
