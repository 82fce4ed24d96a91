package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"apptrack-engine/internal/config"
	"apptrack-engine/internal/events"
	"apptrack-engine/internal/query"
	"apptrack-engine/internal/sheet"
	"apptrack-engine/internal/store"
	"apptrack-engine/internal/tracker"
)

// importMaxBytes caps the uploaded spreadsheet size.
const importMaxBytes = 32 << 20

type RecordsHandler struct {
	Tracker *tracker.Tracker
	Hub     *events.Hub
	CfgVal  *atomic.Value // config.Config
}

func (h RecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cfg := h.CfgVal.Load().(config.Config)

	opts := query.Options{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Position: q.Get("position"),
		Status:   q.Get("status"),
		Date:     q.Get("date"),
		Sort:     q.Get("sort"),
		Order:    q.Get("order"),
	}
	if opts.Sort == "" {
		opts.Sort = cfg.View.Sort
	}
	if opts.Order == "" {
		opts.Order = cfg.View.Order
	}

	writeJSON(w, h.Tracker.View(opts))
}

func (h RecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in tracker.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	rec, err := h.Tracker.Create(r.Context(), in)
	if err != nil {
		if errors.Is(err, tracker.ErrValidation) {
			WriteError(w, r, http.StatusUnprocessableEntity, "validation_failed", err.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "create_failed", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeRecordCreated, map[string]any{"id": rec.ID}))
	WriteJSON(w, http.StatusCreated, rec)
}

func (h RecordsHandler) UpdateByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/records/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid record id")
		return
	}

	var in tracker.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	found, err := h.Tracker.Update(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, tracker.ErrValidation) {
			WriteError(w, r, http.StatusUnprocessableEntity, "validation_failed", err.Error())
			return
		}
		WriteError(w, r, http.StatusInternalServerError, "update_failed", err.Error())
		return
	}

	if found {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeRecordUpdated, map[string]any{"id": id}))
	}
	// unknown id is a no-op, not an error
	writeJSON(w, map[string]any{"ok": true, "id": id, "updated": found})
}

func (h RecordsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/records/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid record id")
		return
	}

	// The display layer confirms with the user before calling this.
	found := h.Tracker.Remove(r.Context(), id)
	if found {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeRecordDeleted, map[string]any{"id": id}))
	}
	writeJSON(w, map[string]any{"ok": true, "id": id, "deleted": found})
}

// Import ingests an uploaded spreadsheet. A file that fails to parse rejects
// the whole import; rows with missing cells still become records via defaults.
func (h RecordsHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, importMaxBytes)
	if err := r.ParseMultipartForm(importMaxBytes); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_upload", err.Error())
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_upload", "missing file field")
		return
	}
	defer file.Close()

	rows, err := sheet.Decode(file)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "import_parse_failed", err.Error())
		return
	}

	count := h.Tracker.Import(r.Context(), rows)
	if count > 0 {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeRecordsImported, map[string]any{"count": count}))
	}
	writeJSON(w, map[string]any{"ok": true, "imported": count})
}

// Export streams the entire collection as a dated xlsx attachment.
func (h RecordsHandler) Export(w http.ResponseWriter, r *http.Request) {
	f, err := sheet.Encode(h.Tracker.Records())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}
	defer f.Close()

	name := sheet.ExportFilename(time.Now())
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := f.Write(w); err != nil {
		// headers are gone; nothing useful left to send
		return
	}
}

// Storage reports the serialized size of the collection plus the advisory
// warning flag. No cap is enforced.
func (h RecordsHandler) Storage(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)
	warnAt := cfg.Storage.WarnBytes
	if warnAt <= 0 {
		warnAt = store.WarnBytes
	}

	bytes := store.Footprint(h.Tracker.Records())
	writeJSON(w, map[string]any{
		"bytes":      bytes,
		"kb":         (bytes + 1023) / 1024,
		"warn_bytes": warnAt,
		"warn":       bytes > warnAt,
	})
}
