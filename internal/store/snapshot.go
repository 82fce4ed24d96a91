package store

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"apptrack-engine/internal/domain"
)

// SnapshotKey is the fixed key the whole collection lives under. It predates
// this engine (browser localStorage used the same key), so old exports of the
// blob import cleanly.
const SnapshotKey = "job_tracker_entries"

// WarnBytes is the advisory serialized-size threshold (4.5 MiB). Nothing is
// enforced or evicted; the display layer only surfaces a warning.
const WarnBytes = 4.5 * 1024 * 1024

// Snapshots syncs the in-memory collection with the KV provider: one read at
// startup, one full rewrite after every mutation.
type Snapshots struct {
	kv  KV
	log *zap.Logger
}

func NewSnapshots(kv KV, log *zap.Logger) *Snapshots {
	return &Snapshots{kv: kv, log: log}
}

// LoadAll reads the stored blob and normalizes every entry. Any failure —
// missing key, corrupt JSON, wrong shape — yields an empty collection and a
// log line; startup must never fail on bad stored state.
func (s *Snapshots) LoadAll(ctx context.Context) []domain.Record {
	blob, err := s.kv.Get(ctx, SnapshotKey)
	if errors.Is(err, ErrNotFound) {
		s.log.Info("no snapshot found, starting empty")
		return nil
	}
	if err != nil {
		s.log.Error("snapshot read failed", zap.Error(err))
		return nil
	}

	var raw []map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		s.log.Error("snapshot parse failed, starting empty",
			zap.Int("bytes", len(blob)), zap.Error(err))
		return nil
	}

	out := make([]domain.Record, 0, len(raw))
	for _, entry := range raw {
		out = append(out, domain.Normalize(entry))
	}
	s.log.Info("snapshot loaded", zap.Int("records", len(out)))
	return out
}

// SaveAll rewrites the entire collection. A write failure is logged and
// returned but never rolls back in-memory state; memory stays authoritative.
func (s *Snapshots) SaveAll(ctx context.Context, records []domain.Record) error {
	blob, err := json.Marshal(records)
	if err != nil {
		s.log.Error("snapshot encode failed", zap.Error(err))
		return err
	}
	if err := s.kv.Put(ctx, SnapshotKey, blob); err != nil {
		s.log.Error("snapshot write failed",
			zap.Int("records", len(records)), zap.Error(err))
		return err
	}
	return nil
}

// Footprint is the serialized size of the collection in bytes. Advisory only.
func Footprint(records []domain.Record) int {
	blob, err := json.Marshal(records)
	if err != nil {
		return 0
	}
	return len(blob)
}
