package dedup

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// exportSnapshot is the on-disk layout of an exported fingerprint set.
type exportSnapshot struct {
	Fingerprints   map[string]*ContentFingerprint `json:"fingerprints"`
	ContentMapping map[string]string              `json:"content_mapping"`
	ExportedAt     time.Time                      `json:"exported_at"`
	TotalCount     int                            `json:"total_count"`
}

// ExportFingerprints serializes all stored fingerprints and the content-ID
// index to a JSON file. The export is best-effort: failures are logged and
// reported as false, never propagated, so the caller decides whether a
// missing export is fatal.
func (s *Service) ExportFingerprints(path string) bool {
	fingerprints, contentMapping := s.store.All()

	snapshot := exportSnapshot{
		Fingerprints:   fingerprints,
		ContentMapping: contentMapping,
		ExportedAt:     time.Now().UTC(),
		TotalCount:     len(fingerprints),
	}

	f, err := os.Create(path)
	if err != nil {
		log.Printf("Warning: failed to create export file %s: %v", path, err)
		return false
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		log.Printf("Warning: failed to write export file %s: %v", path, err)
		return false
	}

	log.Printf("Exported %d fingerprint(s) to %s", snapshot.TotalCount, path)
	return true
}
