// Package staging keeps a local JSONL copy of every raw record of a run.
package staging

import (
	"path/filepath"

	"empleos/common/jsonl"
	shared "empleos/common/models"
)

type Stager struct {
	dir string
}

// New stages under <dataDir>/raw.
func New(dataDir string) *Stager {
	return &Stager{dir: filepath.Join(dataDir, "raw")}
}

func (s *Stager) Path(runID string) string {
	return filepath.Join(s.dir, runID+".jsonl")
}

// Stage appends records to the run's file, creating it on first use.
func (s *Stager) Stage(runID string, records []shared.RawRecord) error {
	return jsonl.Append(s.Path(runID), records)
}

func (s *Stager) Load(runID string) ([]shared.RawRecord, error) {
	return jsonl.Read[shared.RawRecord](s.Path(runID))
}
