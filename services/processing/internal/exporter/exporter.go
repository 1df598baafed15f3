// Package exporter writes canonical records to disk in the formats the
// dashboard and analysts consume.
package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"

	"empleos/common/errors"
	"empleos/common/jsonl"
	"empleos/services/processing/internal/models"
	"empleos/services/processing/internal/summary"
)

// Paths lists the files written by ExportAll.
type Paths struct {
	JSONL   string `json:"jsonl"`
	JSON    string `json:"json"`
	CSV     string `json:"csv"`
	Summary string `json:"summary"`
}

func WriteJSONL(path string, records []models.CanonicalJobRecord) error {
	return jsonl.Write(path, records)
}

func ReadJSONL(path string) ([]models.CanonicalJobRecord, error) {
	return jsonl.Read[models.CanonicalJobRecord](path)
}

// WriteJSON writes records as one indented JSON array.
func WriteJSON(path string, records []models.CanonicalJobRecord) error {
	if records == nil {
		records = []models.CanonicalJobRecord{}
	}
	return writeIndented(path, records)
}

func ReadJSON(path string) ([]models.CanonicalJobRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Internal("failed to read "+path, err)
	}
	var records []models.CanonicalJobRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.InvalidInput("invalid json in "+path, err)
	}
	return records, nil
}

func WriteCSV(path string, records []models.CanonicalJobRecord) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeCSV(f, records); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Internal("failed to close "+path, err)
	}
	return nil
}

func ReadCSV(path string) ([]models.CanonicalJobRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Internal("failed to open "+path, err)
	}
	defer f.Close()
	return DecodeCSV(f)
}

func WriteSummary(path string, s summary.Summary) error {
	return writeIndented(path, s)
}

// ExportAll writes records under root as processed/<name>.jsonl and
// exports/<name>.{json,csv} plus exports/<name>_summary.json.
func ExportAll(root, name string, records []models.CanonicalJobRecord, s summary.Summary) (Paths, error) {
	p := Paths{
		JSONL:   filepath.Join(root, "processed", name+".jsonl"),
		JSON:    filepath.Join(root, "exports", name+".json"),
		CSV:     filepath.Join(root, "exports", name+".csv"),
		Summary: filepath.Join(root, "exports", name+"_summary.json"),
	}

	if err := WriteJSONL(p.JSONL, records); err != nil {
		return p, err
	}
	if err := WriteJSON(p.JSON, records); err != nil {
		return p, err
	}
	if err := WriteCSV(p.CSV, records); err != nil {
		return p, err
	}
	if err := WriteSummary(p.Summary, s); err != nil {
		return p, err
	}
	return p, nil
}

func writeIndented(path string, v interface{}) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Internal("failed to encode "+path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Internal("failed to close "+path, err)
	}
	return nil
}

func create(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Internal("failed to create directory for "+path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Internal("failed to create "+path, err)
	}
	return f, nil
}

// WriteResults writes validation results, typically the rejected ones, for operator review.
func WriteResults(path string, results []models.ValidationResult) error {
	if results == nil {
		results = []models.ValidationResult{}
	}
	return writeIndented(path, results)
}
