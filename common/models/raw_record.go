package models

import (
	"encoding/json"
	"strings"
	"time"
)

// RawRecord is one listing as scraped from a platform page, before normalization.
type RawRecord struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	SalaryText     string `json:"salary_text"`
	PostedText     string `json:"posted_text"`
	URL            string `json:"url"`
	Platform       string `json:"platform"`
	PlatformJobID  string `json:"platform_job_id,omitempty"`
	Description    string `json:"description,omitempty"`
	BenefitsText   string `json:"benefits_text,omitempty"`
	ContractText   string `json:"contract_text,omitempty"`
	ModalityText   string `json:"modality_text,omitempty"`
	SectorText     string `json:"sector_text,omitempty"`
	EducationText  string `json:"education_text,omitempty"`
	ExperienceText string `json:"experience_text,omitempty"`
}

// Clean collapses runs of whitespace in every text field.
func (r RawRecord) Clean() RawRecord {
	return RawRecord{
		Title:          collapse(r.Title),
		Company:        collapse(r.Company),
		Location:       collapse(r.Location),
		SalaryText:     collapse(r.SalaryText),
		PostedText:     collapse(r.PostedText),
		URL:            strings.TrimSpace(r.URL),
		Platform:       collapse(r.Platform),
		PlatformJobID:  strings.TrimSpace(r.PlatformJobID),
		Description:    collapse(r.Description),
		BenefitsText:   collapse(r.BenefitsText),
		ContractText:   collapse(r.ContractText),
		ModalityText:   collapse(r.ModalityText),
		SectorText:     collapse(r.SectorText),
		EducationText:  collapse(r.EducationText),
		ExperienceText: collapse(r.ExperienceText),
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// RawEnvelope is the NATS payload of an ingestion run. Records and the closing
// marker travel on the same subject so consumers see them in publish order.
type RawEnvelope struct {
	RunID  string     `json:"run_id"`
	Record RawRecord  `json:"record"`
	Marker *RunMarker `json:"marker,omitempty"`
}

// IsMarker reports whether the envelope closes its run instead of carrying a record.
func (e RawEnvelope) IsMarker() bool {
	return e.Marker != nil
}

func (e RawEnvelope) MarshalBinary() ([]byte, error) {
	return json.Marshal(e)
}

func (e *RawEnvelope) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, e)
}

// RunMarker closes an ingestion run; the processing side runs the pipeline when it sees one.
type RunMarker struct {
	RunID      string    `json:"run_id"`
	Platforms  []string  `json:"platforms"`
	Count      int       `json:"count"`
	FinishedAt time.Time `json:"finished_at"`
}
