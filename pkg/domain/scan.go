package domain

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Observation is a single human-readable explanation attached to a scan
// result. Ordering matters: the most actionable observations come first.
type Observation = string

// ScanID correlates one scoring pass across the API response, logs and the
// history store. IDs are generated from random UUIDs; practical collision
// avoidance is all that is required.
type ScanID string

// NewScanID generates a fresh scan identifier of the form "scn_<12 hex>".
func NewScanID() ScanID {
	u := uuid.New()

	return ScanID("scn_" + hex.EncodeToString(u[:6]))
}

// Model version tags identifying which scoring path produced a result.
const (
	// ModelVersionClassifier marks results produced by the classifier plus the
	// sensitivity adjustment engine.
	ModelVersionClassifier = "linkshield-bert-v1.0-enhanced"
	// ModelVersionFallback marks results produced by the rule-only fallback
	// scorer when no classifier is available.
	ModelVersionFallback = "linkshield-fallback-v1.0"
)

// Scan is the assembled result of one URL reputation pass. It is created once
// per request and never mutated afterwards.
type Scan struct {
	// ID is the correlation identifier generated for this scan.
	ID ScanID `json:"scanId"`
	// UserID identifies the requesting user; uuid.Nil for anonymous scans.
	UserID UserID `json:"userId"`

	// URL is the scanned target as submitted.
	URL string `json:"url"`
	// Verdict is the tri-state classification outcome.
	Verdict Verdict `json:"verdict"`
	// RiskLevel is the coarse view of the verdict.
	RiskLevel RiskLevel `json:"riskLevel"`
	// Confidence is the final confidence in [0,1] after any adjustment.
	Confidence float64 `json:"confidence"`
	// Message summarizes the outcome, naming the original classifier verdict
	// when the sensitivity engine overrode it.
	Message string `json:"message"`
	// ModelVersion names the scoring path that produced this result.
	ModelVersion string `json:"modelVersion"`
	// Observations is the ordered, never-empty explanation list.
	Observations []Observation `json:"observations"`

	// CreatedAt is when the scan was performed.
	CreatedAt time.Time `json:"createdAt"`
	// DeletedAt marks a soft-deleted history record; zero means live.
	DeletedAt time.Time `json:"-"`
}
