package scanner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"linkshield/pkg/classifier"
	"linkshield/pkg/domain"
)

// genericObservations replaces an empty observation list so a result is never
// uninformative.
var genericObservations = []domain.Observation{
	"URL structure appears normal",
	"No obvious suspicious patterns detected",
	"Domain information could not be retrieved",
}

// assembleClassified builds the final scan for the classifier path. The
// sensitivity adjustment always runs on top of the raw prediction, and its
// observations come first so the most actionable explanation leads.
func (s *scanner) assembleClassified(userID domain.UserID,
	URL string,
	prediction classifier.Prediction,
	structural, enrichment []domain.Observation) *domain.Scan {
	adjusted := s.rules.Sensitivity.Adjust(URL, prediction.Verdict(), prediction.Confidence())

	observations := make([]domain.Observation, 0, len(adjusted.Observations)+len(structural)+len(enrichment))
	observations = append(observations, adjusted.Observations...)
	observations = append(observations, structural...)
	observations = append(observations, enrichment...)

	message := fmt.Sprintf("URL classified as %s.", strings.ToUpper(string(adjusted.Verdict)))
	if adjusted.Verdict != prediction.Verdict() {
		message = fmt.Sprintf("URL classified as %s (ML predicted: %s, adjusted by security rules).",
			strings.ToUpper(string(adjusted.Verdict)), prediction.Verdict())
	}

	return &domain.Scan{
		ID:           domain.NewScanID(),
		UserID:       userID,
		URL:          URL,
		Verdict:      adjusted.Verdict,
		RiskLevel:    domain.RiskLevelFor(adjusted.Verdict),
		Confidence:   math.Round(adjusted.Confidence*10000) / 10000,
		Message:      message,
		ModelVersion: domain.ModelVersionClassifier,
		Observations: ensureObservations(observations),
		CreatedAt:    time.Now().UTC(),
	}
}

// assembleFallback builds the final scan for the heuristic path. Structural
// and enrichment observations are folded into the scorer so its closing
// fallback note stays last.
func (s *scanner) assembleFallback(userID domain.UserID,
	URL string,
	structural, enrichment []domain.Observation) *domain.Scan {
	extra := make([]domain.Observation, 0, len(structural)+len(enrichment))
	extra = append(extra, structural...)
	extra = append(extra, enrichment...)

	result := s.rules.Fallback.Score(URL, extra)

	return &domain.Scan{
		ID:           domain.NewScanID(),
		UserID:       userID,
		URL:          URL,
		Verdict:      result.Verdict,
		RiskLevel:    result.RiskLevel,
		Confidence:   result.Confidence,
		Message: fmt.Sprintf("URL classified as %s using fallback detection.",
			strings.ToUpper(string(result.Verdict))),
		ModelVersion: domain.ModelVersionFallback,
		Observations: ensureObservations(result.Observations),
		CreatedAt:    time.Now().UTC(),
	}
}

func ensureObservations(observations []domain.Observation) []domain.Observation {
	if len(observations) == 0 {
		return append([]domain.Observation{}, genericObservations...)
	}

	return observations
}
