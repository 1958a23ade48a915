package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"linkshield/pkg/domain"
)

type PgScan struct {
	ID     string    `db:"id"`
	UserID uuid.UUID `db:"user_id"`

	URL          string          `db:"url"`
	Verdict      string          `db:"verdict"`
	RiskLevel    string          `db:"risk_level"`
	Confidence   float64         `db:"confidence"`
	Message      string          `db:"message"`
	ModelVersion string          `db:"model_version"`
	Observations json.RawMessage `db:"observations"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	DeletedAt sql.NullTime `db:"deleted_at" goqu:"skipinsert"`
}

func (p *PgScan) ToDomain() (*domain.Scan, error) {
	var observations []domain.Observation
	if len(p.Observations) > 0 {
		if err := json.Unmarshal(p.Observations, &observations); err != nil {
			return nil, fmt.Errorf("could not unmarshal observations: %w", err)
		}
	}

	return &domain.Scan{
		ID:           domain.ScanID(p.ID),
		UserID:       domain.UserID(p.UserID),
		URL:          p.URL,
		Verdict:      domain.Verdict(p.Verdict),
		RiskLevel:    domain.RiskLevel(p.RiskLevel),
		Confidence:   p.Confidence,
		Message:      p.Message,
		ModelVersion: p.ModelVersion,
		Observations: observations,
		CreatedAt:    p.CreatedAt,
		DeletedAt:    p.DeletedAt.Time,
	}, nil
}

func (p *PgScan) FromDomain(scan domain.Scan) error {
	observations, err := json.Marshal(scan.Observations)
	if err != nil {
		return fmt.Errorf("could not marshal observations: %w", err)
	}

	*p = PgScan{
		ID:           string(scan.ID),
		UserID:       uuid.UUID(scan.UserID),
		URL:          scan.URL,
		Verdict:      string(scan.Verdict),
		RiskLevel:    string(scan.RiskLevel),
		Confidence:   scan.Confidence,
		Message:      scan.Message,
		ModelVersion: scan.ModelVersion,
		Observations: observations,
		CreatedAt:    scan.CreatedAt,
		DeletedAt: sql.NullTime{
			Time:  scan.DeletedAt,
			Valid: !scan.DeletedAt.IsZero(),
		},
	}

	return nil
}

func domainScansToPg(scans []domain.Scan) ([]PgScan, error) {
	out := make([]PgScan, len(scans))
	for i := range out {
		if err := out[i].FromDomain(scans[i]); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func pgScansToDomain(scans []PgScan) ([]domain.Scan, error) {
	out := make([]domain.Scan, 0, len(scans))
	for _, scan := range scans {
		d, err := scan.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
