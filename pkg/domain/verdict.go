package domain

// Verdict is the tri-state classification outcome of a scan.
type Verdict string

const (
	// VerdictBenign indicates no strong phishing signal was found.
	VerdictBenign Verdict = "benign"
	// VerdictSuspicious indicates mixed signals that warrant caution.
	VerdictSuspicious Verdict = "suspicious"
	// VerdictMalicious indicates strong phishing or impersonation signals.
	VerdictMalicious Verdict = "malicious"
)

// Severity orders verdicts from benign (0) to malicious (2). Escalation logic
// relies on this being a total order.
func (v Verdict) Severity() int {
	switch v {
	case VerdictSuspicious:
		return 1
	case VerdictMalicious:
		return 2
	default:
		return 0
	}
}

// RiskLevel is a coarser, human-facing view of the verdict.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// RiskLevelFor maps a verdict to its risk level. The mapping is one-to-one so
// a result can never report a malicious verdict with a low risk level.
func RiskLevelFor(v Verdict) RiskLevel {
	switch v {
	case VerdictSuspicious:
		return RiskLevelMedium
	case VerdictMalicious:
		return RiskLevelHigh
	default:
		return RiskLevelLow
	}
}
