package analysis

import (
	"fmt"
	"strings"

	"linkshield/pkg/domain"
)

// AdjustResult is the outcome of the sensitivity adjustment engine.
type AdjustResult struct {
	// Verdict is the final verdict after any override; never less severe than
	// the classifier's.
	Verdict domain.Verdict
	// Confidence is the final confidence, clamped to [0,1].
	Confidence float64
	// SuspicionScore is the independent rule score the decision was based on.
	// Unlike the fallback risk score it has no upper clamp.
	SuspicionScore int
	// Observations lists the triggered rules, override decision first.
	Observations []domain.Observation
}

// Adjust recomputes an independent suspicion score from a strict rule set and
// decides whether to override the classifier's verdict. The engine only ever
// escalates: it is a safety net against false negatives and never downgrades
// a non-benign classifier call.
func (r SensitivityRules) Adjust(rawURL string, verdict domain.Verdict, confidence float64) AdjustResult {
	t := parseTarget(rawURL)
	lower := strings.ToLower(rawURL)

	suspicion := 0
	var details []domain.Observation

	if found := matchKeywords(r.HighRiskKeywords, lower); len(found) > 0 {
		suspicion += len(found) * r.KeywordWeight
		head := found
		if len(head) > 3 {
			head = head[:3]
		}
		details = append(details,
			fmt.Sprintf("ALERT: Contains %d high-risk phishing keyword(s): %s", len(found), strings.Join(head, ", ")))
	}

	if hasSuffixTLD(t.Hostname, r.SuspiciousTLDs) {
		suspicion += 20
		details = append(details,
			fmt.Sprintf("ALERT: Uses high-risk TLD: .%s", tldOf(t.Hostname)))
	}

	if isIPv4Literal(t.Hostname) {
		suspicion += 30
		details = append(details,
			"CRITICAL: URL uses IP address instead of domain name - strong phishing indicator")
	}

	if n := subdomainCount(t.Hostname); n > 3 {
		suspicion += 15
		details = append(details,
			fmt.Sprintf("ALERT: Excessive subdomains (%d) - possible obfuscation", n))
	}

	if t.Scheme == "http" {
		suspicion += 15
		details = append(details, "WARNING: Uses insecure HTTP protocol")
	}

	for _, token := range r.TyposquatTokens {
		if strings.Contains(t.Hostname, token) {
			suspicion += 25
			details = append(details,
				"CRITICAL: Possible typosquatting detected - impersonation attempt")

			break
		}
	}

	if hasDeceptiveHostChars(t.Hostname) {
		suspicion += 20
		details = append(details,
			"ALERT: Suspicious characters in hostname - possible deception")
	}

	if len(rawURL) > 150 {
		suspicion += 10
		details = append(details,
			fmt.Sprintf("WARNING: Unusually long URL (%d characters)", len(rawURL)))
	}

	if n := strings.Count(t.Hostname, "-"); n > 2 {
		suspicion += 10
		details = append(details,
			fmt.Sprintf("WARNING: Multiple hyphens in domain (%d)", n))
	}

	if n := strings.Count(rawURL, "%"); n > 3 {
		suspicion += 15
		details = append(details,
			fmt.Sprintf("ALERT: Excessive URL encoding (%d instances)", n))
	}

	// Escalation policy, first match wins. Escalation toward malicious is
	// unconditional on the suspicion score; the two weaker branches only fire
	// against a benign classifier call.
	adjVerdict := verdict
	adjConfidence := confidence
	switch {
	case suspicion >= r.OverrideMalicious:
		adjVerdict = domain.VerdictMalicious
		adjConfidence = min(0.95, 0.70+float64(suspicion)/200)
		details = prepend(details,
			fmt.Sprintf("OVERRIDE: High suspicion score (%d/100) - Classified as MALICIOUS", suspicion))
	case suspicion >= r.OverrideSuspicious && verdict == domain.VerdictBenign:
		adjVerdict = domain.VerdictSuspicious
		adjConfidence = min(0.85, 0.60+float64(suspicion)/250)
		details = prepend(details,
			fmt.Sprintf("OVERRIDE: Moderate suspicion score (%d/100) - Classified as SUSPICIOUS", suspicion))
	case suspicion >= r.ReduceConfidence && verdict == domain.VerdictBenign:
		adjConfidence = max(0.40, confidence-float64(suspicion)/100)
		details = prepend(details,
			fmt.Sprintf("ADJUSTMENT: Reduced confidence due to suspicious indicators (score: %d/100)", suspicion))
	}

	return AdjustResult{
		Verdict:        adjVerdict,
		Confidence:     clamp01(adjConfidence),
		SuspicionScore: suspicion,
		Observations:   details,
	}
}

// hasDeceptiveHostChars flags an '@' anywhere in the hostname or a '%' within
// its first 50 characters.
func hasDeceptiveHostChars(hostname string) bool {
	if strings.Contains(hostname, "@") {
		return true
	}
	head := hostname
	if len(head) > 50 {
		head = head[:50]
	}

	return strings.Contains(head, "%")
}

func prepend(details []domain.Observation, first domain.Observation) []domain.Observation {
	return append([]domain.Observation{first}, details...)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
