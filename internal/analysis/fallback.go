package analysis

import (
	"fmt"
	"strings"

	"linkshield/pkg/domain"
)

// FallbackNote closes every fallback result so users know the verdict did not
// come from the model.
const FallbackNote = "Note: This prediction was made using fallback heuristics as the ML model is currently unavailable."

// FallbackResult is the outcome of the rule-only scoring path.
type FallbackResult struct {
	Verdict    domain.Verdict
	RiskLevel  domain.RiskLevel
	Confidence float64
	// RiskScore is the clamped 0-100 score the verdict was derived from.
	RiskScore    int
	Observations []domain.Observation
}

// Score runs the rule-only heuristic scorer. It starts from a neutral prior
// of 50, applies each additive rule independently, appends the provided
// enrichment observations, clamps to [0,100] and maps the score to a verdict.
// It never fails: malformed URLs simply trigger fewer rules.
func (r FallbackRules) Score(rawURL string, enrichment []domain.Observation) FallbackResult {
	t := parseTarget(rawURL)
	lower := strings.ToLower(rawURL)

	riskScore := 50
	var details []domain.Observation

	if t.Scheme != "https" {
		riskScore += 10
		details = append(details, "Uses insecure HTTP protocol instead of HTTPS.")
	}

	if hasSuffixTLD(t.Hostname, r.SuspiciousTLDs) {
		riskScore += 15
		details = append(details,
			fmt.Sprintf("Uses potentially suspicious top-level domain: %s.", tldOf(t.Hostname)))
	}

	if isIPv4Literal(t.Hostname) {
		riskScore += 20
		details = append(details, "URL uses an IP address instead of a domain name (highly suspicious).")
	}

	if n := subdomainCount(t.Hostname); n > 3 {
		riskScore += 10
		details = append(details,
			fmt.Sprintf("Contains %d subdomains, which can be a sign of obfuscation.", n))
	}

	if len(t.Hostname) > 30 {
		riskScore += 5
		details = append(details,
			fmt.Sprintf("Domain name is unusually long (%d characters).", len(t.Hostname)))
	}

	if found := matchKeywords(r.Keywords, lower); len(found) > 0 {
		riskScore += len(found) * r.KeywordWeight
		details = append(details,
			fmt.Sprintf("URL contains potentially sensitive keywords: %s.", strings.Join(found, ", ")))
	}

	if brands := r.impersonatedBrands(t.Hostname); len(brands) > 0 {
		riskScore += 20
		details = append(details,
			fmt.Sprintf("CRITICAL: URL may be impersonating %s.", strings.Join(brands, ", ")))
	}

	if hasUnusualHostChars(t.Hostname) {
		riskScore += 15
		details = append(details, "URL contains unusual special characters, which can be used for deception.")
	}

	if len(t.Path) > 100 {
		riskScore += 5
		details = append(details,
			fmt.Sprintf("URL path is excessively long (%d characters).", len(t.Path)))
	}

	if t.RawQuery != "" {
		if n := len(strings.Split(t.RawQuery, "&")); n > 10 {
			riskScore += 5
			details = append(details,
				fmt.Sprintf("URL contains many query parameters (%d).", n))
		}
	}

	details = append(details, enrichment...)

	if riskScore > 100 {
		riskScore = 100
	}
	if riskScore < 0 {
		riskScore = 0
	}

	verdict := r.verdictFor(riskScore)
	details = append(details, FallbackNote)

	return FallbackResult{
		Verdict:      verdict,
		RiskLevel:    domain.RiskLevelFor(verdict),
		Confidence:   float64(riskScore) / 100,
		RiskScore:    riskScore,
		Observations: details,
	}
}

// verdictFor maps a clamped risk score to a verdict using the configured
// cutoffs.
func (r FallbackRules) verdictFor(riskScore int) domain.Verdict {
	switch {
	case riskScore < r.SuspiciousAt:
		return domain.VerdictBenign
	case riskScore < r.MaliciousAt:
		return domain.VerdictSuspicious
	default:
		return domain.VerdictMalicious
	}
}

// impersonatedBrands returns the brands present in the hostname, unless the
// hostname legitimately ends in one of the matched brands' ".com" domains, in
// which case no impersonation is reported at all.
func (r FallbackRules) impersonatedBrands(hostname string) []string {
	var found []string
	for _, brand := range r.Brands {
		if strings.Contains(hostname, brand) {
			found = append(found, brand)
		}
	}
	for _, brand := range found {
		if strings.HasSuffix(hostname, brand+".com") {
			return nil
		}
	}

	return found
}

// hasUnusualHostChars reports whether the hostname contains anything outside
// letters, digits, underscore, dot and hyphen.
func hasUnusualHostChars(hostname string) bool {
	for _, c := range hostname {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_' || c == '.' || c == '-':
		default:
			return true
		}
	}

	return false
}
