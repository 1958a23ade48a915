package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"linkshield/internal/analysis"
	"linkshield/pkg/domain"
)

func TestFallbackScore_NeutralURL(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Fallback

	got := rules.Score("https://google.com", nil)
	require.Equal(t, 50, got.RiskScore)
	require.Equal(t, domain.VerdictSuspicious, got.Verdict)
	require.Equal(t, domain.RiskLevelMedium, got.RiskLevel)
	require.InDelta(t, 0.5, got.Confidence, 1e-9)
	// a hostname ending in the brand's own .com domain is not impersonation
	for _, obs := range got.Observations {
		require.NotContains(t, obs, "CRITICAL")
	}
	require.Equal(t, analysis.FallbackNote, got.Observations[len(got.Observations)-1])
}

func TestFallbackScore_IPWithKeyword(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Fallback

	// 50 base + 10 http + 20 IP + 8 keyword
	got := rules.Score("http://192.168.1.1/login", nil)
	require.Equal(t, 88, got.RiskScore)
	require.Equal(t, domain.VerdictMalicious, got.Verdict)
	require.Equal(t, domain.RiskLevelHigh, got.RiskLevel)
	require.InDelta(t, 0.88, got.Confidence, 1e-9)
	require.Contains(t, got.Observations, "Uses insecure HTTP protocol instead of HTTPS.")
	require.Contains(t, got.Observations, "URL uses an IP address instead of a domain name (highly suspicious).")
	require.Contains(t, got.Observations, "URL contains potentially sensitive keywords: login.")
}

func TestFallbackScore_BrandImpersonation(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Fallback

	// 50 + 10 http + 15 tld + 8 keyword + 20 brand, clamped to 100
	got := rules.Score("http://paypal-secure.xyz", nil)
	require.Equal(t, 100, got.RiskScore)
	require.Equal(t, domain.VerdictMalicious, got.Verdict)
	require.InDelta(t, 1.0, got.Confidence, 1e-9)
	require.Contains(t, got.Observations, "CRITICAL: URL may be impersonating paypal.")
	require.Contains(t, got.Observations, "Uses potentially suspicious top-level domain: xyz.")
}

func TestFallbackScore_MalformedURL(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Fallback

	// only the scheme rule can fire when the URL does not parse
	got := rules.Score("http://[::1", nil)
	require.Equal(t, 60, got.RiskScore)
	require.Equal(t, domain.VerdictMalicious, got.Verdict)
	require.Equal(t, []domain.Observation{
		"Uses insecure HTTP protocol instead of HTTPS.",
		analysis.FallbackNote,
	}, got.Observations)
}

func TestFallbackScore_EnrichmentBeforeNote(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Fallback

	enrichment := []domain.Observation{
		"Domain resolves to IP: 93.184.216.34",
		"Domain age: 10950 days (registered 1995-08-14)",
	}
	got := rules.Score("https://example.com", enrichment)
	n := len(got.Observations)
	require.Equal(t, enrichment[0], got.Observations[n-3])
	require.Equal(t, enrichment[1], got.Observations[n-2])
	require.Equal(t, analysis.FallbackNote, got.Observations[n-1])
}

func TestFallbackScore_Thresholds(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Fallback

	// every additive rule pushes up from the neutral prior, so a plain https
	// URL sits exactly on the suspicious boundary
	require.Equal(t, domain.VerdictSuspicious, rules.Score("https://example.com", nil).Verdict)
	// dropping TLS lands exactly on the malicious cutoff at 60
	require.Equal(t, domain.VerdictMalicious, rules.Score("http://example.com", nil).Verdict)
}

func TestFallbackScore_Deterministic(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Fallback

	URL := "http://secure-login.paypal-alerts.xyz/verify?a=1"
	require.Equal(t, rules.Score(URL, nil), rules.Score(URL, nil))
}
