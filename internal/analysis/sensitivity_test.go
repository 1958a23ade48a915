package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"linkshield/internal/analysis"
	"linkshield/pkg/domain"
)

func TestAdjust_OverridesToMalicious(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Sensitivity

	// 45 keywords + 20 tld + 15 http + 25 typosquat token
	got := rules.Adjust("http://paypal-verify-account.xyz", domain.VerdictBenign, 0.9)
	require.Equal(t, 105, got.SuspicionScore)
	require.Equal(t, domain.VerdictMalicious, got.Verdict)
	require.InDelta(t, 0.95, got.Confidence, 1e-9)
	require.Equal(t,
		domain.Observation("OVERRIDE: High suspicion score (105/100) - Classified as MALICIOUS"),
		got.Observations[0])
	require.Contains(t, got.Observations,
		"ALERT: Contains 3 high-risk phishing keyword(s): verify, account, paypal")
	require.Contains(t, got.Observations, "ALERT: Uses high-risk TLD: .xyz")
	require.Contains(t, got.Observations,
		"CRITICAL: Possible typosquatting detected - impersonation attempt")
}

func TestAdjust_OverridesToSuspicious(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Sensitivity

	// 15 keyword + 15 http, sits exactly on the moderate cutoff
	got := rules.Adjust("http://example.com/verify", domain.VerdictBenign, 0.9)
	require.Equal(t, 30, got.SuspicionScore)
	require.Equal(t, domain.VerdictSuspicious, got.Verdict)
	require.InDelta(t, 0.72, got.Confidence, 1e-9)
	require.Equal(t,
		domain.Observation("OVERRIDE: Moderate suspicion score (30/100) - Classified as SUSPICIOUS"),
		got.Observations[0])
}

func TestAdjust_ReducesConfidence(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Sensitivity

	// 15 keyword + 10 hyphens
	got := rules.Adjust("https://a-b-c-d.com/verify", domain.VerdictBenign, 0.9)
	require.Equal(t, 25, got.SuspicionScore)
	require.Equal(t, domain.VerdictBenign, got.Verdict)
	require.InDelta(t, 0.65, got.Confidence, 1e-9)
	require.Equal(t,
		domain.Observation("ADJUSTMENT: Reduced confidence due to suspicious indicators (score: 25/100)"),
		got.Observations[0])
}

func TestAdjust_ConfidenceFloor(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Sensitivity

	got := rules.Adjust("https://a-b-c-d.com/verify", domain.VerdictBenign, 0.42)
	require.Equal(t, domain.VerdictBenign, got.Verdict)
	require.InDelta(t, 0.40, got.Confidence, 1e-9)
}

func TestAdjust_BelowThresholdKeepsClassifier(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Sensitivity

	got := rules.Adjust("https://example.com/verify", domain.VerdictBenign, 0.9)
	require.Equal(t, 15, got.SuspicionScore)
	require.Equal(t, domain.VerdictBenign, got.Verdict)
	require.InDelta(t, 0.9, got.Confidence, 1e-9)
	require.Equal(t, []domain.Observation{
		"ALERT: Contains 1 high-risk phishing keyword(s): verify",
	}, got.Observations)
}

func TestAdjust_CleanURLUntouched(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Sensitivity

	got := rules.Adjust("https://example.com", domain.VerdictMalicious, 0.99)
	require.Zero(t, got.SuspicionScore)
	require.Equal(t, domain.VerdictMalicious, got.Verdict)
	require.InDelta(t, 0.99, got.Confidence, 1e-9)
	require.Empty(t, got.Observations)

	got = rules.Adjust("https://github.com", domain.VerdictBenign, 0.95)
	require.Zero(t, got.SuspicionScore)
	require.Equal(t, domain.VerdictBenign, got.Verdict)
	require.InDelta(t, 0.95, got.Confidence, 1e-9)
	require.Empty(t, got.Observations)
}

func TestAdjust_NeverDowngradesNonBenign(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Sensitivity

	// moderate suspicion against an already-suspicious verdict changes nothing
	got := rules.Adjust("http://example.com/verify", domain.VerdictSuspicious, 0.7)
	require.Equal(t, 30, got.SuspicionScore)
	require.Equal(t, domain.VerdictSuspicious, got.Verdict)
	require.InDelta(t, 0.7, got.Confidence, 1e-9)
	for _, obs := range got.Observations {
		require.NotContains(t, obs, "OVERRIDE")
	}
}

func TestAdjust_EscalatesSuspiciousToMalicious(t *testing.T) {
	t.Parallel()
	rules := analysis.DefaultRules().Sensitivity

	// 15 keyword + 30 IP + 15 http
	got := rules.Adjust("http://192.168.1.1/login", domain.VerdictSuspicious, 0.6)
	require.Equal(t, 60, got.SuspicionScore)
	require.Equal(t, domain.VerdictMalicious, got.Verdict)
	require.InDelta(t, 0.95, got.Confidence, 1e-9)
	require.Contains(t, got.Observations,
		"CRITICAL: URL uses IP address instead of domain name - strong phishing indicator")
}
