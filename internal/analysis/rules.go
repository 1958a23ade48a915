package analysis

// FallbackRules configures the rule-only scorer used when the classifier is
// unavailable.
type FallbackRules struct {
	// SuspiciousTLDs are matched as hostname suffixes, each entry without the
	// leading dot.
	SuspiciousTLDs []string
	// Keywords are matched case-insensitively against the whole URL; every
	// match adds KeywordWeight to the risk score.
	Keywords []string
	// Brands trigger the impersonation rule when present in the hostname while
	// the hostname does not end in "<brand>.com".
	Brands []string

	// KeywordWeight is the per-keyword risk increment.
	KeywordWeight int
	// SuspiciousAt and MaliciousAt are the risk-score cutoffs: below
	// SuspiciousAt the verdict is benign, below MaliciousAt suspicious,
	// otherwise malicious.
	SuspiciousAt int
	MaliciousAt  int
}

// AnalyzerRules configures the structural analyzer. The analyzer only
// explains, it never scores, so there are no weights here.
type AnalyzerRules struct {
	SuspiciousTLDs []string
	// Keywords is a broader sensitive-term list than the fallback scorer's.
	Keywords []string
	// SpecialChars are counted across the URL; any character occurring more
	// than twice is reported.
	SpecialChars []rune
	// TyposquatBrands lists brands in a fixed order together with their known
	// misspellings. Order matters for deterministic first-match reporting.
	TyposquatBrands []TyposquatBrand
}

// TyposquatBrand pairs a brand name with the misspellings commonly used to
// impersonate it.
type TyposquatBrand struct {
	Brand string
	Typos []string
}

// SensitivityRules configures the adjustment engine that second-guesses the
// classifier. Its tables are stricter supersets of the fallback scorer's.
type SensitivityRules struct {
	HighRiskKeywords []string
	SuspiciousTLDs   []string
	// TyposquatTokens are raw substrings; any occurrence in the hostname
	// counts, no brand pairing needed.
	TyposquatTokens []string

	// KeywordWeight is the per-keyword suspicion increment.
	KeywordWeight int
	// OverrideMalicious, OverrideSuspicious and ReduceConfidence are the
	// suspicion-score cutoffs for the three escalation branches, evaluated in
	// that priority order.
	OverrideMalicious  int
	OverrideSuspicious int
	ReduceConfidence   int
}

// Rules bundles every rule table and threshold of the scoring engine.
type Rules struct {
	Fallback    FallbackRules
	Analyzer    AnalyzerRules
	Sensitivity SensitivityRules
}

// DefaultRules returns the production rule set. The fallback and sensitivity
// tables overlap but are intentionally not unified.
func DefaultRules() Rules {
	return Rules{
		Fallback: FallbackRules{
			SuspiciousTLDs: []string{"xyz", "tk", "top", "club", "gq", "ml", "ga", "cf", "info"},
			Keywords: []string{
				"secure", "login", "verify", "account", "banking", "update",
				"confirm", "suspended", "urgent", "security", "alert",
				"billing", "payment", "password", "signin",
			},
			Brands: []string{
				"paypal", "amazon", "netflix", "microsoft",
				"google", "apple", "facebook", "instagram",
			},
			KeywordWeight: 8,
			SuspiciousAt:  40,
			MaliciousAt:   60,
		},
		Analyzer: AnalyzerRules{
			SuspiciousTLDs: []string{"xyz", "top", "club", "info", "loan", "gq", "tk", "ml", "ga", "cf", "pw"},
			Keywords: []string{
				"login", "secure", "account", "update", "signin", "verify",
				"password", "bank", "paypal", "netflix", "amazon", "apple",
				"microsoft", "support", "billing", "confirm", "security",
				"alert", "suspended",
			},
			SpecialChars: []rune{'@', '?', '=', '%', '&', '+', '$', '#', '~', '*'},
			TyposquatBrands: []TyposquatBrand{
				{Brand: "google", Typos: []string{"gogle", "googel", "g00gle", "gooogle"}},
				{Brand: "microsoft", Typos: []string{"microsft", "micr0soft", "mikrosoft", "micrsoft"}},
				{Brand: "facebook", Typos: []string{"faceb00k", "facbook", "facebok", "faceboook"}},
				{Brand: "apple", Typos: []string{"appl", "aple", "appple"}},
				{Brand: "amazon", Typos: []string{"amaz0n", "amazn", "amazonn"}},
				{Brand: "paypal", Typos: []string{"payp", "paypall", "paypai"}},
				{Brand: "netflix", Typos: []string{"netflik", "netflx", "netflix-"}},
			},
		},
		Sensitivity: SensitivityRules{
			HighRiskKeywords: []string{
				"verify", "account", "suspended", "update", "confirm", "secure",
				"login", "signin", "password", "security", "alert", "urgent",
				"billing", "payment", "bank", "paypal", "netflix", "amazon",
				"apple", "microsoft", "google", "verification", "locked",
			},
			SuspiciousTLDs: []string{
				"xyz", "tk", "top", "club", "gq", "ml", "ga", "cf",
				"info", "loan", "pw", "buzz", "click",
			},
			TyposquatTokens: []string{
				"g00gle", "gogle", "amaz0n", "micr0soft", "faceb00k",
				"payp", "netfl", "appl-", "twiter", "lnkedin", "instgrm",
			},
			KeywordWeight:      15,
			OverrideMalicious:  50,
			OverrideSuspicious: 30,
			ReduceConfidence:   20,
		},
	}
}
