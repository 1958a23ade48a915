package analysis

import (
	"fmt"
	"strings"

	"linkshield/pkg/domain"
)

// diagnosticObservation is emitted when the URL cannot be inspected at all.
const diagnosticObservation = "Could not perform detailed structural analysis on the URL."

// Analyze inspects the structure of a URL and returns ordered explanatory
// observations. It never scores and never fails: a URL that cannot be parsed
// yields a single diagnostic observation instead of an error.
func (r AnalyzerRules) Analyze(rawURL string) []domain.Observation {
	t := parseTarget(rawURL)
	if !t.OK {
		return []domain.Observation{diagnosticObservation}
	}

	var details []domain.Observation
	lower := strings.ToLower(rawURL)

	// 1. plain HTTP
	if t.Scheme != "https" {
		details = append(details, "Uses insecure HTTP protocol instead of HTTPS.")
	}

	// 2. raw IP hostname
	if isIPv4Literal(t.Hostname) {
		details = append(details, "URL hostname is a raw IP address (Suspicious).")
	}

	// 3. subdomain depth and label length
	if t.Hostname != "" {
		labels := strings.Split(t.Hostname, ".")
		if n := subdomainCount(t.Hostname); n > 2 {
			details = append(details,
				fmt.Sprintf("Contains %d subdomains, which can be a sign of obfuscation.", n))
		}
		for _, label := range labels {
			if len(label) > 30 {
				details = append(details, "Contains unusually long subdomain names, which can be suspicious.")

				break
			}
		}
	}

	// 4. suspicious TLD
	if tld := tldOf(t.Hostname); tld != "" {
		for _, s := range r.SuspiciousTLDs {
			if tld == s {
				details = append(details,
					fmt.Sprintf("Uses an uncommon or suspicious Top-Level Domain (TLD): .%s.", tld))

				break
			}
		}
	}

	// 5. sensitive keywords anywhere in the URL
	if found := matchKeywords(r.Keywords, lower); len(found) > 0 {
		head := found
		if len(head) > 3 {
			head = head[:3]
		}
		details = append(details,
			fmt.Sprintf("URL contains potentially sensitive keywords: %s.", strings.Join(head, ", ")))
		if len(found) > 3 {
			details = append(details,
				fmt.Sprintf("URL contains %d suspicious keywords in total.", len(found)))
		}
	}

	// 6. special character frequency
	var unusual []string
	for _, c := range r.SpecialChars {
		if n := strings.Count(rawURL, string(c)); n > 2 {
			unusual = append(unusual, fmt.Sprintf("%c (%d)", c, n))
		}
	}
	if len(unusual) > 0 {
		details = append(details,
			fmt.Sprintf("Contains unusual frequency of special characters: %s.", strings.Join(unusual, ", ")))
	}

	// 7. URL-encoding abuse
	if n := strings.Count(rawURL, "%"); n > 5 {
		details = append(details,
			fmt.Sprintf("Contains excessive URL encoding (%d instances), which can hide malicious content.", n))
	}

	// 8. path depth
	if depth := pathDepth(t.Path); depth > 4 {
		details = append(details,
			fmt.Sprintf("URL has a deep path structure (%d levels), which can be suspicious.", depth))
	}

	// 9. query parameter shape
	if t.RawQuery != "" {
		params := strings.Split(t.RawQuery, "&")
		if len(params) > 7 {
			details = append(details,
				fmt.Sprintf("URL contains many query parameters (%d), which can be suspicious.", len(params)))
		}
		long := 0
		for _, p := range params {
			if len(p) > 50 {
				long++
			}
		}
		if long > 0 {
			details = append(details,
				fmt.Sprintf("Contains %d unusually long query parameters.", long))
		}
	}

	// 10. brand typosquatting, first matching brand only
	for _, b := range r.TyposquatBrands {
		if hostnameMimics(t.Hostname, b) {
			details = append(details,
				fmt.Sprintf("URL may be attempting to mimic %s (possible typosquatting).", capitalize(b.Brand)))

			break
		}
	}

	// 11. overall length
	if len(rawURL) > 100 {
		details = append(details,
			fmt.Sprintf("URL is unusually long (%d characters), which can be suspicious.", len(rawURL)))
	}

	return details
}

// pathDepth counts non-empty path segments.
func pathDepth(path string) int {
	depth := 0
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			depth++
		}
	}

	return depth
}

// hostnameMimics reports whether the hostname contains one of the brand's
// known misspellings while not containing the correctly spelled brand.
func hostnameMimics(hostname string, b TyposquatBrand) bool {
	if strings.Contains(hostname, b.Brand) {
		return false
	}
	for _, typo := range b.Typos {
		if strings.Contains(hostname, typo) {
			return true
		}
	}

	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
