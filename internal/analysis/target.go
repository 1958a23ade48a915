package analysis

import (
	"net/url"
	"regexp"
	"strings"
)

// target is a URL decomposed once per scoring pass. The zero value (with Raw
// set) is the degenerate form used when parsing fails: empty hostname and
// path are valid inputs for every rule.
type target struct {
	Raw      string
	Scheme   string
	Hostname string
	Path     string
	RawQuery string
	// OK reports whether Raw parsed as a URL.
	OK bool
}

// parseTarget decomposes a raw URL. It is total: on a malformed input it
// returns a degenerate target instead of an error so the scoring pipeline can
// proceed with whatever partial data it has.
func parseTarget(raw string) target {
	u, err := url.Parse(raw)
	if err != nil {
		return target{Raw: raw}
	}

	return target{
		Raw:      raw,
		Scheme:   strings.ToLower(u.Scheme),
		Hostname: strings.ToLower(u.Hostname()),
		Path:     u.Path,
		RawQuery: u.RawQuery,
		OK:       true,
	}
}

// ipv4Pattern matches dotted-quad hostnames. Deliberately loose (no octet
// range check): anything shaped like an IP literal is treated as one.
var ipv4Pattern = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

func isIPv4Literal(hostname string) bool {
	return ipv4Pattern.MatchString(hostname)
}

// subdomainCount returns the number of labels before the registrable domain,
// floored at zero. "a.b.example.com" has two subdomains.
func subdomainCount(hostname string) int {
	if hostname == "" {
		return 0
	}
	n := len(strings.Split(hostname, ".")) - 2
	if n < 0 {
		return 0
	}

	return n
}

// tldOf returns the final dot-delimited label of the hostname, or "" when the
// hostname has no dot.
func tldOf(hostname string) string {
	i := strings.LastIndex(hostname, ".")
	if i < 0 || i == len(hostname)-1 {
		return ""
	}

	return hostname[i+1:]
}

// hasSuffixTLD reports whether the hostname ends in one of the given TLDs.
func hasSuffixTLD(hostname string, tlds []string) bool {
	for _, tld := range tlds {
		if strings.HasSuffix(hostname, "."+tld) {
			return true
		}
	}

	return false
}

// matchKeywords returns the subset of keywords contained in s, preserving
// table order so observation texts are deterministic.
func matchKeywords(keywords []string, s string) []string {
	var found []string
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			found = append(found, kw)
		}
	}

	return found
}
