package intel

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"linkshield/pkg/domain"
	"linkshield/pkg/logger"
)

// wellKnownDomains are popular sites whose presence is itself a signal of
// legitimacy.
var wellKnownDomains = map[string]struct{}{
	"google.com": {}, "facebook.com": {}, "amazon.com": {}, "microsoft.com": {},
	"apple.com": {}, "youtube.com": {}, "twitter.com": {}, "instagram.com": {},
	"linkedin.com": {}, "netflix.com": {}, "github.com": {}, "stackoverflow.com": {},
	"wikipedia.org": {}, "yahoo.com": {}, "reddit.com": {},
}

// deceptivePatterns are hostname fragments commonly used to dress a phishing
// domain up as a login or account page.
var deceptivePatterns = []string{
	"-security", "-login", "-account", "-update", "-verify",
	"secure-", "login-", "account-", "update-", "verify-",
}

// privateRanges maps IP prefixes to a human-readable range name. A public
// website resolving into one of these is almost always misconfigured or
// hostile.
var privateRanges = []struct {
	prefix string
	name   string
}{
	{"192.168.", "Private network"},
	{"10.", "Private network"},
	{"172.16.", "Private network"},
	{"127.", "Localhost"},
	{"169.254.", "Link-local"},
}

// Options configures a Collector.
type Options struct {
	// PerCallTimeout bounds each individual network lookup.
	PerCallTimeout time.Duration
	// TotalBudget bounds the whole Collect call. Lookups still pending when
	// the budget runs out are abandoned.
	TotalBudget time.Duration
	// VirusTotalAPIKey enables the VirusTotal reputation lookup when set.
	VirusTotalAPIKey string
	// HTTPClient is used for reputation lookups. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client
}

type collector struct {
	options Options
}

var _ Collector = (*collector)(nil)

// NewCollector returns a Collector that runs WHOIS, DNS, TLS and reputation
// lookups against the URL's hostname.
func NewCollector(options Options) Collector {
	if options.PerCallTimeout <= 0 {
		options.PerCallTimeout = 3 * time.Second
	}
	if options.TotalBudget <= 0 {
		options.TotalBudget = 10 * time.Second
	}
	if options.HTTPClient == nil {
		options.HTTPClient = http.DefaultClient
	}

	return &collector{options: options}
}

func (c *collector) Collect(ctx context.Context, rawURL string) []domain.Observation {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return nil
	}
	hostname := strings.ToLower(parsed.Hostname())

	ctx, cancel := context.WithTimeout(ctx, c.options.TotalBudget)
	defer cancel()

	var observations []domain.Observation
	observations = append(observations, c.whoisObservations(ctx, hostname)...)
	observations = append(observations, c.dnsObservations(ctx, hostname)...)
	if parsed.Scheme == "https" {
		observations = append(observations, c.tlsObservations(ctx, hostname)...)
	}
	observations = append(observations, c.reputationObservations(ctx, hostname)...)
	observations = append(observations, staticObservations(hostname)...)

	return observations
}

func (c *collector) whoisObservations(ctx context.Context, hostname string) []domain.Observation {
	if ctx.Err() != nil {
		return nil
	}

	client := whois.NewClient()
	client.SetTimeout(c.options.PerCallTimeout)

	raw, err := client.Whois(hostname)
	if err != nil {
		logger.Get(ctx).Debug("whois lookup failed")

		return nil
	}
	record, err := whoisparser.Parse(raw)
	if err != nil {
		return nil
	}

	var observations []domain.Observation
	now := time.Now()

	if record.Domain != nil && record.Domain.CreatedDateInTime != nil {
		age := int(now.Sub(*record.Domain.CreatedDateInTime).Hours() / 24)
		switch {
		case age < 30:
			observations = append(observations,
				fmt.Sprintf("Domain is very new (created %d days ago) - potentially suspicious.", age))
		case age < 90:
			observations = append(observations,
				fmt.Sprintf("Domain is relatively new (created %d days ago).", age))
		default:
			observations = append(observations,
				fmt.Sprintf("Domain is well established (created %d days ago).", age))
		}

		if record.Registrar != nil && record.Registrar.Name != "" {
			observations = append(observations,
				fmt.Sprintf("Domain registered to: %s", record.Registrar.Name))
		}

		if record.Domain.ExpirationDateInTime != nil {
			daysToExpiry := int(record.Domain.ExpirationDateInTime.Sub(now).Hours() / 24)
			if daysToExpiry < 30 {
				observations = append(observations,
					fmt.Sprintf("Domain is expiring soon (in %d days) - potentially suspicious.", daysToExpiry))
			} else {
				observations = append(observations,
					fmt.Sprintf("Domain expires in %d days.", daysToExpiry))
			}
		}
	}

	return observations
}

func (c *collector) dnsObservations(ctx context.Context, hostname string) []domain.Observation {
	if ctx.Err() != nil {
		return nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, c.options.PerCallTimeout)
	defer cancel()

	addrs, err := net.DefaultResolver.LookupHost(lookupCtx, hostname)
	if err != nil || len(addrs) == 0 {
		return []domain.Observation{"Could not resolve domain to an IP address - potentially suspicious."}
	}

	ip := addrs[0]
	observations := []domain.Observation{fmt.Sprintf("Domain resolves to IP: %s", ip)}
	for _, r := range privateRanges {
		if strings.HasPrefix(ip, r.prefix) {
			observations = append(observations,
				fmt.Sprintf("IP address is in %s range - highly suspicious for a public website.", r.name))

			break
		}
	}

	return observations
}

func (c *collector) tlsObservations(ctx context.Context, hostname string) []domain.Observation {
	if ctx.Err() != nil {
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.options.PerCallTimeout)
	defer cancel()

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: hostname}}
	conn, err := dialer.DialContext(dialCtx, "tcp", net.JoinHostPort(hostname, "443"))
	if err != nil {
		return []domain.Observation{"SSL certificate validation failed - potentially suspicious."}
	}
	defer func() {
		_ = conn.Close()
	}()

	state := conn.(*tls.Conn).ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return []domain.Observation{"SSL certificate validation failed - potentially suspicious."}
	}
	cert := state.PeerCertificates[0]

	observations := []domain.Observation{
		fmt.Sprintf("SSL Certificate issued to: %s", cert.Subject.CommonName),
		fmt.Sprintf("SSL Certificate issued by: %s", cert.Issuer.CommonName),
	}

	if err := cert.VerifyHostname(hostname); err != nil {
		observations = append(observations,
			fmt.Sprintf("SSL Certificate domain mismatch: %s vs %s - potentially suspicious.",
				cert.Subject.CommonName, hostname))
	}

	now := time.Now()
	switch {
	case now.Before(cert.NotBefore):
		observations = append(observations, "SSL Certificate is not yet valid - potentially suspicious.")
	case now.After(cert.NotAfter):
		observations = append(observations, "SSL Certificate has expired - potentially suspicious.")
	default:
		daysRemaining := int(cert.NotAfter.Sub(now).Hours() / 24)
		if daysRemaining < 30 {
			observations = append(observations,
				fmt.Sprintf("SSL Certificate expires soon (in %d days).", daysRemaining))
		} else {
			observations = append(observations,
				fmt.Sprintf("SSL Certificate is valid for %d more days.", daysRemaining))
		}
	}

	return observations
}

func (c *collector) reputationObservations(ctx context.Context, hostname string) []domain.Observation {
	if c.options.VirusTotalAPIKey == "" || ctx.Err() != nil {
		return nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.options.PerCallTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet,
		"https://www.virustotal.com/api/v3/domains/"+hostname, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("x-apikey", c.options.VirusTotalAPIKey)

	res, err := c.options.HTTPClient.Do(req)
	if err != nil {
		logger.Get(ctx).Debug("reputation lookup failed")

		return nil
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode != http.StatusOK {
		return nil
	}

	var body struct {
		Data struct {
			Attributes struct {
				Reputation int `json:"reputation"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil
	}

	reputation := body.Data.Attributes.Reputation
	if reputation < 0 {
		return []domain.Observation{
			fmt.Sprintf("Domain has negative reputation score (%d) from VirusTotal.", reputation),
		}
	}

	return []domain.Observation{
		fmt.Sprintf("Domain has positive reputation score (%d) from VirusTotal.", reputation),
	}
}

// staticObservations needs no network access and always runs, even when the
// collection budget is exhausted.
func staticObservations(hostname string) []domain.Observation {
	bare := strings.TrimPrefix(hostname, "www.")

	var observations []domain.Observation
	if _, ok := wellKnownDomains[bare]; ok {
		observations = append(observations,
			fmt.Sprintf("Domain is a well-known legitimate website (%s).", bare))
	}
	for _, pattern := range deceptivePatterns {
		if strings.Contains(bare, pattern) {
			observations = append(observations,
				fmt.Sprintf("Domain contains suspicious pattern '%s' - potentially deceptive.", pattern))

			break
		}
	}

	return observations
}
