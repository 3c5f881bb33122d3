package brand

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// LogoResolver probes a small fixed list of candidate domains for a
// reachable favicon. Resolution is strictly best-effort: a failed or slow
// probe yields an empty URL, never an error, so card creation can only be
// delayed by the probe timeouts, not blocked.
type LogoResolver struct {
	client  *http.Client
	log     *logrus.Logger
	timeout time.Duration
}

// NewLogoResolver initializes a logo resolver with the given per-probe
// timeout.
func NewLogoResolver(log *logrus.Logger, perProbe time.Duration) *LogoResolver {
	if perProbe <= 0 {
		perProbe = 1500 * time.Millisecond
	}
	return &LogoResolver{
		client:  &http.Client{Timeout: perProbe},
		log:     log,
		timeout: perProbe,
	}
}

// Resolve returns the first candidate favicon URL that answers 200, or ""
// when none does within its timeout.
func (r *LogoResolver) Resolve(ctx context.Context, storeName string) string {
	for _, domain := range candidateDomains(storeName) {
		url := "https://" + domain + "/favicon.ico"
		if r.probe(ctx, url) {
			return url
		}
	}
	return ""
}

func (r *LogoResolver) probe(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}
	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debugf("Logo probe failed for %s: %v", url, err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// candidateDomains lists the domains to probe for a store name: the
// known-brand domain when the table has one, then guesses derived from
// the name itself.
func candidateDomains(storeName string) []string {
	var domains []string
	if d := Domain(storeName); d != "" {
		domains = append(domains, d)
	}
	slug := slugify(storeName)
	if slug != "" {
		domains = append(domains, slug+".com", slug+".de")
	}
	if len(domains) > 3 {
		domains = domains[:3]
	}
	return domains
}

// slugify keeps only letters and digits of the lowercased name, dropping
// everything a hostname cannot carry.
func slugify(storeName string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(storeName)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
