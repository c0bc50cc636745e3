// Package checker implements the registration-data lookup clients.
package checker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/domaincomb/domaincomb/internal/core"
)

const (
	DefaultBaseURL    = "https://rdap.verisign.com/com/v1"
	DefaultUserAgent  = "domaincomb/1.0"
	DefaultTimeout    = 8 * time.Second
	DefaultMaxRetries = 3
	DefaultBackoff    = 750 * time.Millisecond
)

// Responses larger than this cannot be a plain RDAP domain object.
const maxBodyBytes = 1 << 20

// RDAPChecker performs single-domain registration lookups against one RDAP
// endpoint. Every failure mode resolves to a terminal LookupOutcome; Lookup
// never returns an error and keeps no state between calls.
type RDAPChecker struct {
	BaseURL    string
	UserAgent  string
	Client     *http.Client
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration

	// Sleep is swapped out in tests to observe the backoff schedule.
	Sleep func(time.Duration)
}

// domainResponse is the slice of the RDAP domain object the classifier
// cares about.
type domainResponse struct {
	LDHName string `json:"ldhName"`
}

// Lookup classifies one domain. Retryable responses (429, 5xx, transport
// errors) are retried up to MaxRetries times with exponential backoff
// (Backoff, 2*Backoff, ...), slept before each retry and never before the
// first attempt.
func (c *RDAPChecker) Lookup(ctx context.Context, domain string) core.LookupOutcome {
	if ctx == nil {
		ctx = context.Background()
	}

	maxRetries := c.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	backoff := c.Backoff
	if backoff <= 0 {
		backoff = DefaultBackoff
	}

	requestURL := c.requestURL(domain)

	var last core.LookupOutcome
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			c.sleep(backoff << (attempt - 1))
		}

		outcome, retryable := c.attempt(ctx, requestURL)
		if !retryable {
			return outcome
		}
		last = outcome
	}

	if last.Status == "" {
		return core.LookupOutcome{Status: core.StatusUnknown, Detail: "exhausted retries"}
	}
	return last
}

// attempt issues one request and classifies the response. The second return
// value reports whether the outcome may be retried.
func (c *RDAPChecker) attempt(ctx context.Context, requestURL string) (core.LookupOutcome, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return core.LookupOutcome{Status: core.StatusUnknown, Detail: fmt.Sprintf("error: %v", err)}, false
	}
	req.Header.Set("Accept", "application/rdap+json")
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.client().Do(req)
	if err != nil {
		return core.LookupOutcome{Status: core.StatusUnknown, Detail: fmt.Sprintf("network error: %v", err)}, true
	}
	defer resp.Body.Close() // nolint:errcheck // best-effort cleanup on HTTP response body

	switch resp.StatusCode {
	case http.StatusOK:
		return core.LookupOutcome{
			Status:     core.StatusRegistered,
			StatusCode: resp.StatusCode,
			Detail:     registeredDetail(resp.Body),
		}, false
	case http.StatusNotFound:
		return core.LookupOutcome{Status: core.StatusAvailable, StatusCode: resp.StatusCode, Detail: "not found"}, false
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return core.LookupOutcome{Status: core.StatusInvalid, StatusCode: resp.StatusCode, Detail: "invalid domain"}, false
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return core.LookupOutcome{Status: core.StatusUnknown, StatusCode: resp.StatusCode, Detail: "server/rate limit"}, true
	default:
		return core.LookupOutcome{
			Status:     core.StatusUnknown,
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("http %d", resp.StatusCode),
		}, false
	}
}

// registeredDetail extracts the canonical ldhName from a 200 body. The
// status code alone drives the registered classification; a malformed body
// only costs the nicer detail string.
func registeredDetail(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return "registered"
	}

	var parsed domainResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "registered"
	}
	if name := strings.TrimSpace(parsed.LDHName); name != "" {
		return name
	}
	return "registered"
}

func (c *RDAPChecker) requestURL(domain string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/domain/" + url.PathEscape(domain)
}

func (c *RDAPChecker) client() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func (c *RDAPChecker) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

func (c *RDAPChecker) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}
