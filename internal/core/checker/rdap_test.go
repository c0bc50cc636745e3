package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/domaincomb/domaincomb/internal/core"
)

// testChecker points a checker at a stub server and captures backoff sleeps.
func testChecker(baseURL string, sleeps *[]time.Duration) *RDAPChecker {
	return &RDAPChecker{
		BaseURL: baseURL,
		Backoff: 750 * time.Millisecond,
		Sleep: func(d time.Duration) {
			*sleeps = append(*sleeps, d)
		},
	}
}

func TestLookupRegistered(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		require.Equal(t, "/domain/example.com", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rdap+json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"objectClassName":"domain","ldhName":"EXAMPLE.COM"}`))
	}))
	defer server.Close()

	var sleeps []time.Duration
	outcome := testChecker(server.URL, &sleeps).Lookup(context.Background(), "example.com")

	require.Equal(t, core.StatusRegistered, outcome.Status)
	require.Equal(t, http.StatusOK, outcome.StatusCode)
	require.Equal(t, "EXAMPLE.COM", outcome.Detail)
	require.EqualValues(t, 1, requests.Load())
	require.Empty(t, sleeps)
}

func TestLookupRegisteredUnparseableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>not rdap</html>"))
	}))
	defer server.Close()

	var sleeps []time.Duration
	outcome := testChecker(server.URL, &sleeps).Lookup(context.Background(), "example.com")

	// Status code alone drives the classification; the malformed body only
	// costs the nicer detail string.
	require.Equal(t, core.StatusRegistered, outcome.Status)
	require.Equal(t, "registered", outcome.Detail)
}

func TestLookupAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var sleeps []time.Duration
	outcome := testChecker(server.URL, &sleeps).Lookup(context.Background(), "example.com")

	require.Equal(t, core.StatusAvailable, outcome.Status)
	require.Equal(t, http.StatusNotFound, outcome.StatusCode)
	require.Equal(t, "not found", outcome.Detail)
}

func TestLookupInvalidNotRetried(t *testing.T) {
	for _, code := range []int{http.StatusBadRequest, http.StatusUnprocessableEntity} {
		var requests atomic.Int64
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			w.WriteHeader(code)
		}))

		var sleeps []time.Duration
		outcome := testChecker(server.URL, &sleeps).Lookup(context.Background(), "bad..domain")
		server.Close()

		require.Equal(t, core.StatusInvalid, outcome.Status)
		require.Equal(t, code, outcome.StatusCode)
		require.Equal(t, "invalid domain", outcome.Detail)
		require.EqualValues(t, 1, requests.Load(), "code %d must not be retried", code)
		require.Empty(t, sleeps)
	}
}

func TestLookupRetryableExhaustsRetries(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	var sleeps []time.Duration
	outcome := testChecker(server.URL, &sleeps).Lookup(context.Background(), "example.com")

	require.Equal(t, core.StatusUnknown, outcome.Status)
	require.Equal(t, http.StatusServiceUnavailable, outcome.StatusCode)
	require.Equal(t, "server/rate limit", outcome.Detail)
	require.EqualValues(t, 3, requests.Load())
	require.Equal(t, []time.Duration{750 * time.Millisecond, 1500 * time.Millisecond}, sleeps)
}

func TestLookupRetryableRecovers(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var sleeps []time.Duration
	outcome := testChecker(server.URL, &sleeps).Lookup(context.Background(), "example.com")

	require.Equal(t, core.StatusAvailable, outcome.Status)
	require.EqualValues(t, 2, requests.Load())
	require.Equal(t, []time.Duration{750 * time.Millisecond}, sleeps)
}

func TestLookupUnexpectedStatusNotRetried(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	var sleeps []time.Duration
	outcome := testChecker(server.URL, &sleeps).Lookup(context.Background(), "example.com")

	require.Equal(t, core.StatusUnknown, outcome.Status)
	require.Equal(t, http.StatusTeapot, outcome.StatusCode)
	require.Equal(t, "http 418", outcome.Detail)
	require.EqualValues(t, 1, requests.Load())
}

func TestLookupTransportFailureExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	var sleeps []time.Duration
	outcome := testChecker(server.URL, &sleeps).Lookup(context.Background(), "example.com")

	require.Equal(t, core.StatusUnknown, outcome.Status)
	require.Zero(t, outcome.StatusCode)
	require.Contains(t, outcome.Detail, "network error")
	require.Len(t, sleeps, 2)
}

func TestLookupIdempotent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ldhName":"example.com"}`))
	}))
	defer server.Close()

	var sleeps []time.Duration
	c := testChecker(server.URL, &sleeps)

	first := c.Lookup(context.Background(), "example.com")
	second := c.Lookup(context.Background(), "example.com")
	require.Equal(t, first, second)
}

func TestLookupEscapesDomainInRequestPath(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var sleeps []time.Duration
	testChecker(server.URL, &sleeps).Lookup(context.Background(), "xn--mnchen-3ya.com")

	require.Equal(t, "/domain/xn--mnchen-3ya.com", path)
}
