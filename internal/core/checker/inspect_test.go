package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

const registeredRDAPBody = `{
  "objectClassName": "domain",
  "ldhName": "example.com",
  "status": ["active", "client transfer prohibited"],
  "events": [
    {"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"},
    {"eventAction": "expiration", "eventDate": "2026-08-13T04:00:00Z"}
  ]
}`

func TestInspectRegistered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rdap+json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(registeredRDAPBody))
	}))
	defer server.Close()

	inspector := &Inspector{Server: server.URL}

	details, err := inspector.Inspect(context.Background(), "example.com")
	require.NoError(t, err)
	require.True(t, details.Registered)
	require.Equal(t, "example.com", details.LDHName)
	require.Equal(t, []string{"active", "client transfer prohibited"}, details.Status)
	require.Equal(t, "2026-08-13T04:00:00Z", details.Expiration)
}

func TestInspectNotRegistered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	inspector := &Inspector{Server: server.URL}

	details, err := inspector.Inspect(context.Background(), "definitely-unregistered.com")
	require.NoError(t, err)
	require.False(t, details.Registered)
	require.Equal(t, "definitely-unregistered.com", details.Domain)
}

func TestInspectInvalidServerURL(t *testing.T) {
	inspector := &Inspector{Server: "://not-a-url"}

	_, err := inspector.Inspect(context.Background(), "example.com")
	require.Error(t, err)
}
