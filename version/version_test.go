package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveVersion(t *testing.T, v string) *Checker {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(v + "\n"))
	}))
	t.Cleanup(srv.Close)
	c := NewChecker()
	c.Endpoint = srv.URL
	return c
}

func TestCheck_Outdated(t *testing.T) {
	c := serveVersion(t, "v1.2.0")

	latest, outdated, err := c.Check(context.Background(), "v1.1.0")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", latest)
	assert.True(t, outdated)
}

func TestCheck_UpToDate(t *testing.T) {
	c := serveVersion(t, "v1.2.0")

	_, outdated, err := c.Check(context.Background(), "v1.2.0")
	require.NoError(t, err)
	assert.False(t, outdated)
}

func TestCheck_ToleratesMissingPrefix(t *testing.T) {
	c := serveVersion(t, "1.3.0")

	latest, outdated, err := c.Check(context.Background(), "1.2.9")
	require.NoError(t, err)
	assert.Equal(t, "1.3.0", latest)
	assert.True(t, outdated)
}

func TestCheck_InvalidVersionBody(t *testing.T) {
	c := serveVersion(t, "not-a-version")

	_, _, err := c.Check(context.Background(), "v1.0.0")
	require.Error(t, err)
}

func TestCheck_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewChecker()
	c.Endpoint = srv.URL
	_, _, err := c.Check(context.Background(), "v1.0.0")
	require.Error(t, err)
}
