// Package version checks whether a newer release of testpilot exists.
// The check is a courtesy lookup and never fails a run.
package version

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

// DefaultEndpoint serves the latest released version as plain text.
const DefaultEndpoint = "https://testpilot.dev/latest-version"

// Checker queries the release endpoint for the latest version.
type Checker struct {
	Endpoint string
	Client   *http.Client
}

// NewChecker creates a checker against the default endpoint.
func NewChecker() *Checker {
	return &Checker{
		Endpoint: DefaultEndpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Check returns the latest released version and whether current is
// outdated. Versions are compared as semver; both sides tolerate a
// missing "v" prefix.
func (c *Checker) Check(ctx context.Context, current string) (latest string, outdated bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("invalid version endpoint: %w", err)
	}

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("version check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("version check failed: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 128))
	if err != nil {
		return "", false, fmt.Errorf("version check failed: %w", err)
	}

	latest = strings.TrimSpace(string(body))
	if !semver.IsValid(canonical(latest)) {
		return "", false, fmt.Errorf("version check returned invalid version %q", latest)
	}

	outdated = semver.Compare(canonical(current), canonical(latest)) < 0
	return latest, outdated, nil
}

func canonical(v string) string {
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}
