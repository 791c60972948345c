package index

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/frederic-klein/pip-safe/internal/dist"
)

// DefaultURL is the base of the PyPI JSON API.
const DefaultURL = "https://pypi.org/pypi"

// Client queries the PyPI JSON API.
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// ProjectInfo is the "info" object of a JSON API response.
type ProjectInfo struct {
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	Summary     string      `json:"summary"`
	Author      string      `json:"author"`
	Maintainer  string      `json:"maintainer"`
	HomePage    string      `json:"home_page"`
	ProjectURLs dist.URLMap `json:"project_urls"`
}

type projectResponse struct {
	Info     ProjectInfo   `json:"info"`
	Releases dist.Releases `json:"releases"`
}

// NewClient creates a client for the index at baseURL. A zero timeout means
// requests never time out.
func NewClient(baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Releases fetches every release of a project with its files.
func (c *Client) Releases(ctx context.Context, name string) (dist.Releases, error) {
	apiURL := fmt.Sprintf("%s/%s/json", c.baseURL, url.PathEscape(name))

	var resp projectResponse
	if err := c.get(ctx, apiURL, &resp); err != nil {
		return nil, err
	}
	if resp.Releases == nil {
		return nil, fmt.Errorf("project %s: response has no releases", name)
	}
	return resp.Releases, nil
}

// Release fetches the metadata record of one version of a project.
func (c *Client) Release(ctx context.Context, name, version string) (*ProjectInfo, error) {
	apiURL := fmt.Sprintf("%s/%s/%s/json", c.baseURL, url.PathEscape(name), url.PathEscape(version))

	var resp projectResponse
	if err := c.get(ctx, apiURL, &resp); err != nil {
		return nil, err
	}
	return &resp.Info, nil
}

// BaseURL returns the configured index URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, apiURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("querying index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: not found", apiURL)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("index error: HTTP %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
