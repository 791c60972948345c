package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const requestsJSON = `{
  "info": {"name": "requests", "version": "2.31.0", "summary": "Python HTTP for Humans."},
  "releases": {
    "2.0.0": [{"filename": "requests-2.0.0.tar.gz", "packagetype": "sdist", "yanked": false}],
    "2.31.0": [{"filename": "requests-2.31.0-py3-none-any.whl", "packagetype": "bdist_wheel", "yanked": false}],
    "3.0.0a1": [{"filename": "requests-3.0.0a1.tar.gz", "packagetype": "sdist", "yanked": true, "yanked_reason": "broken"}]
  }
}`

const releaseJSON = `{
  "info": {
    "name": "requests",
    "version": "2.31.0",
    "summary": "Python HTTP for Humans.",
    "author": "Kenneth Reitz",
    "maintainer": null,
    "home_page": "https://requests.readthedocs.io",
    "project_urls": {"Documentation": "https://requests.readthedocs.io", "Source": "https://github.com/psf/requests"}
  }
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "pip-safe/test" {
			t.Errorf("User-Agent = %q, want %q", got, "pip-safe/test")
		}
		switch r.URL.Path {
		case "/pypi/requests/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(requestsJSON))
		case "/pypi/requests/2.31.0/json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(releaseJSON))
		case "/pypi/garbled/json":
			w.Write([]byte("<html>not json</html>"))
		case "/pypi/broken/json":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Releases(t *testing.T) {
	// Arrange
	server := newTestServer(t)
	client := NewClient(server.URL+"/pypi/", "pip-safe/test", 5*time.Second)

	// Act
	releases, err := client.Releases(context.Background(), "requests")

	// Assert
	if err != nil {
		t.Fatalf("Releases() error = %v", err)
	}
	if len(releases) != 3 {
		t.Fatalf("got %d releases, want 3", len(releases))
	}
	files := releases["3.0.0a1"]
	if len(files) != 1 || !files[0].Yanked || files[0].YankedReason != "broken" {
		t.Errorf("3.0.0a1 files = %+v, want one yanked file", files)
	}
	if files := releases["2.31.0"]; len(files) != 1 || files[0].PackageType != "bdist_wheel" {
		t.Errorf("2.31.0 files = %+v", files)
	}
}

func TestClient_Releases_Errors(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL+"/pypi", "pip-safe/test", 5*time.Second)

	for _, name := range []string{"missing", "garbled", "broken"} {
		t.Run(name, func(t *testing.T) {
			if _, err := client.Releases(context.Background(), name); err == nil {
				t.Errorf("Releases(%q) should fail", name)
			}
		})
	}
}

func TestClient_Releases_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "", time.Second)
	if _, err := client.Releases(context.Background(), "requests"); err == nil {
		t.Error("Releases() should fail when the index is down")
	}
}

func TestClient_Release(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL+"/pypi", "pip-safe/test", 5*time.Second)

	info, err := client.Release(context.Background(), "requests", "2.31.0")
	if err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if info.Author != "Kenneth Reitz" {
		t.Errorf("Author = %q", info.Author)
	}
	if info.Maintainer != "" {
		t.Errorf("Maintainer = %q, want empty", info.Maintainer)
	}
	if got := info.ProjectURLs["Documentation"]; got != "https://requests.readthedocs.io" {
		t.Errorf("Documentation = %q", got)
	}
}

func TestClient_BaseURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://pypi.org/pypi", "https://pypi.org/pypi"},
		{"https://pypi.org/pypi/", "https://pypi.org/pypi"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NewClient(tt.input, "", 0).BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
