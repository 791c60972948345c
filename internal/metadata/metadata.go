// Package metadata fetches the descriptive fields shown to the operator
// before an install: summary, author, documentation and homepage.
package metadata

import (
	"context"
	"errors"
	"sort"

	"golang.org/x/text/cases"

	"github.com/frederic-klein/pip-safe/internal/dist"
)

// Metadata sources selectable by configuration.
const (
	SourceIndex  = "index"
	SourceReport = "report"
)

// Fetcher retrieves metadata for a project at a resolved version. Any
// failure, including a response without metadata, is returned as an error.
type Fetcher interface {
	Fetch(ctx context.Context, name, version string) (*dist.Metadata, error)
}

var errNoVersion = errors.New("no version given")

// record is the subset of core metadata both sources carry.
type record struct {
	Version     string      `json:"version"`
	Summary     string      `json:"summary"`
	Author      string      `json:"author"`
	Maintainer  string      `json:"maintainer"`
	HomePage    string      `json:"home_page"`
	ProjectURLs dist.URLMap `json:"project_url"`
}

func (r record) empty() bool {
	return r.Version == "" && r.Summary == "" && r.Author == "" &&
		r.Maintainer == "" && r.HomePage == "" && len(r.ProjectURLs) == 0
}

func extract(rec record, version string) *dist.Metadata {
	md := &dist.Metadata{
		Version:       version,
		Summary:       dist.Some(rec.Summary),
		Author:        dist.Some(rec.Author),
		Documentation: lookupURL(rec.ProjectURLs, "Documentation"),
		Homepage:      lookupURL(rec.ProjectURLs, "Homepage"),
	}
	if rec.Version != "" {
		md.Version = rec.Version
	}
	if !md.Author.Valid {
		md.Author = dist.Some(rec.Maintainer)
	}
	if !md.Homepage.Valid {
		md.Homepage = dist.Some(rec.HomePage)
	}
	return md
}

// lookupURL tries the exact label first, then any label that matches it
// ignoring case.
func lookupURL(urls dist.URLMap, label string) dist.Field {
	if f := dist.Some(urls[label]); f.Valid {
		return f
	}

	fold := cases.Fold()
	want := fold.String(label)

	labels := make([]string, 0, len(urls))
	for l := range urls {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	for _, l := range labels {
		if fold.String(l) != want {
			continue
		}
		if f := dist.Some(urls[l]); f.Valid {
			return f
		}
	}
	return dist.Field{}
}
