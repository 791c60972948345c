package metadata

import (
	"context"
	"fmt"

	"github.com/frederic-klein/pip-safe/internal/dist"
	"github.com/frederic-klein/pip-safe/internal/index"
)

// ReleaseInfoer returns the index's metadata record for a release.
type ReleaseInfoer interface {
	Release(ctx context.Context, name, version string) (*index.ProjectInfo, error)
}

// IndexFetcher reads metadata from the index's per-release JSON record.
type IndexFetcher struct {
	index ReleaseInfoer
}

// NewIndexFetcher creates a fetcher backed by the index.
func NewIndexFetcher(idx ReleaseInfoer) *IndexFetcher {
	return &IndexFetcher{index: idx}
}

// Fetch implements Fetcher.
func (f *IndexFetcher) Fetch(ctx context.Context, name, version string) (*dist.Metadata, error) {
	if version == "" {
		return nil, fmt.Errorf("fetching metadata for %s: %w", name, errNoVersion)
	}
	info, err := f.index.Release(ctx, name, version)
	if err != nil {
		return nil, fmt.Errorf("fetching metadata for %s: %w", name, err)
	}

	return extract(record{
		Version:     info.Version,
		Summary:     info.Summary,
		Author:      info.Author,
		Maintainer:  info.Maintainer,
		HomePage:    info.HomePage,
		ProjectURLs: info.ProjectURLs,
	}, version), nil
}
