package resolver

import (
	"context"
	"log/slog"

	"github.com/frederic-klein/pip-safe/internal/dist"
	"github.com/frederic-klein/pip-safe/internal/pep440"
	"github.com/frederic-klein/pip-safe/internal/requirement"
)

// ReleaseLister returns every release of a project with its files.
type ReleaseLister interface {
	Releases(ctx context.Context, name string) (dist.Releases, error)
}

// Resolver picks the version pip would install for a requirement.
type Resolver struct {
	index ReleaseLister
	log   *slog.Logger
}

// NewResolver creates a resolver backed by the given index.
func NewResolver(index ReleaseLister, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Resolver{index: index, log: log}
}

// Resolve returns the best matching version of the requirement. ok is false
// when the index cannot be queried or no release qualifies; callers cannot
// tell the two apart.
func (r *Resolver) Resolve(ctx context.Context, req requirement.Requirement) (v pep440.Version, ok bool) {
	r.log.Debug("resolving", "name", req.Name, "specifiers", req.Specifiers.String(), "kind", req.Kind.String())

	releases, err := r.index.Releases(ctx, req.Name)
	if err != nil {
		r.log.Debug("release list unavailable", "name", req.Name, "err", err)
		return pep440.Version{}, false
	}

	v, ok = Select(releases, req.Specifiers)
	if !ok {
		r.log.Debug("no qualifying release", "name", req.Name, "candidates", len(releases))
		return pep440.Version{}, false
	}
	r.log.Debug("resolved", "name", req.Name, "version", v.Original())
	return v, true
}

// Select returns the highest release that satisfies specs and still has at
// least one non-yanked file. Version strings that do not parse are skipped.
func Select(releases dist.Releases, specs pep440.Specifiers) (best pep440.Version, ok bool) {
	for raw, files := range releases {
		v, err := pep440.Parse(raw)
		if err != nil {
			continue
		}
		if !specs.Check(v) {
			continue
		}
		if dist.FullyYanked(files) {
			continue
		}
		if !ok || better(v, best) {
			best, ok = v, true
		}
	}
	return best, ok
}

// better orders by version, breaking ties between equivalent spellings
// ("1.0" vs "1.0.0") by the index string so the choice is stable.
func better(v, than pep440.Version) bool {
	if c := v.Compare(than); c != 0 {
		return c > 0
	}
	return v.Original() < than.Original()
}
