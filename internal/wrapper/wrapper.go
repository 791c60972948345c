// Package wrapper ties the pieces together: classify the pip command line,
// review what an install would fetch, and forward to pip once approved.
package wrapper

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/frederic-klein/pip-safe/internal/metadata"
	"github.com/frederic-klein/pip-safe/internal/pep440"
	"github.com/frederic-klein/pip-safe/internal/pip"
	"github.com/frederic-klein/pip-safe/internal/requirement"
	"github.com/frederic-klein/pip-safe/internal/review"
)

// AbortStatus is the exit status when the operator declines.
const AbortStatus = 1

// Forwarder runs the real pip and returns its exit status.
type Forwarder interface {
	Forward(ctx context.Context, args []string) (int, error)
}

// Resolver picks the version an install would fetch.
type Resolver interface {
	Resolve(ctx context.Context, req requirement.Requirement) (pep440.Version, bool)
}

// Wrapper intercepts pip install invocations.
type Wrapper struct {
	pip      Forwarder
	resolver Resolver
	fetcher  metadata.Fetcher
	in       io.Reader
	out      io.Writer
	styled   bool
	log      *slog.Logger
}

// Options configures a Wrapper.
type Options struct {
	Pip      Forwarder
	Resolver Resolver
	Fetcher  metadata.Fetcher
	In       io.Reader
	Out      io.Writer
	Styled   bool
	Log      *slog.Logger
}

// New creates a Wrapper.
func New(opts Options) *Wrapper {
	log := opts.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Wrapper{
		pip:      opts.Pip,
		resolver: opts.Resolver,
		fetcher:  opts.Fetcher,
		in:       opts.In,
		out:      opts.Out,
		styled:   opts.Styled,
		log:      log,
	}
}

// Run handles one pip command line and returns the process exit status.
// Anything but install goes straight to pip.
func (w *Wrapper) Run(ctx context.Context, args []string) (int, error) {
	if !pip.IsInstall(args) {
		w.log.Debug("forwarding non-install command", "args", args)
		return w.pip.Forward(ctx, args)
	}

	entries := w.review(ctx, pip.InstallSpecs(args))
	if err := review.NewEmitter(w.out, w.styled).Emit(entries); err != nil {
		return 1, fmt.Errorf("writing review: %w", err)
	}

	ok, err := review.Confirm(ctx, w.in, w.out)
	if err != nil {
		w.log.Debug("no answer", "err", err)
	}
	if !ok {
		return AbortStatus, w.abort(ctx.Err() != nil)
	}
	return w.pip.Forward(ctx, args)
}

// abort prints the refusal notice. An interrupted prompt has no newline yet.
func (w *Wrapper) abort(interrupted bool) error {
	notice := "Aborted.\n"
	if interrupted {
		notice = "\n" + notice
	}
	if _, err := io.WriteString(w.out, notice); err != nil {
		return fmt.Errorf("writing abort notice: %w", err)
	}
	return nil
}

// review resolves each distinct spec once, keeping first-occurrence order.
// Specs are told apart by their raw text, not their canonical name.
func (w *Wrapper) review(ctx context.Context, specs []string) []review.Entry {
	seen := make(map[string]bool, len(specs))
	var entries []review.Entry
	for _, spec := range specs {
		if seen[spec] {
			continue
		}
		seen[spec] = true
		entries = append(entries, w.reviewOne(ctx, spec))
	}
	return entries
}

func (w *Wrapper) reviewOne(ctx context.Context, spec string) review.Entry {
	req := requirement.Parse(spec)

	v, ok := w.resolver.Resolve(ctx, req)
	if !ok {
		return review.Entry{Spec: spec}
	}

	entry := review.Entry{Spec: spec, Resolved: true}
	md, err := w.fetcher.Fetch(ctx, req.Name, v.Original())
	if err != nil {
		w.log.Debug("metadata unavailable", "name", req.Name, "version", v.Original(), "err", err)
		entry.Metadata.Version = v.Original()
		return entry
	}
	entry.Metadata = *md
	return entry
}
