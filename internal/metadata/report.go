package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/frederic-klein/pip-safe/internal/dist"
)

// OutputRunner runs pip and returns its standard output.
type OutputRunner interface {
	Output(ctx context.Context, args []string) ([]byte, error)
}

// reportArgs asks pip to resolve a single wheel without installing it and to
// print its installation report as JSON on stdout.
var reportArgs = []string{
	"install",
	"--dry-run",
	"--no-deps",
	"--disable-pip-version-check",
	"--quiet",
	"--only-binary", ":all:",
	"--report", "-",
}

type installReport struct {
	Install []struct {
		Metadata *record `json:"metadata"`
	} `json:"install"`
}

// ReportFetcher reads metadata from pip's dry-run installation report.
type ReportFetcher struct {
	pip OutputRunner
}

// NewReportFetcher creates a fetcher that shells out to pip.
func NewReportFetcher(pip OutputRunner) *ReportFetcher {
	return &ReportFetcher{pip: pip}
}

// Fetch implements Fetcher.
func (f *ReportFetcher) Fetch(ctx context.Context, name, version string) (*dist.Metadata, error) {
	if version == "" {
		return nil, fmt.Errorf("pip report for %s: %w", name, errNoVersion)
	}
	target := name + "==" + version
	args := append(append([]string{}, reportArgs...), target)

	out, err := f.pip.Output(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("running pip report for %s: %w", target, err)
	}

	rec, err := parseReport(out)
	if err != nil {
		return nil, fmt.Errorf("pip report for %s: %w", target, err)
	}
	return extract(*rec, version), nil
}

func parseReport(data []byte) (*record, error) {
	var report installReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("parsing report: %w", err)
	}
	if len(report.Install) == 0 || report.Install[0].Metadata == nil {
		return nil, errors.New("report has no metadata")
	}
	rec := report.Install[0].Metadata
	if rec.empty() {
		return nil, errors.New("report has empty metadata")
	}
	return rec, nil
}
