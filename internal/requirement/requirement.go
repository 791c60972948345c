// Package requirement turns install arguments such as "Foo_Bar[socks]>=2.0"
// into a canonical project name plus a version constraint.
package requirement

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/frederic-klein/pip-safe/internal/pep440"
)

// Kind tells how a requirement was understood.
type Kind int

const (
	// Structured requirements were parsed as name plus specifiers.
	Structured Kind = iota
	// BareName requirements could not be parsed; the whole token is the name
	// and any version is acceptable.
	BareName
)

func (k Kind) String() string {
	if k == BareName {
		return "bare-name"
	}
	return "structured"
}

// Requirement is a parsed install argument.
type Requirement struct {
	Raw        string
	Kind       Kind
	Name       string // canonical
	Extras     []string
	Specifiers pep440.Specifiers
}

var (
	requirementRe = regexp.MustCompile(`^\s*([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*(?:\[([^\]]*)\])?\s*(.*?)\s*$`)
	extraRe       = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	separatorRe   = regexp.MustCompile(`[-_.]+`)
)

// Canonicalize lowercases a project name and folds runs of "-", "_" and "."
// into a single "-".
func Canonicalize(name string) string {
	return strings.ToLower(separatorRe.ReplaceAllString(name, "-"))
}

// Parse parses a requirement token. It never fails: a token that does not
// follow the dependency grammar becomes a BareName with no constraint.
func Parse(raw string) Requirement {
	req, err := parseStructured(raw)
	if err != nil {
		return Requirement{
			Raw:  raw,
			Kind: BareName,
			Name: Canonicalize(strings.TrimSpace(raw)),
		}
	}
	return req
}

func parseStructured(raw string) (Requirement, error) {
	m := requirementRe.FindStringSubmatch(raw)
	if m == nil {
		return Requirement{}, fmt.Errorf("invalid requirement %q", raw)
	}

	req := Requirement{
		Raw:  raw,
		Kind: Structured,
		Name: Canonicalize(m[1]),
	}

	if m[2] != "" || strings.Contains(raw, "[") {
		extras, err := parseExtras(m[2])
		if err != nil {
			return Requirement{}, fmt.Errorf("invalid requirement %q: %w", raw, err)
		}
		req.Extras = extras
	}

	rest := m[3]
	// Environment markers do not constrain the version.
	if before, _, ok := strings.Cut(rest, ";"); ok {
		rest = strings.TrimSpace(before)
	}

	// Direct references ("name @ https://...") carry no version constraint.
	if strings.HasPrefix(rest, "@") {
		if strings.TrimSpace(rest[1:]) == "" {
			return Requirement{}, fmt.Errorf("invalid requirement %q: missing URL", raw)
		}
		return req, nil
	}

	if strings.HasPrefix(rest, "(") {
		if !strings.HasSuffix(rest, ")") {
			return Requirement{}, fmt.Errorf("invalid requirement %q: unbalanced parenthesis", raw)
		}
		rest = rest[1 : len(rest)-1]
	}

	specs, err := pep440.ParseSpecifiers(rest)
	if err != nil {
		return Requirement{}, fmt.Errorf("invalid requirement %q: %w", raw, err)
	}
	req.Specifiers = specs
	return req, nil
}

func parseExtras(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var extras []string
	for _, e := range strings.Split(s, ",") {
		e = strings.TrimSpace(e)
		if !extraRe.MatchString(e) {
			return nil, fmt.Errorf("invalid extra %q", e)
		}
		extras = append(extras, Canonicalize(e))
	}
	return extras, nil
}
