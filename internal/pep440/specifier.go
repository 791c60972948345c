package pep440

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	clauseRe   = regexp.MustCompile(`^\s*(~=|===|==|!=|<=|>=|<|>)\s*([^\s,;]+)\s*$`)
	wildcardRe = regexp.MustCompile(`(?i)^v?(?:([0-9]+)!)?([0-9]+(?:\.[0-9]+)*)\.\*$`)
)

// Specifier is a single version clause, e.g. ">=1.0" or "==2.*".
type Specifier struct {
	op       string
	raw      string
	version  Version
	wildcard bool // "==X.*" / "!=X.*"; version then holds only epoch and release
}

// Specifiers is a comma-separated set of clauses, all of which must hold.
// The zero value accepts every final release.
type Specifiers []Specifier

// ParseSpecifiers parses a specifier set such as ">=2.0,<3" or "~= 1.4.2".
// An empty or blank string yields an empty set.
func ParseSpecifiers(s string) (Specifiers, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var specs Specifiers
	for _, clause := range strings.Split(s, ",") {
		spec, err := parseSpecifier(clause)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseSpecifier(clause string) (Specifier, error) {
	m := clauseRe.FindStringSubmatch(clause)
	if m == nil {
		return Specifier{}, fmt.Errorf("invalid specifier %q", strings.TrimSpace(clause))
	}
	spec := Specifier{op: m[1], raw: m[2]}

	if spec.op == "===" {
		// Arbitrary equality compares strings; the version may not parse.
		if v, err := Parse(spec.raw); err == nil {
			spec.version = v
		}
		return spec, nil
	}

	if wm := wildcardRe.FindStringSubmatch(spec.raw); wm != nil {
		if spec.op != "==" && spec.op != "!=" {
			return Specifier{}, fmt.Errorf("invalid specifier %q: wildcard not allowed with %s", clause, spec.op)
		}
		prefix := wm[2]
		if wm[1] != "" {
			prefix = wm[1] + "!" + prefix
		}
		v, err := Parse(prefix)
		if err != nil {
			return Specifier{}, fmt.Errorf("invalid specifier %q: %w", clause, err)
		}
		spec.version = v
		spec.wildcard = true
		return spec, nil
	}

	v, err := Parse(spec.raw)
	if err != nil {
		return Specifier{}, fmt.Errorf("invalid specifier %q: %w", clause, err)
	}
	spec.version = v

	if len(v.local) > 0 && spec.op != "==" && spec.op != "!=" {
		return Specifier{}, fmt.Errorf("invalid specifier %q: local version not allowed with %s", clause, spec.op)
	}
	if spec.op == "~=" && len(v.release) < 2 {
		return Specifier{}, fmt.Errorf("invalid specifier %q: ~= needs at least two release segments", clause)
	}
	return spec, nil
}

// String returns the clause in canonical spacing.
func (s Specifier) String() string {
	return s.op + s.raw
}

// explicitPreRelease reports whether the clause names a pre-release in a way
// that opts the whole set into pre-releases.
func (s Specifier) explicitPreRelease() bool {
	switch s.op {
	case "==", "===", ">=", "<=", "~=":
		return !s.wildcard && s.version.release != nil && s.version.IsPreRelease()
	}
	return false
}

// Contains reports whether v satisfies this single clause, ignoring the
// pre-release policy applied by Specifiers.Check.
func (s Specifier) Contains(v Version) bool {
	switch s.op {
	case "===":
		return strings.EqualFold(v.String(), s.raw) || strings.EqualFold(v.Original(), s.raw)
	case "==":
		return s.equal(v)
	case "!=":
		return !s.equal(v)
	case "<=":
		return v.Public().Compare(s.version) <= 0
	case ">=":
		return v.Public().Compare(s.version) >= 0
	case "<":
		if !v.LessThan(s.version) {
			return false
		}
		if !s.version.IsPreRelease() && v.IsPreRelease() && v.Base().Equal(s.version.Base()) {
			return false
		}
		return true
	case ">":
		if !v.GreaterThan(s.version) {
			return false
		}
		if !s.version.IsPostRelease() && v.IsPostRelease() && v.Base().Equal(s.version.Base()) {
			return false
		}
		if len(v.local) > 0 && v.Base().Equal(s.version.Base()) {
			return false
		}
		return true
	case "~=":
		prefix := Version{epoch: s.version.epoch, release: s.version.release[:len(s.version.release)-1]}
		return v.Public().Compare(s.version) >= 0 && prefixMatch(v, prefix)
	}
	return false
}

func (s Specifier) equal(v Version) bool {
	if s.wildcard {
		return prefixMatch(v, s.version)
	}
	if len(s.version.local) == 0 {
		v = v.Public()
	}
	return v.Equal(s.version)
}

// prefixMatch reports whether v's release starts with the release of prefix,
// padding v with zeros as needed.
func prefixMatch(v, prefix Version) bool {
	if v.epoch != prefix.epoch {
		return false
	}
	for i, want := range prefix.release {
		got := 0
		if i < len(v.release) {
			got = v.release[i]
		}
		if got != want {
			return false
		}
	}
	return true
}

// AllowsPreReleases reports whether any clause explicitly targets a
// pre-release version.
func (ss Specifiers) AllowsPreReleases() bool {
	for _, s := range ss {
		if s.explicitPreRelease() {
			return true
		}
	}
	return false
}

// Check reports whether v satisfies every clause. Pre-releases are rejected
// unless the set explicitly targets one.
func (ss Specifiers) Check(v Version) bool {
	if v.IsPreRelease() && !ss.AllowsPreReleases() {
		return false
	}
	for _, s := range ss {
		if !s.Contains(v) {
			return false
		}
	}
	return true
}

// String joins the clauses with commas.
func (ss Specifiers) String() string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}
