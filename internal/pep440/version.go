// Package pep440 parses and orders Python package versions and evaluates
// version specifiers such as ">=1.0, !=1.3.*".
package pep440

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var versionRe = regexp.MustCompile(`(?i)^\s*v?` +
	`(?:(?P<epoch>[0-9]+)!)?` +
	`(?P<release>[0-9]+(?:\.[0-9]+)*)` +
	`(?:[-_.]?(?P<pre_l>alpha|a|beta|b|preview|pre|c|rc)[-_.]?(?P<pre_n>[0-9]+)?)?` +
	`(?:-(?P<post_n1>[0-9]+)|[-_.]?(?P<post_l>post|rev|r)[-_.]?(?P<post_n2>[0-9]+)?)?` +
	`(?:[-_.]?(?P<dev_l>dev)[-_.]?(?P<dev_n>[0-9]+)?)?` +
	`(?:\+(?P<local>[a-z0-9]+(?:[-_.][a-z0-9]+)*))?` +
	`\s*$`)

var localSepRe = regexp.MustCompile(`[-_.]`)

// Version is a parsed PEP 440 version.
type Version struct {
	original string
	epoch    int
	release  []int
	preL     string // "a", "b" or "rc"; empty when not a pre-release
	preN     int
	hasPost  bool
	post     int
	hasDev   bool
	dev      int
	local    []string
}

// Parse parses a version string, accepting the alternative spellings PEP 440
// normalizes (e.g. "1.0-alpha1", "1.0.post", "v2.0").
func Parse(s string) (Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}
	group := func(name string) string {
		return m[versionRe.SubexpIndex(name)]
	}

	v := Version{original: s}
	var err error

	if e := group("epoch"); e != "" {
		if v.epoch, err = atoi(e); err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
	}

	for _, part := range strings.Split(group("release"), ".") {
		n, err := atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
		v.release = append(v.release, n)
	}

	if l := group("pre_l"); l != "" {
		v.preL = normalizePreLabel(l)
		if v.preN, err = optionalAtoi(group("pre_n")); err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
	}

	if n := group("post_n1"); n != "" {
		v.hasPost = true
		if v.post, err = atoi(n); err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
	} else if group("post_l") != "" {
		v.hasPost = true
		if v.post, err = optionalAtoi(group("post_n2")); err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
	}

	if group("dev_l") != "" {
		v.hasDev = true
		if v.dev, err = optionalAtoi(group("dev_n")); err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}
	}

	if l := group("local"); l != "" {
		v.local = localSepRe.Split(strings.ToLower(l), -1)
	}

	return v, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func normalizePreLabel(l string) string {
	switch strings.ToLower(l) {
	case "a", "alpha":
		return "a"
	case "b", "beta":
		return "b"
	default: // c, rc, pre, preview
		return "rc"
	}
}

func atoi(s string) (int, error) {
	return strconv.Atoi(s)
}

func optionalAtoi(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// Original returns the string the version was parsed from.
func (v Version) Original() string {
	return v.original
}

// String returns the normalized form of the version.
func (v Version) String() string {
	var b strings.Builder
	if v.epoch != 0 {
		fmt.Fprintf(&b, "%d!", v.epoch)
	}
	for i, n := range v.release {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(n))
	}
	if v.preL != "" {
		b.WriteString(v.preL)
		b.WriteString(strconv.Itoa(v.preN))
	}
	if v.hasPost {
		fmt.Fprintf(&b, ".post%d", v.post)
	}
	if v.hasDev {
		fmt.Fprintf(&b, ".dev%d", v.dev)
	}
	if len(v.local) > 0 {
		b.WriteByte('+')
		b.WriteString(strings.Join(v.local, "."))
	}
	return b.String()
}

// IsPreRelease reports whether v is an alpha, beta, release candidate or
// development release.
func (v Version) IsPreRelease() bool {
	return v.preL != "" || v.hasDev
}

// IsPostRelease reports whether v carries a post-release segment.
func (v Version) IsPostRelease() bool {
	return v.hasPost
}

// Public returns v without its local version label.
func (v Version) Public() Version {
	v.local = nil
	return v
}

// Release returns the release segments of v, e.g. [1 2 3] for "1.2.3rc1".
func (v Version) Release() []int {
	return append([]int(nil), v.release...)
}

// Base returns only the epoch and release segments of v.
func (v Version) Base() Version {
	return Version{epoch: v.epoch, release: v.release}
}

// Compare returns -1, 0 or +1 depending on whether v orders before, equal to
// or after o.
func (v Version) Compare(o Version) int {
	if c := cmpInt(v.epoch, o.epoch); c != 0 {
		return c
	}
	if c := compareRelease(v.release, o.release); c != 0 {
		return c
	}

	vr, vn := v.preKey()
	or, on := o.preKey()
	if c := cmpInt(vr, or); c != 0 {
		return c
	}
	if c := cmpInt(vn, on); c != 0 {
		return c
	}

	if c := cmpInt(v.postKey(), o.postKey()); c != 0 {
		return c
	}
	if c := cmpInt(v.devKey(), o.devKey()); c != 0 {
		return c
	}
	return compareLocal(v.local, o.local)
}

// GreaterThan reports whether v orders after o.
func (v Version) GreaterThan(o Version) bool {
	return v.Compare(o) > 0
}

// LessThan reports whether v orders before o.
func (v Version) LessThan(o Version) bool {
	return v.Compare(o) < 0
}

// Equal reports whether v and o are the same version.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// preKey orders a bare dev release before any pre-release of the same
// release, and a final release after all of them.
func (v Version) preKey() (rank, n int) {
	switch {
	case v.preL == "" && !v.hasPost && v.hasDev:
		return -1, 0
	case v.preL == "":
		return 3, 0
	case v.preL == "a":
		return 0, v.preN
	case v.preL == "b":
		return 1, v.preN
	default:
		return 2, v.preN
	}
}

func (v Version) postKey() int {
	if !v.hasPost {
		return -1
	}
	return v.post
}

func (v Version) devKey() int {
	if !v.hasDev {
		return math.MaxInt
	}
	return v.dev
}

func compareRelease(a, b []int) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if c := cmpInt(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// compareLocal orders numeric segments after alphanumeric ones; when one
// label is a prefix of the other, the shorter sorts first.
func compareLocal(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		an, aErr := strconv.Atoi(a[i])
		bn, bErr := strconv.Atoi(b[i])
		switch {
		case aErr == nil && bErr == nil:
			if c := cmpInt(an, bn); c != 0 {
				return c
			}
		case aErr == nil:
			return 1
		case bErr == nil:
			return -1
		default:
			if c := strings.Compare(a[i], b[i]); c != 0 {
				return c
			}
		}
	}
	return cmpInt(len(a), len(b))
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
