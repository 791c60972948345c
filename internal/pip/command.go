// Package pip classifies pip command lines and runs the real pip.
package pip

import "strings"

const installVerb = "install"

func isFlag(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

// IsInstall reports whether the first non-flag argument is "install".
func IsInstall(args []string) bool {
	for _, tok := range args {
		if !isFlag(tok) {
			return tok == installVerb
		}
	}
	return false
}

// InstallSpecs returns the non-flag arguments following the install verb, in
// order and including duplicates. Option values such as the file after -r are
// not told apart from requirements.
func InstallSpecs(args []string) []string {
	var specs []string
	seenVerb := false
	for _, tok := range args {
		if !seenVerb {
			seenVerb = tok == installVerb
			continue
		}
		if !isFlag(tok) {
			specs = append(specs, tok)
		}
	}
	return specs
}
