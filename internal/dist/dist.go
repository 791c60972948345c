package dist

import (
	"encoding/json"
	"fmt"
	"strings"
)

// File represents one distributable artifact of a release on the index.
type File struct {
	Filename     string `json:"filename"`
	PackageType  string `json:"packagetype"` // e.g., "bdist_wheel", "sdist"
	Yanked       bool   `json:"yanked"`
	YankedReason string `json:"yanked_reason"`
}

// Releases maps a version string, exactly as the index reports it, to its files.
type Releases map[string][]File

// FullyYanked reports whether every file of a release is withdrawn.
// A release without files is not considered yanked.
func FullyYanked(files []File) bool {
	if len(files) == 0 {
		return false
	}
	for _, f := range files {
		if !f.Yanked {
			return false
		}
	}
	return true
}

// Field is a metadata value that may be missing upstream.
type Field struct {
	Value string
	Valid bool
}

// NotAvailable is shown in place of a missing Field.
const NotAvailable = "N/A"

// Some returns a valid Field for a non-empty value and an absent one otherwise.
func Some(s string) Field {
	if s == "" {
		return Field{}
	}
	return Field{Value: s, Valid: true}
}

// Or returns the value, or fallback when the field is absent.
func (f Field) Or(fallback string) string {
	if !f.Valid {
		return fallback
	}
	return f.Value
}

// String renders the field for display.
func (f Field) String() string {
	return f.Or(NotAvailable)
}

// Metadata holds the descriptive fields shown to the operator before install.
type Metadata struct {
	Version       string
	Summary       Field
	Author        Field
	Documentation Field
	Homepage      Field
}

// URLMap holds a project's labelled URLs ("Documentation", "Homepage", ...).
// It decodes from a JSON object, as the index serves it, or from a list of
// "Label, URL" strings, as core metadata and pip reports carry it.
type URLMap map[string]string

func (m *URLMap) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var obj map[string]string
	if err := json.Unmarshal(data, &obj); err == nil {
		*m = obj
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("project urls: expected object or list: %w", err)
	}
	out := make(URLMap, len(list))
	for _, entry := range list {
		label, u, ok := strings.Cut(entry, ",")
		if !ok {
			continue
		}
		out[strings.TrimSpace(label)] = strings.TrimSpace(u)
	}
	*m = out
	return nil
}
