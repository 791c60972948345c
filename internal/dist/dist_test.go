package dist

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFullyYanked(t *testing.T) {
	tests := []struct {
		name  string
		files []File
		want  bool
	}{
		{"no files", nil, false},
		{"single yanked", []File{{Filename: "a.whl", Yanked: true}}, true},
		{"single live", []File{{Filename: "a.whl"}}, false},
		{"mixed", []File{{Filename: "a.whl", Yanked: true}, {Filename: "a.tar.gz"}}, false},
		{"all yanked", []File{{Filename: "a.whl", Yanked: true}, {Filename: "a.tar.gz", Yanked: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FullyYanked(tt.files); got != tt.want {
				t.Errorf("FullyYanked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestField(t *testing.T) {
	if f := Some(""); f.Valid {
		t.Error("Some(\"\") should be absent")
	}
	if got := Some("").String(); got != NotAvailable {
		t.Errorf("absent String() = %q, want %q", got, NotAvailable)
	}
	if got := Some("HTTP for Humans.").String(); got != "HTTP for Humans." {
		t.Errorf("String() = %q", got)
	}
	if got := (Field{}).Or("x"); got != "x" {
		t.Errorf("Or() = %q, want %q", got, "x")
	}
}

func TestURLMap_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  URLMap
	}{
		{
			name:  "object",
			input: `{"Documentation": "https://docs.example.org", "Source": "https://git.example.org"}`,
			want:  URLMap{"Documentation": "https://docs.example.org", "Source": "https://git.example.org"},
		},
		{
			name:  "label list",
			input: `["Homepage, https://example.org", "Bug Tracker, https://example.org/issues", "malformed"]`,
			want:  URLMap{"Homepage": "https://example.org", "Bug Tracker": "https://example.org/issues"},
		},
		{
			name:  "null",
			input: `null`,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got URLMap
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("URLMap mismatch (-want +got):\n%s", diff)
			}
		})
	}

	var bad URLMap
	if err := json.Unmarshal([]byte(`42`), &bad); err == nil {
		t.Error("Unmarshal(42) should fail")
	}
}
