package pip

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsInstall(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"install", []string{"install", "requests"}, true},
		{"leading flags", []string{"-q", "--no-cache-dir", "install", "requests"}, true},
		{"list", []string{"list"}, false},
		{"uninstall", []string{"uninstall", "install"}, false},
		{"only flags", []string{"--version"}, false},
		{"empty", nil, false},
		{"case sensitive", []string{"Install", "requests"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInstall(tt.args); got != tt.want {
				t.Errorf("IsInstall(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestInstallSpecs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "single",
			args: []string{"install", "requests"},
			want: []string{"requests"},
		},
		{
			name: "flags skipped and duplicates kept",
			args: []string{"-v", "install", "--upgrade", "Foo>=1.0", "bar", "Foo>=1.0"},
			want: []string{"Foo>=1.0", "bar", "Foo>=1.0"},
		},
		{
			name: "option value treated as spec",
			args: []string{"install", "-r", "requirements.txt"},
			want: []string{"requirements.txt"},
		},
		{
			name: "no specs",
			args: []string{"install", "--upgrade"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, InstallSpecs(tt.args)); diff != "" {
				t.Errorf("InstallSpecs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
