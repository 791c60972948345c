package pep440

import "testing"

func TestParseSpecifiers_Invalid(t *testing.T) {
	for _, input := range []string{"=>1.0", "1.0", ">=", ">=1.*", "~=1", "<1.0+local", ">=1.0,", ">=nope"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseSpecifiers(input); err == nil {
				t.Errorf("ParseSpecifiers(%q) should fail", input)
			}
		})
	}
}

func TestParseSpecifiers_Empty(t *testing.T) {
	specs, err := ParseSpecifiers("  ")
	if err != nil {
		t.Fatalf("ParseSpecifiers() error = %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("got %d clauses, want 0", len(specs))
	}
	if !specs.Check(MustParse("0.1")) {
		t.Error("empty set should accept a final release")
	}
	if specs.Check(MustParse("1.0a1")) {
		t.Error("empty set should reject a pre-release")
	}
}

func TestSpecifiers_Check(t *testing.T) {
	tests := []struct {
		specs   string
		version string
		ok      bool
	}{
		{"==1.0", "1.0", true},
		{"==1.0", "1.0.0", true},
		{"==1.0", "1.0+local", true},
		{"==1.0+local", "1.0", false},
		{"==1.0", "1.1", false},
		{"==1.*", "1.9.3", true},
		{"==1.*", "2.0", false},
		{"==1.0.*", "1", true},
		{"!=1.3.*", "1.3.5", false},
		{"!=1.3.*", "1.4", true},
		{"!=2.0", "2.0", false},
		{">=2.0", "2.0", true},
		{">=2.0", "1.9", false},
		{"<=2.0", "2.0+local", true},
		{">=1.0, <2.0", "1.5", true},
		{">=1.0, <2.0", "2.0", false},
		{" >= 1.0 , < 2.0 ", "1.5", true},
		{"<2.0", "2.0rc1", false},
		{"<2.0rc2", "2.0rc1", false},
		{"<2.0rc2, >=2.0rc1", "2.0rc1", true},
		{">1.0", "1.0.post1", false},
		{">1.0.post1", "1.0.post2", true},
		{">1.0", "1.0+local", false},
		{">1.0", "1.1", true},
		{"~=2.2", "2.9", true},
		{"~=2.2", "3.0", false},
		{"~=2.2.1", "2.2.5", true},
		{"~=2.2.1", "2.3", false},
		{"~=2.2.1", "2.2.0", false},
		{"===1.0", "1.0", true},
		{"===1.0", "1.0.0", false},
		{">=1.0", "2.0a1", false},
		{">=2.0a1", "2.0a1", true},
		{">=2.0a1", "2.0b3", true},
		{"==3.0.0a1", "3.0.0a1", true},
		{"!=3.0.0a1", "3.0.0a2", false},
		{"<3.0.0a2", "3.0.0a1", false},
	}

	for _, tt := range tests {
		t.Run(tt.specs+"_"+tt.version, func(t *testing.T) {
			specs, err := ParseSpecifiers(tt.specs)
			if err != nil {
				t.Fatalf("ParseSpecifiers(%q) error = %v", tt.specs, err)
			}
			if got := specs.Check(MustParse(tt.version)); got != tt.ok {
				t.Errorf("Check(%q, %q) = %v, want %v", tt.specs, tt.version, got, tt.ok)
			}
		})
	}
}

func TestSpecifiers_AllowsPreReleases(t *testing.T) {
	tests := []struct {
		specs string
		want  bool
	}{
		{"", false},
		{">=1.0", false},
		{">=1.0b1", true},
		{"==2.0.dev3", true},
		{"~=1.0rc1", true},
		{"!=1.0a1", false},
		{"<2.0a1", false},
		{"==1.*", false},
	}

	for _, tt := range tests {
		t.Run(tt.specs, func(t *testing.T) {
			specs, err := ParseSpecifiers(tt.specs)
			if err != nil {
				t.Fatalf("ParseSpecifiers(%q) error = %v", tt.specs, err)
			}
			if got := specs.AllowsPreReleases(); got != tt.want {
				t.Errorf("AllowsPreReleases(%q) = %v, want %v", tt.specs, got, tt.want)
			}
		})
	}
}
