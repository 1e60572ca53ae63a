package config

import "testing"

func TestValidateRejectsMissingSuites(t *testing.T) {
	err := Validate([]byte(`project: testing`))
	if err == nil {
		t.Fatal("expected validation error for missing suites")
	}
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	raw := []byte(`
project: testing
suites:
  - name: testing
    sections: [main]
    architectures: [amd64]
`)
	if err := Validate(raw); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestSuiteConfigHasSection(t *testing.T) {
	s := SuiteConfig{Sections: []string{"main", "universe"}}
	if !s.HasSection("main") {
		t.Error("expected HasSection(main) to be true")
	}
	if s.HasSection("contrib") {
		t.Error("expected HasSection(contrib) to be false")
	}
}

func TestIconSizeConfigSizeTag(t *testing.T) {
	cases := []struct {
		in   IconSizeConfig
		want string
	}{
		{IconSizeConfig{Width: 64, Height: 64}, "64x64"},
		{IconSizeConfig{Width: 64, Height: 64, Scale: 2}, "64x64@2"},
	}
	for _, tc := range cases {
		if got := tc.in.SizeTag(); got != tc.want {
			t.Errorf("SizeTag() = %q, want %q", got, tc.want)
		}
	}
}

func TestDefaultAuxiliarySectionsAppliedWhenUnset(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.AuxiliarySections) != len(DefaultAuxiliarySections) {
		t.Fatalf("expected default auxiliary sections, got %v", cfg.AuxiliarySections)
	}
}
