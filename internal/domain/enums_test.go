package domain

import "testing"

func TestRuleScope_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		scope RuleScope
		want  bool
	}{
		{RuleScopePresentation, true},
		{RuleScopeSlide, true},
		{RuleScope("global"), false},
		{RuleScope(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			t.Parallel()
			if got := tt.scope.IsValid(); got != tt.want {
				t.Errorf("RuleScope(%q).IsValid() = %v, want %v", tt.scope, got, tt.want)
			}
		})
	}
}

func TestContentSource_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source ContentSource
		want   bool
	}{
		{ContentSourceStatic, true},
		{ContentSourceDynamic, true},
		{ContentSourceFallback, true},
		{ContentSource("live"), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.source), func(t *testing.T) {
			t.Parallel()
			if got := tt.source.IsValid(); got != tt.want {
				t.Errorf("ContentSource(%q).IsValid() = %v, want %v", tt.source, got, tt.want)
			}
		})
	}
}

func TestWarningCode_IsValid(t *testing.T) {
	t.Parallel()

	for _, c := range []WarningCode{
		WarningUnresolvedVariable, WarningInvalidRule, WarningTemplateOverrideMissing,
		WarningUnplacedBlock, WarningDanglingCandidate,
	} {
		if !c.IsValid() {
			t.Errorf("WarningCode(%q).IsValid() = false, want true", c)
		}
	}
	if WarningCode("OTHER").IsValid() {
		t.Error("WarningCode(\"OTHER\").IsValid() = true, want false")
	}
}

func TestGitsaweField_IsValid(t *testing.T) {
	t.Parallel()

	g := Gitsawe{Wengel: "w", Misbak: "m"}
	for _, f := range []GitsaweField{
		GitsaweFieldMessageStPaul, GitsaweFieldMessageApostle, GitsaweFieldMessageBookOfActs,
		GitsaweFieldMisbak, GitsaweFieldWengel, GitsaweFieldMessageApostleEvangelist,
	} {
		if !f.IsValid() {
			t.Errorf("GitsaweField(%q).IsValid() = false", f)
		}
		if _, ok := g.Field(f); !ok {
			t.Errorf("Gitsawe.Field(%q) not readable", f)
		}
	}
	if GitsaweField("kidaseType").IsValid() {
		t.Error("kidaseType is metadata, not a reading field")
	}
	if v, _ := g.Field(GitsaweFieldWengel); v != "w" {
		t.Errorf("Field(wengel) = %q, want w", v)
	}
}
