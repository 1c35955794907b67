package domain

// RuleScope identifies what a rule definition is attached to.
type RuleScope string

const (
	RuleScopePresentation RuleScope = "presentation"
	RuleScopeSlide        RuleScope = "slide"
)

func (s RuleScope) String() string { return string(s) }

func (s RuleScope) IsValid() bool {
	switch s {
	case RuleScopePresentation, RuleScopeSlide:
		return true
	}
	return false
}

// ContentSource records where a rendered slide's content came from.
type ContentSource string

const (
	// ContentSourceStatic is authored content of a non-dynamic slide.
	ContentSourceStatic ContentSource = "static"
	// ContentSourceDynamic is content selected by a winning rule.
	ContentSourceDynamic ContentSource = "dynamic"
	// ContentSourceFallback is authored content of a dynamic slide no rule matched.
	ContentSourceFallback ContentSource = "fallback"
)

func (s ContentSource) String() string { return string(s) }

func (s ContentSource) IsValid() bool {
	switch s {
	case ContentSourceStatic, ContentSourceDynamic, ContentSourceFallback:
		return true
	}
	return false
}

// WarningCode classifies non-fatal findings collected during a render.
type WarningCode string

const (
	WarningUnresolvedVariable      WarningCode = "UNRESOLVED_VARIABLE"
	WarningInvalidRule             WarningCode = "INVALID_RULE"
	WarningTemplateOverrideMissing WarningCode = "TEMPLATE_OVERRIDE_MISSING"
	WarningUnplacedBlock           WarningCode = "UNPLACED_BLOCK"
	WarningDanglingCandidate       WarningCode = "DANGLING_CANDIDATE"
)

func (c WarningCode) String() string { return string(c) }

func (c WarningCode) IsValid() bool {
	switch c {
	case WarningUnresolvedVariable, WarningInvalidRule, WarningTemplateOverrideMissing,
		WarningUnplacedBlock, WarningDanglingCandidate:
		return true
	}
	return false
}

// Slide kinds with built-in meaning. Templates may define any other kind.
const (
	SlideKindText    = "text"
	SlideKindReading = "reading"
	SlideKindVerses  = "verses"
)
