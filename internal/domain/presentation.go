package domain

import "time"

// MaxLanguages is the number of fixed language slots in the persisted schema.
const MaxLanguages = 4

// Template is a block-layout definition shared by presentations.
// DefinitionJSON holds the ordered layouts keyed by slide kind.
type Template struct {
	ID               string
	Name             string
	MaxLanguageCount int
	DefinitionJSON   string
	CreatedAt        time.Time
}

// Presentation is an ordered set of slides rendered in LanguageMap order.
type Presentation struct {
	ID               string
	Name             string
	Type             string
	TemplateID       string
	LanguageMap      []string
	LanguageSlots    SlotMap
	LanguageSettings map[string]any
	IsActive         bool
	IsPrimary        bool
	CreatedAt        time.Time
}

// Slots returns the storage slot binding of the presentation's languages.
// A presentation without an explicit binding reads slot i for LanguageMap[i].
func (p Presentation) Slots() SlotMap {
	if p.LanguageSlots != (SlotMap{}) {
		return p.LanguageSlots
	}
	return PositionalSlots(p.LanguageMap)
}

// SlotMap binds each fixed storage slot to a language code. An empty entry
// is an unused slot.
type SlotMap [MaxLanguages]string

// PositionalSlots binds slot i to languageMap[i].
func PositionalSlots(languageMap []string) SlotMap {
	var m SlotMap
	for i := 0; i < len(languageMap) && i < MaxLanguages; i++ {
		m[i] = languageMap[i]
	}
	return m
}

// Slide is one slide of a presentation. Disabled slides are kept in storage
// but never rendered. A dynamic slide takes its content from rule resolution.
type Slide struct {
	ID                 string
	PresentationID     string
	SlideOrder         int
	LineID             string
	TitleJSON          string
	BlocksJSON         string
	FooterJSON         string
	Notes              string
	IsDynamic          bool
	IsDisabled         bool
	TemplateOverrideID string
}

// Variable is a named per-language value substituted into slide text.
type Variable struct {
	ID             string
	PresentationID string
	Name           string
	Values         Localized
}

// Value returns the value for lang, or "" when that slot is unset.
func (v Variable) Value(lang string) string {
	return v.Values.Get(lang)
}
