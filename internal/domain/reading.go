package domain

import "time"

// RuleDefinition selects a gitsawe for a presentation or a single slide when
// its predicate (RuleJSON) holds for the evaluation context.
type RuleDefinition struct {
	ID             string
	Name           string
	Scope          RuleScope
	PresentationID string
	SlideID        string
	RuleJSON       string
	GitsaweID      string
	IsEnabled      bool
	CreatedAt      time.Time
}

// TargetID returns the presentation or slide id the rule is attached to,
// according to its scope.
func (r RuleDefinition) TargetID() string {
	if r.Scope == RuleScopeSlide {
		return r.SlideID
	}
	return r.PresentationID
}

// GitsaweField names one of the reading text fields of a Gitsawe.
type GitsaweField string

const (
	GitsaweFieldMessageStPaul            GitsaweField = "messageStPaul"
	GitsaweFieldMessageApostle           GitsaweField = "messageApostle"
	GitsaweFieldMessageBookOfActs        GitsaweField = "messageBookOfActs"
	GitsaweFieldMisbak                   GitsaweField = "misbak"
	GitsaweFieldWengel                   GitsaweField = "wengel"
	GitsaweFieldMessageApostleEvangelist GitsaweField = "messageApostleEvangelist"
)

func (f GitsaweField) String() string { return string(f) }

func (f GitsaweField) IsValid() bool {
	switch f {
	case GitsaweFieldMessageStPaul, GitsaweFieldMessageApostle, GitsaweFieldMessageBookOfActs,
		GitsaweFieldMisbak, GitsaweFieldWengel, GitsaweFieldMessageApostleEvangelist:
		return true
	}
	return false
}

// Gitsawe is an appointed liturgical reading. Lower Priority wins.
type Gitsawe struct {
	ID                       string
	LineID                   string
	MessageStPaul            string
	MessageApostle           string
	MessageBookOfActs        string
	Misbak                   string
	Wengel                   string
	MessageApostleEvangelist string
	KidaseType               string
	Evangelist               string
	GitsaweType              string
	Priority                 int
	CreatedAt                time.Time
}

// Field returns the raw text of the named field.
func (g Gitsawe) Field(f GitsaweField) (string, bool) {
	switch f {
	case GitsaweFieldMessageStPaul:
		return g.MessageStPaul, true
	case GitsaweFieldMessageApostle:
		return g.MessageApostle, true
	case GitsaweFieldMessageBookOfActs:
		return g.MessageBookOfActs, true
	case GitsaweFieldMisbak:
		return g.Misbak, true
	case GitsaweFieldWengel:
		return g.Wengel, true
	case GitsaweFieldMessageApostleEvangelist:
		return g.MessageApostleEvangelist, true
	}
	return "", false
}

// SegmentID returns the verse segment holding this reading's verses.
func (g Gitsawe) SegmentID() string {
	return g.LineID
}

// Slots holds one value per fixed language slot, in slot order.
type Slots [MaxLanguages]string

// Localize maps each slot to the language bound to it. Unbound slots are dropped.
func (s Slots) Localize(bound SlotMap) Localized {
	out := make(Localized, MaxLanguages)
	for i, lang := range bound {
		if lang != "" {
			out[lang] = s[i]
		}
	}
	return out
}

// Verse is one ordered stanza of a reading segment.
type Verse struct {
	ID         string
	SegmentID  string
	VerseOrder int
	Titles     Slots
	Texts      Slots
	CreatedAt  time.Time
}

// ResolvedContent is the reading chosen for one dynamic slide.
type ResolvedContent struct {
	RuleID  string
	Gitsawe Gitsawe
	Verses  []Verse
}
