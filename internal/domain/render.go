package domain

import "fmt"

// Snapshot is every input needed to render one presentation. It is
// materialized before resolution starts and never mutated afterwards.
type Snapshot struct {
	Presentation Presentation
	Templates    []Template
	Slides       []Slide
	Variables    []Variable
	Rules        []RuleDefinition
	Gitsawes     []Gitsawe
	Verses       []Verse
}

// Warning is a non-fatal finding collected alongside a successful render.
type Warning struct {
	Code     WarningCode `json:"code"`
	SlideID  string      `json:"slideId,omitempty"`
	RuleID   string      `json:"ruleId,omitempty"`
	Language string      `json:"language,omitempty"`
	Detail   string      `json:"detail"`
}

func (w Warning) String() string {
	s := string(w.Code)
	if w.SlideID != "" {
		s += fmt.Sprintf(" slide=%s", w.SlideID)
	}
	if w.RuleID != "" {
		s += fmt.Sprintf(" rule=%s", w.RuleID)
	}
	if w.Language != "" {
		s += fmt.Sprintf(" lang=%s", w.Language)
	}
	return s + ": " + w.Detail
}

// RenderedBlock is one positioned block of a rendered page. Verse blocks
// carry the verse title and order.
type RenderedBlock struct {
	Slot  string         `json:"slot"`
	Order int            `json:"order,omitempty"`
	Title string         `json:"title,omitempty"`
	Text  string         `json:"text"`
	Style map[string]any `json:"style,omitempty"`
}

// RenderedPage is the content of a slide in one language.
type RenderedPage struct {
	Language string          `json:"language"`
	Settings any             `json:"settings,omitempty"`
	Title    string          `json:"title"`
	Blocks   []RenderedBlock `json:"blocks"`
	Footer   string          `json:"footer"`
}

// RenderedSlide is a render-ready slide with one page per language.
type RenderedSlide struct {
	SlideID    string         `json:"slideId"`
	SlideOrder int            `json:"slideOrder"`
	Kind       string         `json:"kind"`
	TemplateID string         `json:"templateId"`
	Source     ContentSource  `json:"source"`
	RuleID     string         `json:"ruleId,omitempty"`
	GitsaweID  string         `json:"gitsaweId,omitempty"`
	Pages      []RenderedPage `json:"pages"`
}

// RenderResult is the outcome of rendering one presentation. Slides are in
// ascending slide order; Failures lists slides that could not be rendered.
type RenderResult struct {
	PresentationID string          `json:"presentationId"`
	Languages      []string        `json:"languages"`
	Slides         []RenderedSlide `json:"slides"`
	Failures       []*SlideError   `json:"failures,omitempty"`
	Warnings       []Warning       `json:"warnings"`
}
