// Package layout resolves the effective template of a slide and the block
// layout its kind maps to.
package layout

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

// Block is one named slot of a layout.
type Block struct {
	Name  string         `json:"name"`
	Style map[string]any `json:"style,omitempty"`
}

// Layout is the block structure a template defines for one slide kind.
type Layout struct {
	TemplateID       string
	Kind             string
	Blocks           []Block
	MaxLanguageCount int
}

// Has reports whether the layout defines a slot.
func (l Layout) Has(slot string) bool {
	for _, b := range l.Blocks {
		if b.Name == slot {
			return true
		}
	}
	return false
}

type rawLayout struct {
	Kind   string  `json:"kind"`
	Blocks []Block `json:"blocks"`
}

type compiledTemplate struct {
	tmpl    domain.Template
	layouts map[string]Layout
	dupes   map[string]bool
	err     error
}

// Resolver answers layout questions for a fixed template set. It is safe
// for concurrent use.
type Resolver struct {
	templates map[string]*compiledTemplate
}

// NewResolver parses every template definition up front. A definition that
// does not parse is remembered and reported for each slide that uses it.
func NewResolver(templates []domain.Template) *Resolver {
	r := &Resolver{templates: make(map[string]*compiledTemplate, len(templates))}
	for _, t := range templates {
		r.templates[t.ID] = compile(t)
	}
	return r
}

func compile(t domain.Template) *compiledTemplate {
	ct := &compiledTemplate{tmpl: t, layouts: make(map[string]Layout), dupes: make(map[string]bool)}

	raws, err := parseDefinition(t.DefinitionJSON)
	if err != nil {
		ct.err = err
		return ct
	}
	for i, rl := range raws {
		if rl.Kind == "" {
			ct.err = fmt.Errorf("definition_json layout %d has no kind", i)
			return ct
		}
		if _, seen := ct.layouts[rl.Kind]; seen {
			ct.dupes[rl.Kind] = true
			continue
		}
		ct.layouts[rl.Kind] = Layout{
			TemplateID:       t.ID,
			Kind:             rl.Kind,
			Blocks:           rl.Blocks,
			MaxLanguageCount: t.MaxLanguageCount,
		}
	}
	return ct
}

func parseDefinition(raw string) ([]rawLayout, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '{' {
		var doc struct {
			Layouts []rawLayout `json:"layouts"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("definition_json: %w", err)
		}
		return doc.Layouts, nil
	}
	var out []rawLayout
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("definition_json: %w", err)
	}
	return out, nil
}

// CheckPresentation verifies that the presentation's own template exists and
// can carry every language of its language map. It runs before any slide is
// rendered so a language overflow fails the whole presentation.
func (r *Resolver) CheckPresentation(p domain.Presentation) error {
	ct, ok := r.templates[p.TemplateID]
	if !ok {
		return fmt.Errorf("presentation %s template %q: %w", p.ID, p.TemplateID, domain.ErrNotFound)
	}
	return checkLanguages(ct.tmpl, len(p.LanguageMap))
}

// Effective returns the id of the template a slide renders with. An override
// naming a template that does not exist falls back to the presentation
// template and produces a TEMPLATE_OVERRIDE_MISSING warning.
func (r *Resolver) Effective(p domain.Presentation, s domain.Slide) (string, []domain.Warning) {
	if s.TemplateOverrideID == "" {
		return p.TemplateID, nil
	}
	if _, ok := r.templates[s.TemplateOverrideID]; ok {
		return s.TemplateOverrideID, nil
	}
	return p.TemplateID, []domain.Warning{{
		Code:    domain.WarningTemplateOverrideMissing,
		SlideID: s.ID,
		Detail:  fmt.Sprintf("override template %q not found, using %q", s.TemplateOverrideID, p.TemplateID),
	}}
}

// Layout returns the layout of kind in the given template.
func (r *Resolver) Layout(templateID, kind string, languages int) (Layout, error) {
	ct, ok := r.templates[templateID]
	if !ok {
		return Layout{}, fmt.Errorf("template %q: %w", templateID, domain.ErrNotFound)
	}
	if err := checkLanguages(ct.tmpl, languages); err != nil {
		return Layout{}, err
	}
	if ct.err != nil {
		return Layout{}, fmt.Errorf("template %s: %w: %w", templateID, domain.ErrTemplateMismatch, ct.err)
	}
	if ct.dupes[kind] {
		return Layout{}, fmt.Errorf("template %s defines kind %q more than once: %w",
			templateID, kind, domain.ErrTemplateMismatch)
	}
	l, ok := ct.layouts[kind]
	if !ok {
		return Layout{}, fmt.Errorf("template %s has no layout for kind %q: %w",
			templateID, kind, domain.ErrTemplateMismatch)
	}
	return l, nil
}

// Resolve combines Effective and Layout.
func (r *Resolver) Resolve(p domain.Presentation, s domain.Slide, kind string) (Layout, []domain.Warning, error) {
	id, warnings := r.Effective(p, s)
	l, err := r.Layout(id, kind, len(p.LanguageMap))
	return l, warnings, err
}

func checkLanguages(t domain.Template, languages int) error {
	if languages > t.MaxLanguageCount {
		return fmt.Errorf("template %s carries %d languages, presentation has %d: %w",
			t.ID, t.MaxLanguageCount, languages, domain.ErrTemplateMismatch)
	}
	return nil
}
