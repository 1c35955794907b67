// Package assemble composes authored and resolved text with a block layout
// and the variable table into per-language rendered pages.
package assemble

import (
	"fmt"

	"github.com/YaredDejene/kidase-presentation/internal/domain"
	"github.com/YaredDejene/kidase-presentation/internal/layout"
)

// Input carries everything needed to render one slide. Nothing is fetched
// during assembly.
type Input struct {
	Slide  domain.Slide
	Blocks domain.SlideBlocks
	Kind   string
	Layout layout.Layout

	// Resolved is the content selected by the winning rule, or nil when the
	// slide is static or no rule matched.
	Resolved *domain.ResolvedContent

	Variables        Variables
	LanguageMap      []string
	LanguageSlots    domain.SlotMap
	LanguageSettings map[string]any
}

// slots returns the storage slot binding, defaulting to LanguageMap order.
func (in Input) slots() domain.SlotMap {
	if in.LanguageSlots != (domain.SlotMap{}) {
		return in.LanguageSlots
	}
	return domain.PositionalSlots(in.LanguageMap)
}

// source reports how the slide's content was obtained.
func (in Input) source() domain.ContentSource {
	switch {
	case in.Resolved != nil:
		return domain.ContentSourceDynamic
	case in.Slide.IsDynamic:
		return domain.ContentSourceFallback
	default:
		return domain.ContentSourceStatic
	}
}

// localizedBlock is a block before per-language expansion.
type localizedBlock struct {
	slot  string
	order int
	title domain.Localized
	text  domain.Localized
	style map[string]any
}

// Assemble renders one slide. Unresolved placeholders and authored blocks
// without a layout slot are returned as warnings.
func Assemble(in Input) (domain.RenderedSlide, []domain.Warning) {
	title := domain.ParseLocalized([]byte(in.Slide.TitleJSON), in.LanguageMap, in.slots())
	footer := domain.ParseLocalized([]byte(in.Slide.FooterJSON), in.LanguageMap, in.slots())

	var warnings []domain.Warning
	var blocks []localizedBlock
	if in.Resolved != nil {
		blocks = dynamicBlocks(in)
	} else {
		blocks = authoredBlocks(in)
	}
	for _, b := range in.Blocks.Blocks {
		if in.Layout.Has(b.Slot) {
			continue
		}
		warnings = append(warnings, domain.Warning{
			Code:    domain.WarningUnplacedBlock,
			SlideID: in.Slide.ID,
			Detail:  fmt.Sprintf("template %s kind %s has no slot %q", in.Layout.TemplateID, in.Layout.Kind, b.Slot),
		})
		blocks = append(blocks, localizedBlock{slot: b.Slot, text: b.Text})
	}

	sub := newSubstituter(in.Variables, in.Slide.ID)
	pages := make([]domain.RenderedPage, 0, len(in.LanguageMap))
	for _, lang := range in.LanguageMap {
		page := domain.RenderedPage{
			Language: lang,
			Settings: in.LanguageSettings[lang],
			Title:    sub.apply(title.Get(lang), lang),
			Footer:   sub.apply(footer.Get(lang), lang),
			Blocks:   make([]domain.RenderedBlock, 0, len(blocks)),
		}
		for _, b := range blocks {
			page.Blocks = append(page.Blocks, domain.RenderedBlock{
				Slot:  b.slot,
				Order: b.order,
				Title: sub.apply(b.title.Get(lang), lang),
				Text:  sub.apply(b.text.Get(lang), lang),
				Style: b.style,
			})
		}
		pages = append(pages, page)
	}

	out := domain.RenderedSlide{
		SlideID:    in.Slide.ID,
		SlideOrder: in.Slide.SlideOrder,
		Kind:       in.Kind,
		TemplateID: in.Layout.TemplateID,
		Source:     in.source(),
		Pages:      pages,
	}
	if in.Resolved != nil {
		out.RuleID = in.Resolved.RuleID
		out.GitsaweID = in.Resolved.Gitsawe.ID
	}

	return out, append(warnings, sub.warnings...)
}

// authoredBlocks places authored blocks into layout order. Several authored
// blocks may share a slot; they keep their authored order.
func authoredBlocks(in Input) []localizedBlock {
	var out []localizedBlock
	for _, lb := range in.Layout.Blocks {
		for _, b := range in.Blocks.Blocks {
			if b.Slot == lb.Name {
				out = append(out, localizedBlock{slot: lb.Name, text: b.Text, style: lb.Style})
			}
		}
	}
	return out
}

// dynamicBlocks fills every layout slot from the resolved content. The
// verses slot of a verse-sequenced slide expands to one block per verse.
// Other slots take an explicitly mapped gitsawe field, then a gitsawe field
// of the same name, then authored text, then stay empty.
func dynamicBlocks(in Input) []localizedBlock {
	rc := in.Resolved
	versesSlot := in.Blocks.Dynamic.VersesSlotName()
	sequenced := in.Blocks.VerseSequenced(in.Kind)

	var out []localizedBlock
	for _, lb := range in.Layout.Blocks {
		if sequenced && lb.Name == versesSlot {
			for _, v := range rc.Verses {
				out = append(out, localizedBlock{
					slot:  lb.Name,
					order: v.VerseOrder,
					title: v.Titles.Localize(in.slots()),
					text:  v.Texts.Localize(in.slots()),
					style: lb.Style,
				})
			}
			continue
		}

		field, mapped := in.Blocks.Dynamic.Fields[lb.Name]
		if !mapped {
			field = domain.GitsaweField(lb.Name)
		}
		if raw, ok := rc.Gitsawe.Field(field); ok {
			out = append(out, localizedBlock{slot: lb.Name, text: domain.ParseLocalized([]byte(raw), in.LanguageMap, in.slots()), style: lb.Style})
			continue
		}

		authored := false
		for _, b := range in.Blocks.Blocks {
			if b.Slot == lb.Name {
				out = append(out, localizedBlock{slot: lb.Name, text: b.Text, style: lb.Style})
				authored = true
			}
		}
		if !authored {
			out = append(out, localizedBlock{slot: lb.Name, style: lb.Style})
		}
	}
	return out
}
