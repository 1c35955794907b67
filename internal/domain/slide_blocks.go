package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultVersesSlot is the layout block that expands into verse pairs.
const DefaultVersesSlot = "verses"

// AuthoredBlock is one block of authored slide content.
type AuthoredBlock struct {
	Slot string
	Text Localized
}

// DynamicSpec is the resolution metadata carried by a dynamic slide.
type DynamicSpec struct {
	// Fields maps a layout slot to the gitsawe field that fills it.
	// Slots named after a gitsawe field are filled without an entry here.
	Fields        map[string]GitsaweField
	Verses        bool
	VersesSlot    string
	RequireVerses bool
}

// VersesSlotName returns the slot that expands into verse pairs.
func (d DynamicSpec) VersesSlotName() string {
	if d.VersesSlot == "" {
		return DefaultVersesSlot
	}
	return d.VersesSlot
}

// SlideBlocks is the decoded form of a slide's blocks_json.
type SlideBlocks struct {
	Kind    string
	Blocks  []AuthoredBlock
	Dynamic DynamicSpec
}

// KindFor returns the explicit kind, or derives one from the content shape.
func (b SlideBlocks) KindFor(dynamic bool) string {
	switch {
	case b.Kind != "":
		return b.Kind
	case !dynamic:
		return SlideKindText
	case b.Dynamic.Verses:
		return SlideKindVerses
	default:
		return SlideKindReading
	}
}

// VerseSequenced reports whether a slide of this kind expands verses.
func (b SlideBlocks) VerseSequenced(kind string) bool {
	return kind == SlideKindVerses || b.Dynamic.Verses
}

type rawBlock struct {
	Slot string          `json:"slot"`
	Name string          `json:"name"`
	Text json.RawMessage `json:"text"`
}

type rawDynamic struct {
	Fields        map[string]string `json:"fields"`
	Verses        bool              `json:"verses"`
	VersesSlot    string            `json:"versesSlot"`
	RequireVerses bool              `json:"requireVerses"`
}

type rawSlideBlocks struct {
	Kind    string      `json:"kind"`
	Blocks  []rawBlock  `json:"blocks"`
	Dynamic *rawDynamic `json:"dynamic"`
}

// ParseSlideBlocks decodes blocks_json. It accepts either an array of blocks
// or an object carrying kind, blocks and dynamic metadata.
func ParseSlideBlocks(raw string, languageMap []string, slots SlotMap) (SlideBlocks, error) {
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return SlideBlocks{}, nil
	}

	var doc rawSlideBlocks
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &doc.Blocks); err != nil {
			return SlideBlocks{}, fmt.Errorf("blocks_json: %w", err)
		}
	case '{':
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return SlideBlocks{}, fmt.Errorf("blocks_json: %w", err)
		}
	default:
		return SlideBlocks{}, NewValidationError("blocks_json", "must be a JSON array or object")
	}

	out := SlideBlocks{Kind: doc.Kind}
	for _, rb := range doc.Blocks {
		slot := rb.Slot
		if slot == "" {
			slot = rb.Name
		}
		if slot == "" {
			slot = "body"
		}
		out.Blocks = append(out.Blocks, AuthoredBlock{Slot: slot, Text: ParseLocalized(rb.Text, languageMap, slots)})
	}

	if doc.Dynamic != nil {
		out.Dynamic = DynamicSpec{
			Verses:        doc.Dynamic.Verses,
			VersesSlot:    doc.Dynamic.VersesSlot,
			RequireVerses: doc.Dynamic.RequireVerses,
		}
		if len(doc.Dynamic.Fields) > 0 {
			out.Dynamic.Fields = make(map[string]GitsaweField, len(doc.Dynamic.Fields))
			for slot, name := range doc.Dynamic.Fields {
				field := GitsaweField(name)
				if !field.IsValid() {
					return SlideBlocks{}, NewValidationError("blocks_json.dynamic.fields."+slot,
						fmt.Sprintf("unknown gitsawe field %q", name))
				}
				out.Dynamic.Fields[slot] = field
			}
		}
	}

	return out, nil
}
