package testhelper

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

// Timestamp formats t the way the desktop application writes created_at.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func insert(t *testing.T, db *sqldb.DB, table string, values map[string]any) {
	t.Helper()

	query, args, err := db.Builder().Insert(table).SetMap(values).ToSql()
	if err != nil {
		t.Fatalf("testhelper: build insert into %s: %v", table, err)
	}
	if _, err := db.SQL().ExecContext(context.Background(), query, args...); err != nil {
		t.Fatalf("testhelper: insert into %s: %v", table, err)
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// SeedTemplate inserts a template. Empty ID and zero MaxLanguageCount get
// defaults.
func SeedTemplate(t *testing.T, db *sqldb.DB, tpl domain.Template) domain.Template {
	t.Helper()

	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	if tpl.Name == "" {
		tpl.Name = "template-" + tpl.ID[:8]
	}
	if tpl.MaxLanguageCount == 0 {
		tpl.MaxLanguageCount = domain.MaxLanguages
	}
	if tpl.DefinitionJSON == "" {
		tpl.DefinitionJSON = `[{"kind":"text","blocks":[{"name":"body"}]}]`
	}
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	insert(t, db, "templates", map[string]any{
		"id":              tpl.ID,
		"name":            tpl.Name,
		"max_lang_count":  tpl.MaxLanguageCount,
		"definition_json": tpl.DefinitionJSON,
		"created_at":      Timestamp(tpl.CreatedAt),
	})
	return tpl
}

// SeedPresentation inserts a presentation. TemplateID must reference an
// existing template. A non-zero LanguageSlots is stored in the slot-keyed
// object form.
func SeedPresentation(t *testing.T, db *sqldb.DB, p domain.Presentation) domain.Presentation {
	t.Helper()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Name == "" {
		p.Name = "presentation-" + p.ID[:8]
	}
	if p.Type == "" {
		p.Type = "kidase"
	}
	if len(p.LanguageMap) == 0 {
		p.LanguageMap = []string{"am", "en"}
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	var stored any = p.LanguageMap
	if p.LanguageSlots != (domain.SlotMap{}) {
		bySlot := map[string]string{}
		for i, code := range p.LanguageSlots {
			bySlot[fmt.Sprintf("lang%d", i+1)] = code
		}
		stored = bySlot
	}
	langMap, err := json.Marshal(stored)
	if err != nil {
		t.Fatalf("testhelper: marshal language map: %v", err)
	}
	var settings any
	if p.LanguageSettings != nil {
		raw, err := json.Marshal(p.LanguageSettings)
		if err != nil {
			t.Fatalf("testhelper: marshal language settings: %v", err)
		}
		settings = string(raw)
	}

	insert(t, db, "presentations", map[string]any{
		"id":                p.ID,
		"name":              p.Name,
		"type":              p.Type,
		"template_id":       p.TemplateID,
		"language_map":      string(langMap),
		"language_settings": settings,
		"is_active":         boolInt(p.IsActive),
		"is_primary":        boolInt(p.IsPrimary),
		"created_at":        Timestamp(p.CreatedAt),
	})
	return p
}

// SeedSlide inserts a slide.
func SeedSlide(t *testing.T, db *sqldb.DB, s domain.Slide) domain.Slide {
	t.Helper()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.BlocksJSON == "" {
		s.BlocksJSON = "[]"
	}

	insert(t, db, "slides", map[string]any{
		"id":                   s.ID,
		"presentation_id":      s.PresentationID,
		"slide_order":          s.SlideOrder,
		"line_id":              nullable(s.LineID),
		"title_json":           nullable(s.TitleJSON),
		"blocks_json":          s.BlocksJSON,
		"footer_json":          nullable(s.FooterJSON),
		"notes":                nullable(s.Notes),
		"is_dynamic":           boolInt(s.IsDynamic),
		"is_disabled":          boolInt(s.IsDisabled),
		"template_override_id": nullable(s.TemplateOverrideID),
	})
	return s
}

// SeedVariable inserts a variable with per-slot values and a legacy value.
func SeedVariable(t *testing.T, db *sqldb.DB, presentationID, name, legacy string, slots domain.Slots) string {
	t.Helper()

	id := uuid.NewString()
	insert(t, db, "variables", map[string]any{
		"id":              id,
		"presentation_id": presentationID,
		"name":            name,
		"value":           legacy,
		"value_lang1":     slots[0],
		"value_lang2":     slots[1],
		"value_lang3":     slots[2],
		"value_lang4":     slots[3],
	})
	return id
}

// SeedRule inserts a rule definition.
func SeedRule(t *testing.T, db *sqldb.DB, r domain.RuleDefinition) domain.RuleDefinition {
	t.Helper()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Name == "" {
		r.Name = "rule-" + r.ID[:8]
	}
	if r.RuleJSON == "" {
		r.RuleJSON = "{}"
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	insert(t, db, "rule_definitions", map[string]any{
		"id":              r.ID,
		"name":            r.Name,
		"scope":           string(r.Scope),
		"presentation_id": nullable(r.PresentationID),
		"slide_id":        nullable(r.SlideID),
		"rule_json":       r.RuleJSON,
		"gitsawe_id":      nullable(r.GitsaweID),
		"is_enabled":      boolInt(r.IsEnabled),
		"created_at":      Timestamp(r.CreatedAt),
	})
	return r
}

// SeedGitsawe inserts a gitsawe. Empty ID and LineID get unique values.
func SeedGitsawe(t *testing.T, db *sqldb.DB, g domain.Gitsawe) domain.Gitsawe {
	t.Helper()

	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.LineID == "" {
		g.LineID = "line-" + uuid.NewString()[:8]
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	insert(t, db, "gitsawes", map[string]any{
		"id":                         g.ID,
		"line_id":                    g.LineID,
		"message_st_paul":            nullable(g.MessageStPaul),
		"message_apostle":            nullable(g.MessageApostle),
		"message_book_of_acts":       nullable(g.MessageBookOfActs),
		"misbak":                     nullable(g.Misbak),
		"wengel":                     nullable(g.Wengel),
		"kidase_type":                nullable(g.KidaseType),
		"evangelist":                 nullable(g.Evangelist),
		"message_apostle_evangelist": nullable(g.MessageApostleEvangelist),
		"gitsawe_type":               nullable(g.GitsaweType),
		"priority":                   g.Priority,
		"created_at":                 Timestamp(g.CreatedAt),
	})
	return g
}

// SeedVerse inserts a verse.
func SeedVerse(t *testing.T, db *sqldb.DB, v domain.Verse) domain.Verse {
	t.Helper()

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}

	insert(t, db, "verses", map[string]any{
		"id":          v.ID,
		"segment_id":  v.SegmentID,
		"verse_order": v.VerseOrder,
		"title_lang1": nullable(v.Titles[0]),
		"title_lang2": nullable(v.Titles[1]),
		"title_lang3": nullable(v.Titles[2]),
		"title_lang4": nullable(v.Titles[3]),
		"text_lang1":  nullable(v.Texts[0]),
		"text_lang2":  nullable(v.Texts[1]),
		"text_lang3":  nullable(v.Texts[2]),
		"text_lang4":  nullable(v.Texts[3]),
		"created_at":  Timestamp(v.CreatedAt),
	})
	return v
}
