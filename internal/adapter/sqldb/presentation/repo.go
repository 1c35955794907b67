// Package presentation reads presentations with their slides and variables.
package presentation

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

var presentationColumns = []string{
	"id", "name", "type", "template_id", "language_map", "language_settings",
	"is_active", "is_primary", "created_at",
}

var slideColumns = []string{
	"id", "presentation_id", "slide_order", "line_id", "title_json", "blocks_json",
	"footer_json", "notes", "is_dynamic", "is_disabled", "template_override_id",
}

var variableColumns = []string{
	"id", "presentation_id", "name", "value",
	"value_lang1", "value_lang2", "value_lang3", "value_lang4",
}

// Repo provides presentation, slide and variable reads.
type Repo struct {
	db *sqldb.DB
}

// New creates a new presentation repository.
func New(db *sqldb.DB) *Repo {
	return &Repo{db: db}
}

// GetByID returns a presentation by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Presentation, error) {
	query, args, err := r.db.Builder().
		Select(presentationColumns...).
		From("presentations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build presentation query: %w", err)
	}

	row := r.db.QuerierFromCtx(ctx).QueryRowContext(ctx, query, args...)
	p, err := scanPresentation(row)
	if err != nil {
		return nil, sqldb.MapError(err, "presentation", id)
	}
	return &p, nil
}

// ListActive returns the active presentations, primary ones first, then by
// creation time and id.
func (r *Repo) ListActive(ctx context.Context) ([]domain.Presentation, error) {
	query, args, err := r.db.Builder().
		Select(presentationColumns...).
		From("presentations").
		Where(sq.NotEq{"is_active": 0}).
		OrderBy("is_primary DESC", "created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build presentations query: %w", err)
	}

	rows, err := r.db.QuerierFromCtx(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active presentations: %w", err)
	}
	defer rows.Close()

	out := []domain.Presentation{}
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list active presentations: %w", err)
	}
	return out, nil
}

// ListSlides returns every slide of a presentation, disabled ones included,
// ordered by slide order and id.
func (r *Repo) ListSlides(ctx context.Context, presentationID string) ([]domain.Slide, error) {
	query, args, err := r.db.Builder().
		Select(slideColumns...).
		From("slides").
		Where(sq.Eq{"presentation_id": presentationID}).
		OrderBy("slide_order", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build slides query: %w", err)
	}

	rows, err := r.db.QuerierFromCtx(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	out := []domain.Slide{}
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	return out, nil
}

// ListVariables returns the variables of a presentation ordered by name,
// with their fixed value slots mapped onto the bound languages.
func (r *Repo) ListVariables(ctx context.Context, presentationID string, bound domain.SlotMap) ([]domain.Variable, error) {
	query, args, err := r.db.Builder().
		Select(variableColumns...).
		From("variables").
		Where(sq.Eq{"presentation_id": presentationID}).
		OrderBy("name", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build variables query: %w", err)
	}

	rows, err := r.db.QuerierFromCtx(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	defer rows.Close()

	out := []domain.Variable{}
	for rows.Next() {
		var (
			v      domain.Variable
			legacy string
			slots  domain.Slots
		)
		if err := rows.Scan(&v.ID, &v.PresentationID, &v.Name, &legacy,
			&slots[0], &slots[1], &slots[2], &slots[3]); err != nil {
			return nil, fmt.Errorf("scan variable: %w", err)
		}
		v.Values = variableValues(legacy, slots, bound)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list variables: %w", err)
	}
	return out, nil
}

// variableValues converts the persisted slots to a language mapping. Rows
// written before per-language values existed carry only the single value
// column; it fills the first bound slot.
func variableValues(legacy string, slots domain.Slots, bound domain.SlotMap) domain.Localized {
	if slots == (domain.Slots{}) && legacy != "" {
		for i, lang := range bound {
			if lang != "" {
				slots[i] = legacy
				break
			}
		}
	}
	return slots.Localize(bound)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPresentation(row scanner) (domain.Presentation, error) {
	var (
		p                domain.Presentation
		langMap, created string
		settings         sql.NullString
		active, primary  int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Type, &p.TemplateID, &langMap, &settings,
		&active, &primary, &created); err != nil {
		return domain.Presentation{}, err
	}

	languages, slots, err := ParseLanguageMap(langMap)
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("presentation %s: %w", p.ID, err)
	}
	langSettings, err := parseLanguageSettings(sqldb.Str(settings))
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("presentation %s: %w", p.ID, err)
	}
	ts, err := sqldb.ParseTime(created)
	if err != nil {
		return domain.Presentation{}, fmt.Errorf("presentation %s created_at: %w", p.ID, err)
	}

	p.LanguageMap = languages
	p.LanguageSlots = slots
	p.LanguageSettings = langSettings
	p.IsActive = active != 0
	p.IsPrimary = primary != 0
	p.CreatedAt = ts
	return p, nil
}

func scanSlide(row scanner) (domain.Slide, error) {
	var (
		s                                        domain.Slide
		lineID, title, footer, notes, overrideID sql.NullString
		dynamic, disabled                        int64
	)
	if err := row.Scan(&s.ID, &s.PresentationID, &s.SlideOrder, &lineID, &title, &s.BlocksJSON,
		&footer, &notes, &dynamic, &disabled, &overrideID); err != nil {
		return domain.Slide{}, fmt.Errorf("scan slide: %w", err)
	}

	s.LineID = sqldb.Str(lineID)
	s.TitleJSON = sqldb.Str(title)
	s.FooterJSON = sqldb.Str(footer)
	s.Notes = sqldb.Str(notes)
	s.TemplateOverrideID = sqldb.Str(overrideID)
	s.IsDynamic = dynamic != 0
	s.IsDisabled = disabled != 0
	return s, nil
}
