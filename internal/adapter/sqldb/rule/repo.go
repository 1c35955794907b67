// Package rule reads rule definitions.
package rule

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

var columns = []string{
	"id", "name", "scope", "presentation_id", "slide_id",
	"rule_json", "gitsawe_id", "is_enabled", "created_at",
}

// Repo provides rule definition reads.
type Repo struct {
	db *sqldb.DB
}

// New creates a new rule repository.
func New(db *sqldb.DB) *Repo {
	return &Repo{db: db}
}

// ListForPresentation returns the presentation-scoped rules of a presentation
// and the slide-scoped rules of the given slides, ordered by id. Disabled
// rules are included; the matcher drops them.
func (r *Repo) ListForPresentation(ctx context.Context, presentationID string, slideIDs []string) ([]domain.RuleDefinition, error) {
	where := sq.Or{
		sq.And{
			sq.Eq{"scope": string(domain.RuleScopePresentation)},
			sq.Eq{"presentation_id": presentationID},
		},
	}
	if len(slideIDs) > 0 {
		where = append(where, sq.And{
			sq.Eq{"scope": string(domain.RuleScopeSlide)},
			sq.Eq{"slide_id": slideIDs},
		})
	}

	query, args, err := r.db.Builder().
		Select(columns...).
		From("rule_definitions").
		Where(where).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build rules query: %w", err)
	}

	rows, err := r.db.QuerierFromCtx(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	out := []domain.RuleDefinition{}
	for rows.Next() {
		def, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	return out, nil
}

func scanRule(rows *sql.Rows) (domain.RuleDefinition, error) {
	var (
		def                             domain.RuleDefinition
		scope, created                  string
		presentationID, slideID, gitsID sql.NullString
		enabled                         int64
	)
	if err := rows.Scan(&def.ID, &def.Name, &scope, &presentationID, &slideID,
		&def.RuleJSON, &gitsID, &enabled, &created); err != nil {
		return domain.RuleDefinition{}, fmt.Errorf("scan rule: %w", err)
	}

	ts, err := sqldb.ParseTime(created)
	if err != nil {
		return domain.RuleDefinition{}, fmt.Errorf("rule %s created_at: %w", def.ID, err)
	}

	def.Scope = domain.RuleScope(scope)
	def.PresentationID = sqldb.Str(presentationID)
	def.SlideID = sqldb.Str(slideID)
	def.GitsaweID = sqldb.Str(gitsID)
	def.IsEnabled = enabled != 0
	def.CreatedAt = ts
	return def, nil
}
