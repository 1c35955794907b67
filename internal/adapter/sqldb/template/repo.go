// Package template reads slide templates.
package template

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

var columns = []string{"id", "name", "max_lang_count", "definition_json", "created_at"}

// Repo provides template reads.
type Repo struct {
	db *sqldb.DB
}

// New creates a new template repository.
func New(db *sqldb.DB) *Repo {
	return &Repo{db: db}
}

// GetByIDs returns the templates with the given ids ordered by id. Unknown
// ids are simply absent from the result.
func (r *Repo) GetByIDs(ctx context.Context, ids []string) ([]domain.Template, error) {
	if len(ids) == 0 {
		return []domain.Template{}, nil
	}

	query, args, err := r.db.Builder().
		Select(columns...).
		From("templates").
		Where(sq.Eq{"id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build templates query: %w", err)
	}

	rows, err := r.db.QuerierFromCtx(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get templates: %w", err)
	}
	defer rows.Close()

	out := []domain.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get templates: %w", err)
	}
	return out, nil
}

func scanTemplate(rows *sql.Rows) (domain.Template, error) {
	var (
		t       domain.Template
		created string
	)
	if err := rows.Scan(&t.ID, &t.Name, &t.MaxLanguageCount, &t.DefinitionJSON, &created); err != nil {
		return domain.Template{}, fmt.Errorf("scan template: %w", err)
	}
	ts, err := sqldb.ParseTime(created)
	if err != nil {
		return domain.Template{}, fmt.Errorf("template %s created_at: %w", t.ID, err)
	}
	t.CreatedAt = ts
	return t, nil
}
