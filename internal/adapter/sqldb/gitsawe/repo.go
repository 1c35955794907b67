// Package gitsawe reads the gitsawe and verse reference data.
package gitsawe

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/YaredDejene/kidase-presentation/internal/adapter/sqldb"
	"github.com/YaredDejene/kidase-presentation/internal/domain"
)

var gitsaweColumns = []string{
	"id", "line_id", "message_st_paul", "message_apostle", "message_book_of_acts",
	"misbak", "wengel", "kidase_type", "evangelist", "message_apostle_evangelist",
	"gitsawe_type", "priority", "created_at",
}

var verseColumns = []string{
	"id", "segment_id", "verse_order",
	"title_lang1", "title_lang2", "title_lang3", "title_lang4",
	"text_lang1", "text_lang2", "text_lang3", "text_lang4",
	"created_at",
}

// Repo provides gitsawe and verse reads.
type Repo struct {
	db *sqldb.DB
}

// New creates a new gitsawe repository.
func New(db *sqldb.DB) *Repo {
	return &Repo{db: db}
}

// GetByIDs returns the gitsawes with the given ids ordered by id. Unknown
// ids are absent from the result; callers detect dangling references.
func (r *Repo) GetByIDs(ctx context.Context, ids []string) ([]domain.Gitsawe, error) {
	if len(ids) == 0 {
		return []domain.Gitsawe{}, nil
	}

	query, args, err := r.db.Builder().
		Select(gitsaweColumns...).
		From("gitsawes").
		Where(sq.Eq{"id": ids}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build gitsawes query: %w", err)
	}

	rows, err := r.db.QuerierFromCtx(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get gitsawes: %w", err)
	}
	defer rows.Close()

	out := []domain.Gitsawe{}
	for rows.Next() {
		g, err := scanGitsawe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get gitsawes: %w", err)
	}
	return out, nil
}

// ListVersesBySegments returns the verses of the given segments ordered by
// segment, verse order and id.
func (r *Repo) ListVersesBySegments(ctx context.Context, segmentIDs []string) ([]domain.Verse, error) {
	if len(segmentIDs) == 0 {
		return []domain.Verse{}, nil
	}

	query, args, err := r.db.Builder().
		Select(verseColumns...).
		From("verses").
		Where(sq.Eq{"segment_id": segmentIDs}).
		OrderBy("segment_id", "verse_order", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build verses query: %w", err)
	}

	rows, err := r.db.QuerierFromCtx(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list verses: %w", err)
	}
	defer rows.Close()

	out := []domain.Verse{}
	for rows.Next() {
		v, err := scanVerse(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list verses: %w", err)
	}
	return out, nil
}

func scanGitsawe(rows *sql.Rows) (domain.Gitsawe, error) {
	var (
		g       domain.Gitsawe
		created string
		text    [9]sql.NullString
	)
	if err := rows.Scan(&g.ID, &g.LineID,
		&text[0], &text[1], &text[2], &text[3], &text[4], &text[5], &text[6], &text[7], &text[8],
		&g.Priority, &created); err != nil {
		return domain.Gitsawe{}, fmt.Errorf("scan gitsawe: %w", err)
	}

	ts, err := sqldb.ParseTime(created)
	if err != nil {
		return domain.Gitsawe{}, fmt.Errorf("gitsawe %s created_at: %w", g.ID, err)
	}

	g.MessageStPaul = sqldb.Str(text[0])
	g.MessageApostle = sqldb.Str(text[1])
	g.MessageBookOfActs = sqldb.Str(text[2])
	g.Misbak = sqldb.Str(text[3])
	g.Wengel = sqldb.Str(text[4])
	g.KidaseType = sqldb.Str(text[5])
	g.Evangelist = sqldb.Str(text[6])
	g.MessageApostleEvangelist = sqldb.Str(text[7])
	g.GitsaweType = sqldb.Str(text[8])
	g.CreatedAt = ts
	return g, nil
}

func scanVerse(rows *sql.Rows) (domain.Verse, error) {
	var (
		v             domain.Verse
		created       string
		titles, texts [domain.MaxLanguages]sql.NullString
	)
	if err := rows.Scan(&v.ID, &v.SegmentID, &v.VerseOrder,
		&titles[0], &titles[1], &titles[2], &titles[3],
		&texts[0], &texts[1], &texts[2], &texts[3],
		&created); err != nil {
		return domain.Verse{}, fmt.Errorf("scan verse: %w", err)
	}

	ts, err := sqldb.ParseTime(created)
	if err != nil {
		return domain.Verse{}, fmt.Errorf("verse %s created_at: %w", v.ID, err)
	}

	for i := range domain.MaxLanguages {
		v.Titles[i] = sqldb.Str(titles[i])
		v.Texts[i] = sqldb.Str(texts[i])
	}
	v.CreatedAt = ts
	return v, nil
}
