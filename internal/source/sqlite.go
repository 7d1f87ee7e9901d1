package source

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	apperrors "github.com/v-bible/js-sdk/core/errors"
	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/sqlite"
)

// Table layout read by LoadSQLite. Only verses is required. Rows are read in
// rowid order, which is the order they were inserted.
const (
	queryVerses = `SELECT id, number, COALESCE(label, ''), text, chapter_id,
	sub_verse_index, paragraph_index, paragraph_number, is_poetry
	FROM verses`
	queryMarks = `SELECT id, kind, content, COALESCE(label, ''), sort_order,
	start_offset, end_offset, target_type, target_id, chapter_id
	FROM marks`
	queryHeadings = `SELECT h.id, h.text, h.level, h.verse_id FROM headings h`
	queryPsalms   = `SELECT id, text, chapter_id FROM psalms`
)

// LoadSQLite reads a document from the database at path, opened read-only.
// A non-empty chapterID restricts every table to that chapter.
func LoadSQLite(ctx context.Context, path, chapterID string) (*ir.Document, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, apperrors.NewIO("open database", path, err)
	}
	defer db.Close()

	ok, err := sqlite.TableExists(ctx, db, "verses")
	if err != nil {
		return nil, apperrors.NewIO("read schema", path, err)
	}
	if !ok {
		return nil, apperrors.NewNotFound("table", "verses")
	}

	var doc ir.Document
	where, args := chapterFilter("chapter_id", chapterID)
	if doc.Verses, err = queryRows(ctx, db, queryVerses+where+" ORDER BY rowid", args, scanVerse); err != nil {
		return nil, apperrors.Wrapf(err, "reading verses from %s", path)
	}

	if ok, err = sqlite.TableExists(ctx, db, "marks"); err != nil {
		return nil, apperrors.NewIO("read schema", path, err)
	} else if ok {
		if doc.Marks, err = queryRows(ctx, db, queryMarks+where+" ORDER BY rowid", args, scanMark); err != nil {
			return nil, apperrors.Wrapf(err, "reading marks from %s", path)
		}
	}

	if ok, err = sqlite.TableExists(ctx, db, "headings"); err != nil {
		return nil, apperrors.NewIO("read schema", path, err)
	} else if ok {
		q := queryHeadings
		if chapterID != "" {
			q += " JOIN verses v ON v.id = h.verse_id WHERE v.chapter_id = ?"
		}
		if doc.Headings, err = queryRows(ctx, db, q+" ORDER BY h.rowid", args, scanHeading); err != nil {
			return nil, apperrors.Wrapf(err, "reading headings from %s", path)
		}
	}

	if ok, err = sqlite.TableExists(ctx, db, "psalms"); err != nil {
		return nil, apperrors.NewIO("read schema", path, err)
	} else if ok {
		if doc.Psalms, err = queryRows(ctx, db, queryPsalms+where+" ORDER BY rowid", args, scanPsalm); err != nil {
			return nil, apperrors.Wrapf(err, "reading psalms from %s", path)
		}
	}

	return &doc, nil
}

func chapterFilter(column, chapterID string) (string, []any) {
	if chapterID == "" {
		return "", nil
	}
	return " WHERE " + column + " = ?", []any{chapterID}
}

type scanner interface {
	Scan(dest ...any) error
}

func queryRows[T any](ctx context.Context, db *sql.DB, query string, args []any, scan func(scanner) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func scanVerse(s scanner) (ir.Verse, error) {
	var v ir.Verse
	err := s.Scan(&v.ID, &v.Number, &v.Label, &v.Text, &v.ChapterID,
		&v.SubVerseIndex, &v.ParagraphIndex, &v.ParagraphNumber, &v.IsPoetry)
	return v, err
}

func scanMark(s scanner) (ir.Mark, error) {
	var (
		m          ir.Mark
		kind       string
		targetType string
	)
	err := s.Scan(&m.ID, &kind, &m.Content, &m.Label, &m.SortOrder,
		&m.StartOffset, &m.EndOffset, &targetType, &m.TargetID, &m.ChapterID)
	if err != nil {
		return m, err
	}
	if m.Kind, err = parseKind(kind); err != nil {
		return m, err
	}
	m.TargetType, err = parseTargetType(targetType)
	return m, err
}

func scanHeading(s scanner) (ir.Heading, error) {
	var h ir.Heading
	err := s.Scan(&h.ID, &h.Text, &h.Level, &h.VerseID)
	return h, err
}

func scanPsalm(s scanner) (ir.PsalmMetadata, error) {
	var p ir.PsalmMetadata
	err := s.Scan(&p.ID, &p.Text, &p.ChapterID)
	return p, err
}

// parseKind accepts a kind name, its number, or nothing.
func parseKind(s string) (ir.MarkKind, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ir.MarkUnspecified, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return ir.MarkKind(n), nil
	}
	k, err := ir.ParseMarkKind(s)
	if err != nil {
		return k, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return k, nil
}

func parseTargetType(s string) (ir.TargetType, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ir.TargetUnspecified, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return ir.TargetType(n), nil
	}
	t, err := ir.ParseTargetType(s)
	if err != nil {
		return t, apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
	}
	return t, nil
}
