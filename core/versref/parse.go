package versref

import (
	"fmt"
	"regexp"
	"strings"
)

// A book code is one word, optionally preceded by a number ("1 John").
var reBookCode = regexp.MustCompile(`^(\d+\s)?[a-zA-Z0-9]+\s`)

// ParseBiblicalReference parses a reference such as "John 9:1-12, 36" into
// one Reference per normalized chapter clause.
func ParseBiblicalReference(q string, d Dialect) ([]Reference, error) {
	prefix := reBookCode.FindString(q)
	if prefix == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingBookCode, q)
	}
	book := strings.TrimSpace(prefix)
	query := strings.ReplaceAll(q[len(prefix):], " ", "")

	var (
		normalized string
		err        error
	)
	switch d {
	case DialectUS:
		normalized, err = NormalizeQueryUS(query)
	case DialectEU:
		normalized, err = NormalizeQueryEU(query)
	default:
		return nil, fmt.Errorf("%w: %q", ErrDialect, string(d))
	}
	if err != nil {
		return nil, err
	}

	parts := strings.Split(normalized, ";")
	refs := make([]Reference, 0, len(parts))
	for _, part := range parts {
		ref, err := parseClause(part)
		if err != nil {
			return nil, err
		}
		ref.BookCode = book
		refs = append(refs, ref)
	}
	return refs, nil
}

func parseClause(s string) (Reference, error) {
	c, err := clauseParser.ParseString("", s)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %q: %v", ErrNormalize, s, err)
	}

	from, err := ParseVerseNum(c.From)
	if err != nil {
		return Reference{}, err
	}
	to, err := ParseVerseNum(c.To)
	if err != nil {
		return Reference{}, err
	}

	return Reference{ChapterNum: c.Chapter, From: from, To: to}, nil
}
