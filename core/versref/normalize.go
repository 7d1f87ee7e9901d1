package versref

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// A chapter number followed by an optional verse list. Only the first
	// verse of a list may be "*".
	reVerseQuery  = regexp.MustCompile(`(\d+)((,|:)[a-zA-Z0-9*]+(-[a-zA-Z0-9*]+)?(\s?(\.|,)\s?[a-zA-Z0-9]+(-[a-zA-Z0-9]+)?)*)?;?`)
	reVerseRange  = regexp.MustCompile(`([a-zA-Z0-9*]+)(-([a-zA-Z0-9*]+))?`)
	reChapRangeEU = regexp.MustCompile(`(\d+),([a-zA-Z0-9*]+)(-[a-zA-Z0-9*]+)?;--(\d+),([a-zA-Z0-9*]+-)?([a-zA-Z0-9*]+);?`)

	reNormalizedEU   = regexp.MustCompile(`^(\d+,[a-zA-Z0-9*]+-[a-zA-Z0-9*]+;?)+$`)
	reNormalizedUS   = regexp.MustCompile(`^(\d+:[a-zA-Z0-9*]+-[a-zA-Z0-9*]+;?)+$`)
	reMultipleChapUS = regexp.MustCompile(`^\d+(,\d+)*$`)
)

// NormalizeQueryEU rewrites an EU-dialect verse query (book code already
// removed) into the canonical "chapter,from-to;..." form without a trailing
// separator. "+" is accepted as a synonym for ".".
func NormalizeQueryEU(q string) (string, error) {
	q = strings.ReplaceAll(q, " ", "")
	q = strings.ReplaceAll(q, "+", ".")

	var sb strings.Builder
	for _, part := range strings.Split(q, ";") {
		sb.WriteString(normalizeVerseQuery(part))
	}

	out, err := normalizeChapRange(sb.String())
	if err != nil {
		return "", err
	}
	out = strings.TrimSuffix(out, ";")

	if !reNormalizedEU.MatchString(out) {
		return "", fmt.Errorf("%w: %q", ErrNormalize, q)
	}
	return out, nil
}

// NormalizeQueryUS rewrites a US-dialect verse query into the canonical form
// using ":" between chapter and verse. A bare list of chapters such as "9,12"
// is read as two whole chapters.
func NormalizeQueryUS(q string) (string, error) {
	q = strings.ReplaceAll(q, " ", "")

	if reMultipleChapUS.MatchString(q) {
		q = strings.ReplaceAll(q, ",", ";")
	}

	q = strings.ReplaceAll(q, "+", ",")
	q = strings.ReplaceAll(q, ",", ".")
	q = strings.ReplaceAll(q, ":", ",")

	eu, err := NormalizeQueryEU(q)
	if err != nil {
		return "", err
	}

	out := strings.ReplaceAll(eu, ",", ":")
	if !reNormalizedUS.MatchString(out) {
		return "", fmt.Errorf("%w: %q", ErrNormalize, q)
	}
	return out, nil
}

// normalizeVerseQuery expands every "chapter[,verses]" run in an EU query into
// "chapter,from-to;" clauses. Text between runs is kept as is.
func normalizeVerseQuery(q string) string {
	return reVerseQuery.ReplaceAllStringFunc(q, func(run string) string {
		m := reVerseQuery.FindStringSubmatch(run)
		chap := m[1]
		verses := strings.TrimPrefix(m[2], ",")

		var sb strings.Builder
		for _, tok := range strings.Split(verses, ".") {
			if tok == "" {
				continue
			}
			r := reVerseRange.FindStringSubmatch(tok)
			if r == nil {
				continue
			}
			from, to := r[1], r[3]
			if to == "" {
				to = from
			}
			fmt.Fprintf(&sb, "%s,%s-%s;", chap, from, to)
		}

		if sb.Len() == 0 {
			return chap + ",*-*;"
		}
		return sb.String()
	})
}

// normalizeChapRange expands "C1,v-x;--C2,y-v;" into C1 from v to the end,
// every chapter in between, and C2 from its start to v.
func normalizeChapRange(q string) (string, error) {
	var err error
	out := reChapRangeEU.ReplaceAllStringFunc(q, func(run string) string {
		if err != nil {
			return run
		}
		m := reChapRangeEU.FindStringSubmatch(run)
		fromVerse, toVerse := m[2], m[6]

		from, ferr := strconv.Atoi(m[1])
		to, terr := strconv.Atoi(m[4])
		if ferr != nil || terr != nil || from > to {
			err = fmt.Errorf("%w: chapter range %q", ErrNormalize, run)
			return run
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "%d,%s-*;", from, fromVerse)
		for i := from + 1; i < to; i++ {
			fmt.Fprintf(&sb, "%d,*-*;", i)
		}
		fmt.Fprintf(&sb, "%d,*-%s;", to, toVerse)
		return sb.String()
	})
	if err != nil {
		return "", err
	}
	return out, nil
}
