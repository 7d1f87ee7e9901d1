// Package versref parses free-form scripture references such as
// "John 9:1-3, 6-12--12:3-6" into per-chapter verse ranges.
//
// Two dialects are understood. The US dialect separates chapter and verse
// with ":" and lists verses with ","; the EU dialect uses "," and ".".
// Both are first rewritten into one canonical form, "chapter,from-to;...",
// which is then parsed clause by clause.
package versref

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/v-bible/js-sdk/core/errors"
)

var (
	// ErrVerseNumber is returned when a verse token is neither digits with
	// optional letters nor the "*" wildcard.
	ErrVerseNumber = fmt.Errorf("failed to parse verse number: %w", apperrors.ErrInvalidInput)
	// ErrNormalize is returned when a query cannot be rewritten into the
	// canonical form.
	ErrNormalize = fmt.Errorf("failed to normalize verse query: %w", apperrors.ErrInvalidInput)
	// ErrMissingBookCode is returned when a reference has no leading book code.
	ErrMissingBookCode = fmt.Errorf("missing book code: %w", apperrors.ErrInvalidInput)
	// ErrDialect is returned for a dialect other than "us" or "eu".
	ErrDialect = fmt.Errorf("unknown dialect: %w", apperrors.ErrUnsupported)
)

// Dialect selects the separator convention of a reference.
type Dialect string

const (
	// DialectUS writes "John 9:1,12".
	DialectUS Dialect = "us"
	// DialectEU writes "John 9,1.12".
	DialectEU Dialect = "eu"
)

// ParseDialect converts a case-insensitive name to a Dialect.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(s))); d {
	case DialectUS, DialectEU:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrDialect, s)
	}
}

// IsValid reports whether d is a known dialect.
func (d Dialect) IsValid() bool {
	return d == DialectUS || d == DialectEU
}

// VerseInfo identifies a verse and an optional sub-verse part.
type VerseInfo struct {
	// Number is the verse number, or -1 for the "*" wildcard.
	Number int `json:"number"`
	// Order holds zero-based letter indexes of a suffix ("12bc" gives [1 2]).
	// It is [-1] when the verse has no suffix.
	Order []int `json:"order"`
}

// IsWildcard reports whether v stands for any verse.
func (v VerseInfo) IsWildcard() bool {
	return v.Number == -1
}

// String renders v back into its token form.
func (v VerseInfo) String() string {
	if v.IsWildcard() {
		return "*"
	}
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(v.Number))
	for _, o := range v.Order {
		if o >= 0 {
			sb.WriteByte(byte('a' + o))
		}
	}
	return sb.String()
}

// Reference is one chapter-scoped verse range.
type Reference struct {
	BookCode   string    `json:"bookCode"`
	ChapterNum int       `json:"chapterNum"`
	From       VerseInfo `json:"from"`
	To         VerseInfo `json:"to"`
}

// String renders r in the US dialect, for example "John 9:1-12".
func (r Reference) String() string {
	return fmt.Sprintf("%s %d:%s-%s", r.BookCode, r.ChapterNum, r.From, r.To)
}

// ParseVerseNum parses a verse token: digits with an optional letter suffix,
// or "*". Matching is case-insensitive.
func ParseVerseNum(s string) (VerseInfo, error) {
	if s == "" {
		return VerseInfo{}, fmt.Errorf("%w: %q", ErrVerseNumber, s)
	}
	tok, err := verseParser.ParseString("", strings.ToLower(s))
	if err != nil {
		return VerseInfo{}, fmt.Errorf("%w: %q: %v", ErrVerseNumber, s, err)
	}

	if tok.Wildcard {
		return VerseInfo{Number: -1, Order: []int{-1}}, nil
	}
	if tok.Letters == "" {
		return VerseInfo{Number: tok.Number, Order: []int{-1}}, nil
	}
	return VerseInfo{Number: tok.Number, Order: letterOrder(tok.Letters)}, nil
}

func letterOrder(s string) []int {
	order := make([]int, 0, len(s))
	for _, c := range s {
		order = append(order, int(c-'a'))
	}
	return order
}
