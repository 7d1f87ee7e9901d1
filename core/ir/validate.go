package ir

import (
	"errors"
	"fmt"
	"unicode/utf8"

	apperrors "github.com/v-bible/js-sdk/core/errors"
)

// newValidationError reports message against the document path, for example
// "marks[3].endOffset". The result wraps apperrors.ErrInvalidInput.
func newValidationError(path, message string) error {
	return apperrors.NewValidation(path, message)
}

// ValidateDocument validates a Document and returns all validation errors.
//
// Validation is advisory. Renderers accept documents that fail validation and
// degrade gracefully (offsets are clamped, unknown kinds are skipped); this is
// for tooling that wants to report suspicious input.
func ValidateDocument(d *Document) []error {
	var errs []error
	if d == nil {
		return errs
	}

	verses := make(map[string]Verse, len(d.Verses))
	for i, v := range d.Verses {
		path := fmt.Sprintf("verses[%d]", i)
		if v.ID == "" {
			errs = append(errs, newValidationError(path, "ID is required"))
			continue
		}
		if _, dup := verses[v.ID]; dup {
			errs = append(errs, newValidationError(path, fmt.Sprintf("duplicate verse ID %q", v.ID)))
		}
		verses[v.ID] = v
		if v.ParagraphNumber < 0 {
			errs = append(errs, newValidationError(path+".paragraphNumber", "ParagraphNumber cannot be negative"))
		}
	}

	headings := make(map[string]Heading, len(d.Headings))
	for i, h := range d.Headings {
		path := fmt.Sprintf("headings[%d]", i)
		if h.ID == "" {
			errs = append(errs, newValidationError(path, "ID is required"))
		} else {
			headings[h.ID] = h
		}
		if _, ok := verses[h.VerseID]; !ok {
			errs = append(errs, newValidationError(path+".verseId",
				fmt.Sprintf("unknown verse %q", h.VerseID)))
		}
		if h.Level < 0 {
			errs = append(errs, newValidationError(path+".level", "Level cannot be negative"))
		}
	}

	for i, m := range d.Marks {
		path := fmt.Sprintf("marks[%d]", i)
		for _, err := range ValidateMark(m) {
			var ve *apperrors.ValidationError
			if errors.As(err, &ve) {
				errs = append(errs, newValidationError(path+"."+ve.Field, ve.Message))
			} else {
				errs = append(errs, newValidationError(path, err.Error()))
			}
		}

		var target string
		switch m.TargetType {
		case TargetVerse:
			v, ok := verses[m.TargetID]
			if !ok {
				errs = append(errs, newValidationError(path+".targetId",
					fmt.Sprintf("unknown verse %q", m.TargetID)))
				continue
			}
			target = v.Text
		case TargetHeading:
			h, ok := headings[m.TargetID]
			if !ok {
				errs = append(errs, newValidationError(path+".targetId",
					fmt.Sprintf("unknown heading %q", m.TargetID)))
				continue
			}
			target = h.Text
		default:
			continue
		}
		if n := utf8.RuneCountInString(target); m.EndOffset > n {
			errs = append(errs, newValidationError(path+".endOffset",
				fmt.Sprintf("offset %d is past the end of the target text (%d runes)", m.EndOffset, n)))
		}
	}

	for i, p := range d.Psalms {
		if p.ChapterID == "" {
			errs = append(errs, newValidationError(fmt.Sprintf("psalms[%d].chapterId", i), "ChapterID is required"))
		}
	}

	return errs
}

// ValidateMark validates a single Mark in isolation.
func ValidateMark(m Mark) []error {
	var errs []error

	if !m.Kind.IsValid() {
		errs = append(errs, newValidationError("kind",
			fmt.Sprintf("invalid MarkKind: %d", int(m.Kind))))
	}

	if !m.TargetType.IsValid() {
		errs = append(errs, newValidationError("targetType",
			fmt.Sprintf("invalid TargetType: %d", int(m.TargetType))))
	}

	if m.StartOffset < 0 {
		errs = append(errs, newValidationError("startOffset", "StartOffset cannot be negative"))
	}

	if m.EndOffset < m.StartOffset {
		errs = append(errs, newValidationError("endOffset", "EndOffset cannot be before StartOffset"))
	}

	if m.SortOrder < 0 {
		errs = append(errs, newValidationError("sortOrder", "SortOrder cannot be negative"))
	}

	return errs
}
