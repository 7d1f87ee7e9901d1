package ir

// types.go - Render input types
// Every record here is an immutable input for a single render call. Packages that
// rewrite offsets or content work on copies and never write back into a Document.

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MarkKind identifies what a mark annotates. The numeric order is significant:
// the footnote appendix sorts by kind before sort order.
type MarkKind int

// Mark kind constants.
const (
	MarkUnspecified MarkKind = iota
	MarkFootnote
	MarkReference
	MarkWordsOfJesus
)

var markKindNames = map[MarkKind]string{
	MarkUnspecified:  "UNSPECIFIED",
	MarkFootnote:     "FOOTNOTE",
	MarkReference:    "REFERENCE",
	MarkWordsOfJesus: "WORDS_OF_JESUS",
}

// MarkKinds lists every known kind in numeric order.
var MarkKinds = []MarkKind{MarkUnspecified, MarkFootnote, MarkReference, MarkWordsOfJesus}

// IsValid returns true if the kind is one of the known kinds.
func (k MarkKind) IsValid() bool {
	_, ok := markKindNames[k]
	return ok
}

func (k MarkKind) String() string {
	if name, ok := markKindNames[k]; ok {
		return name
	}
	return "MarkKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseMarkKind parses a kind name. The MARK_KIND_ prefix used by protobuf
// exports is accepted.
func ParseMarkKind(s string) (MarkKind, error) {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "MARK_KIND_")
	for k, n := range markKindNames {
		if n == name {
			return k, nil
		}
	}
	return MarkUnspecified, fmt.Errorf("unknown mark kind: %q", s)
}

// MarshalJSON encodes the kind by name.
func (k MarkKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts either the kind name or its number.
func (k *MarkKind) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, func(s string) (int, error) {
		kind, err := ParseMarkKind(s)
		return int(kind), err
	})
	if err != nil {
		return err
	}
	*k = MarkKind(v)
	return nil
}

// TargetType identifies which kind of entity a mark is anchored to.
type TargetType int

// Target type constants.
const (
	TargetUnspecified TargetType = iota
	TargetVerse
	TargetHeading
)

var targetTypeNames = map[TargetType]string{
	TargetUnspecified: "UNSPECIFIED",
	TargetVerse:       "VERSE",
	TargetHeading:     "HEADING",
}

// IsValid returns true if the target type is one of the known types.
func (t TargetType) IsValid() bool {
	_, ok := targetTypeNames[t]
	return ok
}

func (t TargetType) String() string {
	if name, ok := targetTypeNames[t]; ok {
		return name
	}
	return "TargetType(" + strconv.Itoa(int(t)) + ")"
}

// ParseTargetType parses a target type name. The MARK_TARGET_TYPE_ prefix is accepted.
func ParseTargetType(s string) (TargetType, error) {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(s)), "MARK_TARGET_TYPE_")
	for t, n := range targetTypeNames {
		if n == name {
			return t, nil
		}
	}
	return TargetUnspecified, fmt.Errorf("unknown target type: %q", s)
}

// MarshalJSON encodes the target type by name.
func (t TargetType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts either the target type name or its number.
func (t *TargetType) UnmarshalJSON(data []byte) error {
	v, err := unmarshalEnum(data, func(s string) (int, error) {
		tt, err := ParseTargetType(s)
		return int(tt), err
	})
	if err != nil {
		return err
	}
	*t = TargetType(v)
	return nil
}

func unmarshalEnum(data []byte, parse func(string) (int, error)) (int, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return parse(name)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return 0, fmt.Errorf("enum must be a string or a number: %s", data)
	}
	return n, nil
}

// Mark is a stand-off annotation over the text of a verse or heading.
type Mark struct {
	// ID is opaque and only kept for traceability.
	ID string `json:"id"`

	// Kind selects the label renderer.
	Kind MarkKind `json:"kind"`

	// Content is the footnote body, reference body or highlighted quotation.
	Content string `json:"content"`

	// Label is an optional display label supplied by the source.
	Label string `json:"label,omitempty"`

	// SortOrder is the zero-based ordinal among marks of the same kind and target.
	SortOrder int `json:"sortOrder"`

	// StartOffset and EndOffset form the half-open rune range [start, end)
	// into the target text. Equal offsets denote a point annotation.
	StartOffset int `json:"startOffset"`
	EndOffset   int `json:"endOffset"`

	// TargetType and TargetID name the verse or heading the mark applies to.
	TargetType TargetType `json:"targetType"`
	TargetID   string     `json:"targetId"`

	// ChapterID namespaces footnote anchors across a rendered document.
	ChapterID string `json:"chapterId"`
}

// IsZeroWidth reports whether the mark is a point annotation.
func (m Mark) IsZeroWidth() bool {
	return m.StartOffset == m.EndOffset
}

// Targets reports whether the mark is anchored to the given entity.
func (m Mark) Targets(tt TargetType, id string) bool {
	return m.TargetType == tt && m.TargetID == id
}

// Verse is one physical verse of text.
type Verse struct {
	ID     string `json:"id"`
	Number int    `json:"number"`

	// Label is the display label from the source. It is informational only;
	// verse-number prefixes use Number.
	Label string `json:"label,omitempty"`

	// Text is the raw, un-annotated verse text.
	Text      string `json:"text"`
	ChapterID string `json:"chapterId"`

	// SubVerseIndex is 0 for the first physical verse of a combined verse group.
	SubVerseIndex int `json:"subVerseIndex"`

	// ParagraphIndex is 0 for the first verse of a paragraph.
	ParagraphIndex int `json:"paragraphIndex"`

	// ParagraphNumber is a monotonic paragraph counter within a chapter.
	ParagraphNumber int `json:"paragraphNumber"`

	IsPoetry bool `json:"isPoetry"`
}

// Heading is a section title that precedes a verse.
type Heading struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// Level is the 1-based outline depth.
	Level int `json:"level"`

	// VerseID is the verse this heading precedes.
	VerseID string `json:"verseId"`
}

// PsalmMetadata is a Psalm superscription.
type PsalmMetadata struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	ChapterID string `json:"chapterId"`
}

// Document bundles everything one render call consumes. Verses are expected in
// chapter and paragraph order; renderers do not re-sort them.
type Document struct {
	Verses   []Verse         `json:"verses"`
	Marks    []Mark          `json:"marks"`
	Headings []Heading       `json:"headings"`
	Psalms   []PsalmMetadata `json:"psalms"`
}

// IsEmpty reports whether the document has nothing to render.
func (d *Document) IsEmpty() bool {
	return d == nil || (len(d.Verses) == 0 && len(d.Marks) == 0 && len(d.Headings) == 0 && len(d.Psalms) == 0)
}

// MarksFor returns the marks anchored to the given entity whose kind is one of
// kinds. Marks are grouped in the order kinds are given and keep document
// order within a kind, which decides how marks at the same offset are
// labeled. The result is a new slice.
func (d *Document) MarksFor(tt TargetType, id string, kinds ...MarkKind) []Mark {
	if d == nil {
		return nil
	}
	var out []Mark
	for _, kind := range kinds {
		for _, m := range d.Marks {
			if m.Kind == kind && m.Targets(tt, id) {
				out = append(out, m)
			}
		}
	}
	return out
}

// HeadingsFor returns the headings attached to a verse in document order.
func (d *Document) HeadingsFor(verseID string) []Heading {
	if d == nil {
		return nil
	}
	var out []Heading
	for _, h := range d.Headings {
		if h.VerseID == verseID {
			out = append(out, h)
		}
	}
	return out
}
