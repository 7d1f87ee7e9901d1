// Package source loads render documents from files.
//
// Supported inputs are JSON, XML and SQLite databases. JSON and XML may be
// xz-compressed. The kind is taken from the file extension and falls back to
// the leading bytes.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/ulikunitz/xz"

	apperrors "github.com/v-bible/js-sdk/core/errors"
	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/xml"
	"github.com/v-bible/js-sdk/internal/logging"
	"github.com/v-bible/js-sdk/internal/validation"
)

// Kind identifies the container format of a source file.
type Kind int

const (
	KindUnknown Kind = iota
	KindJSON
	KindXML
	KindSQLite
)

var kindNames = map[Kind]string{
	KindUnknown: "unknown",
	KindJSON:    "json",
	KindXML:     "xml",
	KindSQLite:  "sqlite",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var (
	xzMagic     = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	sqliteMagic = []byte("SQLite format 3\x00")
)

// Options control loading.
type Options struct {
	// ChapterID keeps only records of one chapter when set.
	ChapterID string
}

// Load reads the document at path.
func Load(ctx context.Context, path string, opts Options) (*ir.Document, error) {
	if err := validation.CheckInputFile(path); err != nil {
		return nil, apperrors.NewIO("check", path, err)
	}

	kind, compressed, err := Detect(path)
	if err != nil {
		return nil, err
	}

	var doc *ir.Document
	switch kind {
	case KindSQLite:
		if compressed {
			return nil, apperrors.NewUnsupported("compressed SQLite", "decompress "+path+" first")
		}
		doc, err = LoadSQLite(ctx, path, opts.ChapterID)
	case KindJSON, KindXML:
		doc, err = loadText(path, kind, compressed)
		if err == nil && opts.ChapterID != "" {
			doc = FilterChapter(doc, opts.ChapterID)
		}
	default:
		return nil, apperrors.NewUnsupported("document format", filepath.Base(path))
	}
	if err != nil {
		return nil, err
	}

	if opts.ChapterID != "" && len(doc.Verses) == 0 {
		logging.WarnContext(ctx, "chapter has no verses", "path", path, "chapter", opts.ChapterID)
	}

	AssignIDs(doc)
	logging.DocumentLoaded(ctx, path, kind.String(), len(doc.Verses), len(doc.Marks),
		"headings", len(doc.Headings), "compressed", compressed)
	return doc, nil
}

func loadText(path string, kind Kind, compressed bool) (*ir.Document, error) {
	data, err := readText(path, compressed)
	if err != nil {
		return nil, err
	}

	var doc *ir.Document
	if kind == KindXML {
		doc, err = DecodeXML(bytes.NewReader(data))
	} else {
		doc, err = DecodeJSON(bytes.NewReader(data))
	}
	if err != nil {
		return nil, apperrors.Wrapf(err, "loading %s", path)
	}
	return doc, nil
}

func readText(path string, compressed bool) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIO("open", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if compressed {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, apperrors.NewParseWrap("xz", path, err)
		}
		r = xr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewIO("read", path, err)
	}
	return data, nil
}

// CheckSyntax reports well-formedness errors of an XML document, compressed
// or not. Other kinds return no errors here; their decoders fail on Load.
func CheckSyntax(path string) ([]error, error) {
	if err := validation.CheckInputFile(path); err != nil {
		return nil, apperrors.NewIO("check", path, err)
	}
	kind, compressed, err := Detect(path)
	if err != nil || kind != KindXML {
		return nil, err
	}
	data, err := readText(path, compressed)
	if err != nil {
		return nil, err
	}

	res := xml.Validate(data)
	errs := make([]error, 0, len(res.Errors))
	for _, e := range res.Errors {
		errs = append(errs, e)
	}
	return errs, nil
}

// Detect reports the container kind of path and whether it is
// xz-compressed.
func Detect(path string) (Kind, bool, error) {
	head, err := readHead(path, 64)
	if err != nil {
		return KindUnknown, false, err
	}

	name := strings.ToLower(filepath.Base(path))
	compressed := bytes.HasPrefix(head, xzMagic)
	if strings.HasSuffix(name, ".xz") {
		compressed = true
		name = strings.TrimSuffix(name, ".xz")
	}

	switch filepath.Ext(name) {
	case ".json":
		return KindJSON, compressed, nil
	case ".xml":
		return KindXML, compressed, nil
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite, compressed, nil
	}

	if compressed {
		head, err = readCompressedHead(path, 64)
		if err != nil {
			return KindUnknown, true, err
		}
	}
	return sniff(head), compressed, nil
}

func sniff(head []byte) Kind {
	if bytes.HasPrefix(head, sqliteMagic) {
		return KindSQLite
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n\ufeff")
	switch {
	case len(trimmed) == 0:
		return KindUnknown
	case trimmed[0] == '{':
		return KindJSON
	case trimmed[0] == '<':
		return KindXML
	}
	return KindUnknown
}

func readHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIO("open", path, err)
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, apperrors.NewIO("read", path, err)
	}
	return buf[:read], nil
}

func readCompressedHead(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewIO("open", path, err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, apperrors.NewParseWrap("xz", path, err)
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(xr, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, apperrors.NewParseWrap("xz", path, err)
	}
	return buf[:read], nil
}

// AssignIDs gives every record without an id a random one.
func AssignIDs(doc *ir.Document) {
	if doc == nil {
		return
	}
	for i := range doc.Verses {
		if doc.Verses[i].ID == "" {
			doc.Verses[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Marks {
		if doc.Marks[i].ID == "" {
			doc.Marks[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Headings {
		if doc.Headings[i].ID == "" {
			doc.Headings[i].ID = uuid.NewString()
		}
	}
	for i := range doc.Psalms {
		if doc.Psalms[i].ID == "" {
			doc.Psalms[i].ID = uuid.NewString()
		}
	}
}

// FilterChapter returns the part of doc that belongs to chapterID. Headings
// follow their verses.
func FilterChapter(doc *ir.Document, chapterID string) *ir.Document {
	if doc == nil {
		return &ir.Document{}
	}
	verses := lo.Filter(doc.Verses, func(v ir.Verse, _ int) bool {
		return v.ChapterID == chapterID
	})
	verseIDs := lo.SliceToMap(verses, func(v ir.Verse) (string, struct{}) {
		return v.ID, struct{}{}
	})
	return &ir.Document{
		Verses: verses,
		Marks: lo.Filter(doc.Marks, func(m ir.Mark, _ int) bool {
			return m.ChapterID == chapterID
		}),
		Headings: lo.Filter(doc.Headings, func(h ir.Heading, _ int) bool {
			_, ok := verseIDs[h.VerseID]
			return ok
		}),
		Psalms: lo.Filter(doc.Psalms, func(p ir.PsalmMetadata, _ int) bool {
			return p.ChapterID == chapterID
		}),
	}
}
