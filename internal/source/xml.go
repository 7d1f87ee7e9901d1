package source

import (
	"io"
	"strconv"

	apperrors "github.com/v-bible/js-sdk/core/errors"
	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/xml"
)

// DecodeXML reads a <document> element holding <verse>, <heading>, <psalm>
// and <mark> elements at any depth. Scalar fields are attributes named like
// the JSON keys; the text field is the element text.
func DecodeXML(r io.Reader) (*ir.Document, error) {
	x, err := xml.ParseReader(r)
	if err != nil {
		return nil, apperrors.NewParseWrap("XML", "", err)
	}
	root := x.Root()
	if root == nil || root.Name() != "document" {
		return nil, apperrors.NewParse("XML", "", "root element must be <document>")
	}

	var doc ir.Document
	if doc.Verses, err = decodeAll(root, "verse", xmlVerse); err != nil {
		return nil, err
	}
	if doc.Headings, err = decodeAll(root, "heading", xmlHeading); err != nil {
		return nil, err
	}
	if doc.Psalms, err = decodeAll(root, "psalm", xmlPsalm); err != nil {
		return nil, err
	}
	if doc.Marks, err = decodeAll(root, "mark", xmlMark); err != nil {
		return nil, err
	}
	return &doc, nil
}

func decodeAll[T any](root *xml.Node, name string, decode func(*xml.Node) (T, error)) ([]T, error) {
	nodes, err := root.XPath(".//" + name)
	if err != nil {
		return nil, apperrors.NewParseWrap("XML", "", err)
	}
	out := make([]T, 0, len(nodes))
	for i, n := range nodes {
		v, err := decode(n)
		if err != nil {
			return nil, apperrors.NewParse("XML", "", "<"+name+"> #"+strconv.Itoa(i+1)+": "+err.Error())
		}
		out = append(out, v)
	}
	return out, nil
}

// attrs reads typed attributes and keeps the first error.
type attrs struct {
	n   *xml.Node
	err error
}

func (a *attrs) intAttr(name string) int {
	v, err := a.n.AttrInt(name, 0)
	if err != nil && a.err == nil {
		a.err = err
	}
	return v
}

func (a *attrs) boolAttr(name string) bool {
	v, err := a.n.AttrBool(name)
	if err != nil && a.err == nil {
		a.err = err
	}
	return v
}

func xmlVerse(n *xml.Node) (ir.Verse, error) {
	a := attrs{n: n}
	v := ir.Verse{
		ID:              n.Attr("id"),
		Number:          a.intAttr("number"),
		Label:           n.Attr("label"),
		Text:            n.Text(),
		ChapterID:       n.Attr("chapterId"),
		SubVerseIndex:   a.intAttr("subVerseIndex"),
		ParagraphIndex:  a.intAttr("paragraphIndex"),
		ParagraphNumber: a.intAttr("paragraphNumber"),
		IsPoetry:        a.boolAttr("isPoetry"),
	}
	return v, a.err
}

func xmlHeading(n *xml.Node) (ir.Heading, error) {
	a := attrs{n: n}
	h := ir.Heading{
		ID:      n.Attr("id"),
		Text:    n.Text(),
		Level:   a.intAttr("level"),
		VerseID: n.Attr("verseId"),
	}
	return h, a.err
}

func xmlPsalm(n *xml.Node) (ir.PsalmMetadata, error) {
	return ir.PsalmMetadata{
		ID:        n.Attr("id"),
		Text:      n.Text(),
		ChapterID: n.Attr("chapterId"),
	}, nil
}

func xmlMark(n *xml.Node) (ir.Mark, error) {
	a := attrs{n: n}
	m := ir.Mark{
		ID:          n.Attr("id"),
		Content:     n.Text(),
		Label:       n.Attr("label"),
		SortOrder:   a.intAttr("sortOrder"),
		StartOffset: a.intAttr("startOffset"),
		EndOffset:   a.intAttr("endOffset"),
		TargetID:    n.Attr("targetId"),
		ChapterID:   n.Attr("chapterId"),
	}
	if a.err != nil {
		return m, a.err
	}

	kind, err := parseKind(n.Attr("kind"))
	if err != nil {
		return m, err
	}
	m.Kind = kind

	tt, err := parseTargetType(n.Attr("targetType"))
	if err != nil {
		return m, err
	}
	m.TargetType = tt
	return m, nil
}
