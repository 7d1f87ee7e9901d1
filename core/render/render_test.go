package render

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/marks"
)

const genesis = "In the beginning God created the heavens and the earth."

func quietRenderer(opts ...Option) *Renderer {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(opts...)
}

func verseMark(id string, kind ir.MarkKind, content string, start, end, sortOrder int, verseID, chapterID string) ir.Mark {
	return ir.Mark{
		ID:          id,
		Kind:        kind,
		Content:     content,
		SortOrder:   sortOrder,
		StartOffset: start,
		EndOffset:   end,
		TargetType:  ir.TargetVerse,
		TargetID:    verseID,
		ChapterID:   chapterID,
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name string
		doc  *ir.Document
		want string
	}{
		{
			name: "simple verse",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: genesis, Label: "1"}},
			},
			want: "<sup><b>1</b></sup> " + genesis,
		},
		{
			name: "footnote",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: genesis, Label: "1"}},
				Marks:  []ir.Mark{verseMark("fn1", ir.MarkFootnote, "God", 17, 20, 0, "GEN.1.1", "")},
			},
			want: "<sup><b>1</b></sup> In the beginning [^1-] created the heavens and the earth.\n\n[^1-]: God",
		},
		{
			name: "heading",
			doc: &ir.Document{
				Verses:   []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: genesis, Label: "1"}},
				Headings: []ir.Heading{{ID: "heading1", Text: "The Creation of the World", Level: 1, VerseID: "GEN.1.1"}},
			},
			want: "# The Creation of the World\n<sup><b>1</b></sup> " + genesis,
		},
		{
			name: "paragraphs",
			doc: &ir.Document{
				Verses: []ir.Verse{
					{ID: "GEN.1.1", Number: 1, Text: genesis, Label: "1", ParagraphNumber: 1},
					{ID: "GEN.1.2", Number: 2, Text: "The earth was without form and void.", Label: "2", ParagraphNumber: 2},
				},
			},
			want: "<sup><b>1</b></sup> " + genesis + "\n\n<sup><b>2</b></sup> The earth was without form and void.",
		},
		{
			name: "poetry",
			doc: &ir.Document{
				Verses: []ir.Verse{{
					ID: "PSA.1.1", Number: 1, Label: "1", IsPoetry: true,
					Text: "Blessed is the man who walks not in the counsel of the wicked",
				}},
			},
			want: "> <sup><b>1</b></sup> Blessed is the man who walks not in the counsel of the wicked",
		},
		{
			name: "psalm title",
			doc: &ir.Document{
				Verses: []ir.Verse{{
					ID: "PSA.1.1", Number: 1, Label: "1", ChapterID: "PSA.1",
					Text: "Blessed is the man who walks not in the counsel of the wicked",
				}},
				Psalms: []ir.PsalmMetadata{{ID: "psalm1", Text: "A Psalm of David", ChapterID: "PSA.1"}},
			},
			want: "*A Psalm of David*\n<sup><b>1</b></sup> Blessed is the man who walks not in the counsel of the wicked",
		},
		{
			name: "several psalm titles keep input order",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "PSA.3.1", Number: 1, Text: "O Lord", ChapterID: "PSA.3"}},
				Psalms: []ir.PsalmMetadata{
					{ID: "p1", Text: "A Psalm of David", ChapterID: "PSA.3"},
					{ID: "p2", Text: "when he fled from Absalom", ChapterID: "PSA.3"},
					{ID: "p3", Text: "other chapter", ChapterID: "PSA.4"},
				},
			},
			want: "*A Psalm of David*\n*when he fled from Absalom*\n<sup><b>1</b></sup> O Lord",
		},
		{
			name: "heading footnote",
			doc: &ir.Document{
				Verses:   []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: "In the beginning.", ChapterID: "GEN.1"}},
				Headings: []ir.Heading{{ID: "h1", Text: "The Creation", Level: 1, VerseID: "GEN.1.1"}},
				Marks: []ir.Mark{{
					ID: "hfn", Kind: ir.MarkFootnote, Content: "Heading note", SortOrder: 2,
					StartOffset: 12, EndOffset: 12, TargetType: ir.TargetHeading, TargetID: "h1", ChapterID: "GEN.1",
				}},
			},
			want: "# The Creation[^3-GEN.1]\n<sup><b>1</b></sup> In the beginning.\n\n[^3-GEN.1]: Heading note",
		},
		{
			name: "words of Jesus with nested footnote",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "JHN.14.6", Number: 6, Text: "Jesus said, I am the way.", ChapterID: "JHN.14"}},
				Marks: []ir.Mark{
					verseMark("woj", ir.MarkWordsOfJesus, "I am the way.", 12, 25, 0, "JHN.14.6", "JHN.14"),
					verseMark("fn", ir.MarkFootnote, "Or I am he", 16, 16, 0, "JHN.14.6", "JHN.14"),
				},
			},
			want: "<sup><b>6</b></sup> Jesus said, <b>I am[^1-JHN.14] the way.</b>\n\n[^1-JHN.14]: Or I am he",
		},
		{
			name: "chapter break",
			doc: &ir.Document{
				Verses: []ir.Verse{
					{ID: "GEN.1.31", Number: 31, Text: "It was very good.", ChapterID: "GEN.1"},
					{ID: "GEN.2.1", Number: 1, Text: "Thus the heavens were finished.", ChapterID: "GEN.2"},
				},
			},
			want: "<sup><b>31</b></sup> It was very good.\n\n---\n\n<sup><b>1</b></sup> Thus the heavens were finished.",
		},
		{
			name: "chapter break resets paragraphs",
			doc: &ir.Document{
				Verses: []ir.Verse{
					{ID: "GEN.1.31", Number: 31, Text: "It was very good.", ChapterID: "GEN.1", ParagraphNumber: 3},
					{ID: "GEN.2.1", Number: 1, Text: "Thus the heavens were finished.", ChapterID: "GEN.2", ParagraphNumber: 1},
				},
				Headings: []ir.Heading{{ID: "h6", Text: "Six", Level: 1, VerseID: "GEN.2.1"}},
			},
			want: "<sup><b>31</b></sup> It was very good.\n\n---\n\n# Six\n<sup><b>1</b></sup> Thus the heavens were finished.",
		},
		{
			name: "repeated note is listed once",
			doc: &ir.Document{
				Verses: []ir.Verse{
					{ID: "v1a", Number: 1, Text: "abc", ChapterID: "C"},
					{ID: "v1b", Number: 1, Text: "def", ChapterID: "C", SubVerseIndex: 1, ParagraphIndex: 1},
				},
				Marks: []ir.Mark{
					verseMark("n1", ir.MarkFootnote, "same", 3, 3, 0, "v1a", "C"),
					verseMark("n2", ir.MarkFootnote, "same", 3, 3, 0, "v1b", "C"),
				},
			},
			want: "<sup><b>1</b></sup> abc[^1-C] def[^1-C]\n\n[^1-C]: same",
		},
		{
			name: "empty document",
			doc:  &ir.Document{},
			want: "",
		},
		{
			name: "nil document",
			doc:  nil,
			want: "",
		},
	}

	r := quietRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Markdown(tt.doc); got != tt.want {
				t.Errorf("Markdown() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		doc  *ir.Document
		want string
	}{
		{
			name: "simple verse",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: genesis, Label: "1"}},
			},
			want: "<sup><b>1</b></sup> " + genesis + "<hr>\n\n<ol></ol>",
		},
		{
			name: "footnote",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: genesis, Label: "1"}},
				Marks:  []ir.Mark{verseMark("fn1", ir.MarkFootnote, "God", 17, 20, 0, "GEN.1.1", "")},
			},
			want: `<sup><b>1</b></sup> In the beginning <sup><a href="#fn-1-" id="fnref-1-">1</a></sup> created the heavens and the earth.<hr>` +
				"\n\n" + `<ol><li id="fn-1-"><p>God [<a href="#fnref-1-">1</a>]</p></li>` + "\n\n</ol>",
		},
		{
			name: "heading",
			doc: &ir.Document{
				Verses:   []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: genesis, Label: "1"}},
				Headings: []ir.Heading{{ID: "heading1", Text: "The Creation of the World", Level: 1, VerseID: "GEN.1.1"}},
			},
			want: "<h1>The Creation of the World</h1>\n<sup><b>1</b></sup> " + genesis + "<hr>\n\n<ol></ol>",
		},
		{
			name: "paragraphs",
			doc: &ir.Document{
				Verses: []ir.Verse{
					{ID: "GEN.1.1", Number: 1, Text: genesis, Label: "1", ParagraphNumber: 1},
					{ID: "GEN.1.2", Number: 2, Text: "The earth was without form and void.", Label: "2", ParagraphNumber: 2},
				},
			},
			want: "<sup><b>1</b></sup> " + genesis + "\n\n<sup><b>2</b></sup> The earth was without form and void.<hr>\n\n<ol></ol>",
		},
		{
			name: "poetry",
			doc: &ir.Document{
				Verses: []ir.Verse{{
					ID: "PSA.1.1", Number: 1, Label: "1", IsPoetry: true,
					Text: "Blessed is the man who walks not in the counsel of the wicked",
				}},
			},
			want: "<blockquote><sup><b>1</b></sup> Blessed is the man who walks not in the counsel of the wicked</blockquote>\n<hr>\n\n<ol></ol>",
		},
		{
			name: "psalm title",
			doc: &ir.Document{
				Verses: []ir.Verse{{
					ID: "PSA.1.1", Number: 1, Label: "1", ChapterID: "PSA.1",
					Text: "Blessed is the man who walks not in the counsel of the wicked",
				}},
				Psalms: []ir.PsalmMetadata{{ID: "psalm1", Text: "A Psalm of David", ChapterID: "PSA.1"}},
			},
			want: "<i>A Psalm of David</i>\n<sup><b>1</b></sup> Blessed is the man who walks not in the counsel of the wicked<hr>\n\n<ol></ol>",
		},
		{
			name: "chapter break",
			doc: &ir.Document{
				Verses: []ir.Verse{
					{ID: "GEN.1.31", Number: 31, Text: "It was very good.", ChapterID: "GEN.1"},
					{ID: "GEN.2.1", Number: 1, Text: "Thus the heavens were finished.", ChapterID: "GEN.2"},
				},
			},
			want: "<sup><b>31</b></sup> It was very good.\n\n<hr>\n\n<sup><b>1</b></sup> Thus the heavens were finished.<hr>\n\n<ol></ol>",
		},
		{
			name: "escaped characters before a footnote",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "v", Number: 1, Text: `He said "go" & left now`}},
				Marks:  []ir.Mark{verseMark("fn", ir.MarkFootnote, "note", 19, 19, 0, "v", "")},
			},
			want: `<sup><b>1</b></sup> He said &quot;go&quot; &amp; left<sup><a href="#fn-1-" id="fnref-1-">1</a></sup> now<hr>` +
				"\n\n" + `<ol><li id="fn-1-"><p>note [<a href="#fnref-1-">1</a>]</p></li>` + "\n\n</ol>",
		},
		{
			name: "less-than before a footnote",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "v", Number: 1, Text: "if a < b then"}},
				Marks:  []ir.Mark{verseMark("fn", ir.MarkFootnote, "note", 8, 8, 0, "v", "")},
			},
			want: `<sup><b>1</b></sup> if a &lt; b<sup><a href="#fn-1-" id="fnref-1-">1</a></sup> then<hr>` +
				"\n\n" + `<ol><li id="fn-1-"><p>note [<a href="#fnref-1-">1</a>]</p></li>` + "\n\n</ol>",
		},
		{
			name: "words of Jesus inside quotes",
			doc: &ir.Document{
				Verses: []ir.Verse{{ID: "v", Number: 1, Text: `He said, "Follow me."`}},
				Marks:  []ir.Mark{verseMark("w", ir.MarkWordsOfJesus, "Follow me.", 10, 20, 0, "v", "")},
			},
			want: `<sup><b>1</b></sup> He said, &quot;<b>Follow me.</b>&quot;<hr>` + "\n\n<ol></ol>",
		},
		{
			name: "heading footnote after ampersand",
			doc: &ir.Document{
				Verses:   []ir.Verse{{ID: "v", Number: 1, Text: "Now Adam knew Eve."}},
				Headings: []ir.Heading{{ID: "h", Text: "Cain & Abel", Level: 2, VerseID: "v"}},
				Marks: []ir.Mark{{
					ID: "fn", Kind: ir.MarkFootnote, Content: "note",
					StartOffset: 11, EndOffset: 11, TargetType: ir.TargetHeading, TargetID: "h",
				}},
			},
			want: `<h2>Cain &amp; Abel<sup><a href="#fn-1-" id="fnref-1-">1</a></sup></h2>` + "\n" +
				`<sup><b>1</b></sup> Now Adam knew Eve.<hr>` +
				"\n\n" + `<ol><li id="fn-1-"><p>note [<a href="#fnref-1-">1</a>]</p></li>` + "\n\n</ol>",
		},
		{
			name: "empty document",
			doc:  &ir.Document{},
			want: "<hr>\n\n<ol></ol>",
		},
	}

	r := quietRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.HTML(tt.doc); got != tt.want {
				t.Errorf("HTML() =\n  %q\nwant\n  %q", got, tt.want)
			}
		})
	}
}

func TestHTMLComplex(t *testing.T) {
	doc := &ir.Document{
		Verses: []ir.Verse{{
			ID: "JOH.3.16", Number: 16, Label: "16", ChapterID: "JOH.3",
			Text: "For God so loved the world, that he gave his one and only Son.",
		}},
		Marks: []ir.Mark{
			verseMark("fn1", ir.MarkFootnote, "Greek: kosmos", 17, 22, 0, "JOH.3.16", "JOH.3"),
			verseMark("ref1", ir.MarkReference, "See Rom 5:8", 4, 7, 1, "JOH.3.16", "JOH.3"),
		},
		Headings: []ir.Heading{{ID: "heading1", Text: "God's Love for the World", Level: 2, VerseID: "JOH.3.16"}},
	}

	got := quietRenderer().HTML(doc)
	for _, want := range []string{
		"<h2>God's Love for the World</h2>",
		"<sup><b>16</b></sup>",
		`For <sup><a href="#fn-2@-JOH.3" id="fnref-2@-JOH.3">2@</a></sup> so loved`,
		`<li id="fn-1-JOH.3"><p>Greek: kosmos [<a href="#fnref-1-JOH.3">1</a>]</p></li>`,
		`<li id="fn-2@-JOH.3"><p>See Rom 5:8 [<a href="#fnref-2@-JOH.3">2@</a>]</p></li>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() missing %q in\n%s", want, got)
		}
	}

	// Footnotes sort before references in the appendix.
	if strings.Index(got, `id="fn-1-JOH.3"`) > strings.Index(got, `id="fn-2@-JOH.3"`) {
		t.Errorf("appendix order wrong:\n%s", got)
	}
}

func TestHTMLReference(t *testing.T) {
	doc := &ir.Document{
		Verses: []ir.Verse{{ID: "ROM.1.1", Number: 1, Label: "1", Text: "Paul, a servant of Christ Jesus"}},
		Marks:  []ir.Mark{verseMark("ref1", ir.MarkReference, "See Gal 1:10", 7, 14, 0, "ROM.1.1", "")},
	}

	got := quietRenderer().HTML(doc)
	for _, want := range []string{
		`Paul, a<sup><a href="#fn-1@-" id="fnref-1@-">1@</a></sup>`,
		`<li id="fn-1@-"><p>See Gal 1:10 [<a href="#fnref-1@-">1@</a>]</p></li>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("HTML() missing %q in\n%s", want, got)
		}
	}
}

func TestEdgeCases(t *testing.T) {
	r := quietRenderer()

	t.Run("offsets past the end", func(t *testing.T) {
		doc := &ir.Document{
			Verses: []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: "Short text"}},
			Marks:  []ir.Mark{verseMark("fn1", ir.MarkFootnote, "Footnote", 50, 60, 0, "GEN.1.1", "")},
		}
		if got, want := r.Markdown(doc), "<sup><b>1</b></sup> Short text[^1-]\n\n[^1-]: Footnote"; got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
		_ = r.HTML(doc)
	})

	t.Run("heading level zero", func(t *testing.T) {
		doc := &ir.Document{
			Verses:   []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: genesis}},
			Headings: []ir.Heading{{ID: "h", Text: "Invalid Level Heading", Level: 0, VerseID: "GEN.1.1"}},
		}
		if got := r.Markdown(doc); !strings.HasPrefix(got, "# Invalid Level Heading\n") {
			t.Errorf("Markdown() = %q", got)
		}
		if got := r.HTML(doc); !strings.HasPrefix(got, "<h1>Invalid Level Heading</h1>\n") {
			t.Errorf("HTML() = %q", got)
		}
	})

	t.Run("footnotes at the same position", func(t *testing.T) {
		doc := &ir.Document{
			Verses: []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: genesis}},
			Marks: []ir.Mark{
				verseMark("fn1", ir.MarkFootnote, "First footnote", 17, 17, 0, "GEN.1.1", ""),
				verseMark("fn2", ir.MarkFootnote, "Second footnote", 17, 17, 1, "GEN.1.1", ""),
			},
		}
		md := r.Markdown(doc)
		for _, want := range []string{"[^1-][^2-]God", "[^1-]: First footnote", "[^2-]: Second footnote"} {
			if !strings.Contains(md, want) {
				t.Errorf("Markdown() missing %q in %q", want, md)
			}
		}
		html := r.HTML(doc)
		for _, want := range []string{"First footnote", "Second footnote"} {
			if !strings.Contains(html, want) {
				t.Errorf("HTML() missing %q in %q", want, html)
			}
		}
	})

	t.Run("unknown mark kind", func(t *testing.T) {
		doc := &ir.Document{
			Verses: []ir.Verse{{ID: "GEN.1.1", Number: 1, Text: "Short text"}},
			Marks:  []ir.Mark{verseMark("x", ir.MarkKind(42), "ignored", 0, 5, 0, "GEN.1.1", "")},
		}
		if got, want := r.Markdown(doc), "<sup><b>1</b></sup> Short text"; got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})
}

func TestOptions(t *testing.T) {
	text := "abcdefghijklmnopqrst"
	doc := &ir.Document{
		Verses: []ir.Verse{{ID: "v", Number: 1, Text: text}},
		Marks: []ir.Mark{
			verseMark("a", ir.MarkWordsOfJesus, text[0:15], 0, 15, 0, "v", ""),
			verseMark("b", ir.MarkWordsOfJesus, text[4:19], 4, 19, 0, "v", ""),
		},
	}

	t.Run("keep left", func(t *testing.T) {
		r := quietRenderer(WithResolveOptions(marks.KeepLeft()))
		want := "<sup><b>1</b></sup> <b>abcd<b>efghijklmno</b></b><b>pqrs</b>t"
		if got := r.Markdown(doc); got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})

	t.Run("legacy words of Jesus markers", func(t *testing.T) {
		r := quietRenderer(WithWordsOfJesus(`<span class="woj">`, "</span>"))
		single := &ir.Document{
			Verses: []ir.Verse{{ID: "v", Number: 1, Text: "Jesus said, Follow me."}},
			Marks:  []ir.Mark{verseMark("w", ir.MarkWordsOfJesus, "Follow me.", 12, 22, 0, "v", "")},
		}
		want := `<sup><b>1</b></sup> Jesus said, <span class="woj">Follow me.</span>`
		if got := r.Markdown(single); got != want {
			t.Errorf("Markdown() = %q, want %q", got, want)
		}
	})

	t.Run("failing converter leaves text as is", func(t *testing.T) {
		failing := ConverterFunc(func(string) (string, error) { return "", errors.New("boom") })
		r := quietRenderer(WithConverter(failing))
		single := &ir.Document{Verses: []ir.Verse{{ID: "v", Number: 1, Text: "*plain*"}}}
		if got, want := r.HTML(single), "<sup><b>1</b></sup> *plain*<hr>\n\n<ol></ol>"; got != want {
			t.Errorf("HTML() = %q, want %q", got, want)
		}
	})

	t.Run("render dispatch", func(t *testing.T) {
		r := quietRenderer()
		single := &ir.Document{Verses: []ir.Verse{{ID: "v", Number: 1, Text: "text"}}}
		if got := r.Render(single, FormatHTML); got != r.HTML(single) {
			t.Errorf("Render(html) = %q", got)
		}
		if got := r.Render(single, FormatMarkdown); got != r.Markdown(single) {
			t.Errorf("Render(md) = %q", got)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "md", want: FormatMarkdown},
		{in: "Markdown", want: FormatMarkdown},
		{in: "HTML", want: FormatHTML},
		{in: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if FormatHTML.String() != "html" || Format(7).String() != "Format(7)" {
		t.Errorf("String() = %q, %q", FormatHTML.String(), Format(7).String())
	}
}

func TestCachedConverter(t *testing.T) {
	calls := 0
	inner := ConverterFunc(func(md string) (string, error) {
		calls++
		return "<p>" + md + "</p>\n", nil
	})
	c := NewCachedConverter(inner, 8)

	for i := 0; i < 3; i++ {
		got, err := c.Convert("Greek: kosmos")
		if err != nil || got != "<p>Greek: kosmos</p>\n" {
			t.Fatalf("Convert() = %q, %v", got, err)
		}
	}
	if calls != 1 {
		t.Errorf("inner converter called %d times, want 1", calls)
	}
	if s := c.Stats(); s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats() = %+v, want 2 hits and 1 miss", s)
	}
}

func TestBoundedCachedConverter(t *testing.T) {
	calls := 0
	inner := ConverterFunc(func(md string) (string, error) {
		calls++
		return md, nil
	})
	c := NewBoundedCachedConverter(inner, 100, 5)

	for _, in := range []string{"abc", "de", "f", "abc", "toolong"} {
		if got, err := c.Convert(in); err != nil || got != in {
			t.Fatalf("Convert(%q) = %q, %v", in, got, err)
		}
	}
	// "f" pushes "abc" out, so the second "abc" converts again and in turn
	// evicts "de". "toolong" exceeds the limit and is never kept.
	if calls != 5 {
		t.Errorf("inner converter called %d times, want 5", calls)
	}
	s := c.Stats()
	if s.TotalBytes > 5 {
		t.Errorf("TotalBytes = %d, want at most 5", s.TotalBytes)
	}
	if s.Evictions != 2 {
		t.Errorf("Evictions = %d, want 2", s.Evictions)
	}

	if _, err := c.Convert("f"); err != nil || calls != 5 {
		t.Errorf("cached fragment converted again: calls = %d, err = %v", calls, err)
	}
}

func TestGoldmarkConverter(t *testing.T) {
	got, err := NewGoldmarkConverter().Convert("See *Rom* 5:8 <b>now</b>")
	if err != nil {
		t.Fatal(err)
	}
	if want := "See <em>Rom</em> 5:8 <b>now</b>"; StripParagraph(got) != want {
		t.Errorf("Convert() = %q, want %q after StripParagraph", got, want)
	}
}

func TestStripParagraph(t *testing.T) {
	tests := map[string]string{
		"<p>text</p>\n":            "text",
		"<p>a</p>\n<p>b</p>":       "ab",
		"no tags":                  "no tags",
		"<p>keep\n\nnewlines</p>": "keep\n\nnewlines",
	}
	for in, want := range tests {
		if got := StripParagraph(in); got != want {
			t.Errorf("StripParagraph(%q) = %q, want %q", in, got, want)
		}
	}
}

func BenchmarkHTML(b *testing.B) {
	doc := &ir.Document{}
	for i := 0; i < 30; i++ {
		id := "GEN.1." + string(rune('a'+i))
		doc.Verses = append(doc.Verses, ir.Verse{ID: id, Number: i + 1, Text: genesis, ChapterID: "GEN.1", ParagraphNumber: i / 5})
		doc.Marks = append(doc.Marks, verseMark("fn"+id, ir.MarkFootnote, "note", 17, 20, i, id, "GEN.1"))
	}
	r := quietRenderer()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.HTML(doc)
	}
}
