package render

import (
	"fmt"

	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/marks"
)

// noteNumber is the 1-based number shown for a footnote or reference.
func noteNumber(m ir.Mark) int {
	return m.SortOrder + 1
}

func markdownLabels(woj wojMarkers) marks.LabelSet {
	return marks.LabelSet{
		ir.MarkUnspecified: func(ir.Mark) string { return "" },
		ir.MarkFootnote: func(m ir.Mark) string {
			return fmt.Sprintf("[^%d-%s]", noteNumber(m), m.ChapterID)
		},
		ir.MarkReference: func(m ir.Mark) string {
			return fmt.Sprintf("[^%d@-%s]", noteNumber(m), m.ChapterID)
		},
		ir.MarkWordsOfJesus: woj.label,
	}
}

func htmlLabels(woj wojMarkers) marks.LabelSet {
	return marks.LabelSet{
		ir.MarkUnspecified: func(ir.Mark) string { return "" },
		ir.MarkFootnote: func(m ir.Mark) string {
			n := noteNumber(m)
			return fmt.Sprintf(`<sup><a href="#fn-%d-%s" id="fnref-%d-%s">%d</a></sup>`, n, m.ChapterID, n, m.ChapterID, n)
		},
		ir.MarkReference: func(m ir.Mark) string {
			n := noteNumber(m)
			return fmt.Sprintf(`<sup><a href="#fn-%d@-%s" id="fnref-%d@-%s">%d@</a></sup>`, n, m.ChapterID, n, m.ChapterID, n)
		},
		ir.MarkWordsOfJesus: woj.label,
	}
}

// wojMarkers wraps words of Jesus. The zero value uses bold.
type wojMarkers struct {
	open, close string
}

func (w wojMarkers) label(m ir.Mark) string {
	if w.open == "" && w.close == "" {
		return "<b>" + m.Content + "</b>"
	}
	return w.open + m.Content + w.close
}

func markdownNote(m ir.Mark) (string, bool) {
	switch m.Kind {
	case ir.MarkFootnote:
		return fmt.Sprintf("[^%d-%s]: %s", noteNumber(m), m.ChapterID, m.Content), true
	case ir.MarkReference:
		return fmt.Sprintf("[^%d@-%s]: %s", noteNumber(m), m.ChapterID, m.Content), true
	}
	return "", false
}

func htmlNote(m ir.Mark, content string) (string, bool) {
	n := noteNumber(m)
	switch m.Kind {
	case ir.MarkFootnote:
		return fmt.Sprintf(`<li id="fn-%d-%s"><p>%s [<a href="#fnref-%d-%s">%d</a>]</p></li>`, n, m.ChapterID, content, n, m.ChapterID, n), true
	case ir.MarkReference:
		return fmt.Sprintf(`<li id="fn-%d@-%s"><p>%s [<a href="#fnref-%d@-%s">%d@</a>]</p></li>`, n, m.ChapterID, content, n, m.ChapterID, n), true
	}
	return "", false
}
