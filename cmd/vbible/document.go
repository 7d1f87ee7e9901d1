package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ulikunitz/xz"

	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/marks"
	"github.com/v-bible/js-sdk/core/render"
	"github.com/v-bible/js-sdk/internal/logging"
	"github.com/v-bible/js-sdk/internal/source"
	"github.com/v-bible/js-sdk/internal/validation"
)

func load(ctx context.Context, path, chapter string) (*ir.Document, error) {
	return source.Load(ctx, path, source.Options{ChapterID: chapter})
}

func resolveOptions(keepLeft bool) *marks.ResolveOptions {
	if keepLeft {
		return marks.KeepLeft()
	}
	return marks.DefaultResolveOptions()
}

// RenderCmd renders a document.
type RenderCmd struct {
	Path     string `arg:"" help:"Document file (.json, .xml, .db, optionally .xz)" type:"existingfile"`
	Format   string `short:"f" help:"Output format (md, html)" default:"md" enum:"md,markdown,html"`
	Chapter  string `help:"Only render this chapter id"`
	KeepLeft bool   `name:"keep-left" help:"On overlapping marks keep the earlier mark whole"`
	WOJOpen  string `name:"woj-open" help:"Opening marker for words of Jesus"`
	WOJClose string `name:"woj-close" help:"Closing marker for words of Jesus"`
	Out      string `short:"o" help:"Write to this file instead of stdout" type:"path"`
	XZ       bool   `name:"xz" help:"Compress the output with xz"`
}

func (c *RenderCmd) Run(e *runEnv) error {
	format, err := render.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	doc, err := load(e.ctx, c.Path, c.Chapter)
	if err != nil {
		return err
	}
	if doc.IsEmpty() {
		logging.WarnContext(e.ctx, "document is empty", "path", c.Path, "chapter", c.Chapter)
	}

	opts := []render.Option{render.WithResolveOptions(resolveOptions(c.KeepLeft))}
	if c.WOJOpen != "" || c.WOJClose != "" {
		opts = append(opts, render.WithWordsOfJesus(c.WOJOpen, c.WOJClose))
	}

	start := time.Now()
	out := e.renderer(opts...).Render(doc, format)
	logging.RenderComplete(e.ctx, format.String(), len(out), time.Since(start), "path", c.Path)

	if err := c.write(e.out, out+"\n"); err != nil {
		return err
	}
	if c.Out != "" {
		logging.InfoContext(e.ctx, "output written", "path", c.Out, "xz", c.XZ)
	}
	return nil
}

func (c *RenderCmd) write(stdout io.Writer, s string) (err error) {
	w := stdout
	if c.Out != "" {
		if verr := validation.ValidatePath(c.Out); verr != nil {
			return fmt.Errorf("invalid output path: %w", verr)
		}
		f, ferr := os.Create(c.Out)
		if ferr != nil {
			return fmt.Errorf("creating %s: %w", c.Out, ferr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if !c.XZ {
		_, err = io.WriteString(w, s)
		return err
	}
	xw, err := xz.NewWriter(w)
	if err != nil {
		return fmt.Errorf("xz writer: %w", err)
	}
	if _, err := io.WriteString(xw, s); err != nil {
		return err
	}
	return xw.Close()
}

// resolvedTarget is one verse or heading with its resolved marks.
type resolvedTarget struct {
	TargetType ir.TargetType `json:"targetType"`
	TargetID   string        `json:"targetId"`
	Marks      []ir.Mark     `json:"marks"`
}

// ResolveCmd prints resolved marks per target.
type ResolveCmd struct {
	Path     string `arg:"" help:"Document file" type:"existingfile"`
	Chapter  string `help:"Only resolve this chapter id"`
	KeepLeft bool   `name:"keep-left" help:"On overlapping marks keep the earlier mark whole"`
}

func (c *ResolveCmd) Run(e *runEnv) error {
	doc, err := load(e.ctx, c.Path, c.Chapter)
	if err != nil {
		return err
	}
	return writeJSON(e.out, resolveTargets(doc, resolveOptions(c.KeepLeft)))
}

func resolveTargets(doc *ir.Document, opts *marks.ResolveOptions) []resolvedTarget {
	out := []resolvedTarget{}
	add := func(tt ir.TargetType, id string) {
		ms := doc.MarksFor(tt, id, ir.MarkKinds...)
		if len(ms) == 0 {
			return
		}
		out = append(out, resolvedTarget{TargetType: tt, TargetID: id, Marks: marks.Resolve(ms, opts)})
	}
	for _, v := range doc.Verses {
		add(ir.TargetVerse, v.ID)
	}
	for _, h := range doc.Headings {
		add(ir.TargetHeading, h.ID)
	}
	return out
}

// ValidateCmd reports document inconsistencies.
type ValidateCmd struct {
	Path string `arg:"" help:"Document file" type:"existingfile"`
}

func (c *ValidateCmd) Run(e *runEnv) error {
	syntax, err := source.CheckSyntax(c.Path)
	if err != nil {
		return err
	}
	for _, serr := range syntax {
		fmt.Fprintln(e.out, serr)
	}
	if len(syntax) > 0 {
		return fmt.Errorf("%s: %d syntax %s", c.Path, len(syntax), plural(len(syntax), "error", "errors"))
	}

	doc, err := load(e.ctx, c.Path, "")
	if err != nil {
		return err
	}
	errs := ir.ValidateDocument(doc)
	for _, verr := range errs {
		fmt.Fprintln(e.out, verr)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: %d validation %s", c.Path, len(errs), plural(len(errs), "error", "errors"))
	}
	_, err = fmt.Fprintf(e.out, "%s: ok (%d verses, %d marks)\n", c.Path, len(doc.Verses), len(doc.Marks))
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
