// Command vbible renders Bible chapters with footnotes to Markdown or HTML
// and parses verse references.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/v-bible/js-sdk/core/ir"
	"github.com/v-bible/js-sdk/core/render"
	"github.com/v-bible/js-sdk/core/sqlite"
	"github.com/v-bible/js-sdk/internal/logging"
)

var version = "0.1.0"

// CLI defines the command-line interface for vbible.
type CLI struct {
	LogLevel   string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"warn" env:"VBIBLE_LOG_LEVEL" enum:"debug,info,warn,error"`
	LogFormat  string `name:"log-format" help:"Log format (text, json)" default:"text" env:"VBIBLE_LOG_FORMAT" enum:"text,json"`
	CacheSize  int    `name:"cache-size" help:"Converted fragments kept in memory" default:"1024" env:"VBIBLE_CACHE_SIZE"`
	CacheBytes int64  `name:"cache-bytes" help:"Upper bound on cached HTML in bytes (0 for no limit)" default:"16777216" env:"VBIBLE_CACHE_BYTES"`

	Render    RenderCmd    `cmd:"" help:"Render a document to Markdown or HTML"`
	Resolve   ResolveCmd   `cmd:"" help:"Print resolved marks per target as JSON"`
	Parse     ParseCmd     `cmd:"" help:"Parse a verse reference"`
	Normalize NormalizeCmd `cmd:"" help:"Normalize a verse reference query"`
	Validate  ValidateCmd  `cmd:"" help:"Check a document for inconsistencies"`
	Hash      HashCmd      `cmd:"" help:"Print the BLAKE3 fingerprint of a document"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

// runEnv is bound into every command's Run.
type runEnv struct {
	ctx        context.Context
	out        io.Writer
	cacheSize  int
	cacheBytes int64
}

func (e *runEnv) renderer(opts ...render.Option) *render.Renderer {
	conv := render.NewBoundedCachedConverter(render.NewGoldmarkConverter(), e.cacheSize, e.cacheBytes)
	base := []render.Option{
		render.WithConverter(conv),
		render.WithLogger(logging.LoggerFromContext(e.ctx)),
	}
	return render.New(append(base, opts...)...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func setupLogging(c *CLI) error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(e *runEnv) error {
	info := sqlite.GetInfo()
	_, err := fmt.Fprintf(e.out, "vbible version %s\nsqlite driver: %s (%s, %s)\n",
		version, info.DriverName, info.DriverType, info.Package)
	return err
}

// HashCmd prints the document fingerprint.
type HashCmd struct {
	Path    string `arg:"" help:"Document file" type:"existingfile"`
	Chapter string `help:"Only hash this chapter id"`
}

func (c *HashCmd) Run(e *runEnv) error {
	doc, err := load(e.ctx, c.Path, c.Chapter)
	if err != nil {
		return err
	}
	sum, err := ir.HashDocument(doc)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, sum)
	return err
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("vbible"),
		kong.Description("Render Bible chapters with footnotes and parse verse references"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	ctx.FatalIfErrorf(setupLogging(&cli))

	runCtx := logging.WithRunID(context.Background(), logging.NewRunID())
	env := &runEnv{ctx: runCtx, out: os.Stdout, cacheSize: cli.CacheSize, cacheBytes: cli.CacheBytes}

	start := time.Now()
	err := ctx.Run(env)
	if err != nil {
		logging.CommandError(runCtx, ctx.Command(), err)
	} else {
		logging.DebugContext(runCtx, "command finished", "command", ctx.Command(), "duration_ms", time.Since(start).Milliseconds())
	}
	ctx.FatalIfErrorf(err)
}
