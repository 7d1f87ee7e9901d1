package versref

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// clause is one normalized "chapter SEP from-to;" element.
//
//nolint:govet // participle grammar tags are not standard struct tags
type clause struct {
	Chapter int    `@Number ( ":" | "," )`
	From    string `@( Number Letters? | "*" ) "-"`
	To      string `@( Number Letters? | "*" ) ";"?`
}

var clauseLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+`},
	{Name: "Letters", Pattern: `[a-zA-Z]+`},
	{Name: "Punct", Pattern: `[:,;*-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var clauseParser = participle.MustBuild[clause](
	participle.Lexer(clauseLexer),
	participle.Elide("Whitespace"),
)

// verseToken is a single verse: digits with an optional letter suffix, or "*".
//
//nolint:govet // participle grammar tags are not standard struct tags
type verseToken struct {
	Wildcard bool   `  @"*"`
	Number   int    `| @Number`
	Letters  string `  @Letters?`
}

// verseLexer has no whitespace rule, so padded tokens are rejected.
var verseLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `\d+`},
	{Name: "Letters", Pattern: `[a-z]+`},
	{Name: "Star", Pattern: `\*`},
})

var verseParser = participle.MustBuild[verseToken](
	participle.Lexer(verseLexer),
)
