package main

import (
	"fmt"

	"github.com/v-bible/js-sdk/core/versref"
)

// ParseCmd parses a verse reference such as "Gen 1:1-3, 5".
type ParseCmd struct {
	Query   string `arg:"" help:"Reference, for example \"John 9:1-12\""`
	Dialect string `short:"d" help:"Separator convention (us, eu)" default:"us" enum:"us,eu" env:"VBIBLE_DIALECT"`
	JSON    bool   `name:"json" help:"Print the references as JSON"`
}

func (c *ParseCmd) Run(e *runEnv) error {
	d, err := versref.ParseDialect(c.Dialect)
	if err != nil {
		return err
	}
	refs, err := versref.ParseBiblicalReference(c.Query, d)
	if err != nil {
		return err
	}
	if c.JSON {
		return writeJSON(e.out, refs)
	}
	for _, r := range refs {
		if _, err := fmt.Fprintln(e.out, r); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeCmd rewrites a query into the normalized clause form.
type NormalizeCmd struct {
	Query   string `arg:"" help:"Chapter and verse part of a reference, for example \"9:1-3,6\""`
	Dialect string `short:"d" help:"Separator convention (us, eu)" default:"us" enum:"us,eu" env:"VBIBLE_DIALECT"`
}

func (c *NormalizeCmd) Run(e *runEnv) error {
	d, err := versref.ParseDialect(c.Dialect)
	if err != nil {
		return err
	}

	var out string
	if d == versref.DialectEU {
		out, err = versref.NormalizeQueryEU(c.Query)
	} else {
		out, err = versref.NormalizeQueryUS(c.Query)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, out)
	return err
}
