package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tf2-trader/internal/report"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write the cached dashboard to an xlsx workbook" }
func (*exportCmd) Usage() string {
	return `tfdb export [-o <file.xlsx>]

  Writes the items and deals of the last refresh to a spreadsheet.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "backpack.xlsx", "Output workbook")
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	snap, err := a.Engine.LoadCached()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading dashboard cache: %v\n", err)
		return subcommands.ExitFailure
	}
	if snap == nil {
		fmt.Fprintln(os.Stderr, "No cached dashboard, run 'tfdb refresh' first")
		return subcommands.ExitFailure
	}

	if err := report.WriteXLSX(snap, c.output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Wrote %d stacks and %d deals to %s\n", len(snap.Items), len(snap.Deals), c.output)
	return subcommands.ExitSuccess
}
