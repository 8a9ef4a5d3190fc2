package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tf2-trader/internal/report"
)

type showCmd struct {
	top   int
	items bool
	plain bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print the cached dashboard without fetching anything" }
func (*showCmd) Usage() string {
	return `tfdb show [-top <n>] [-items] [-plain]

  Prints the dashboard saved by the last refresh.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 20, "Number of deals to print, 0 for all")
	f.BoolVar(&c.items, "items", false, "Also list every stack")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of styled output")
}

func (c *showCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	md := report.Markdown(snap, c.top)
	if c.items {
		md += "\n" + report.ItemsMarkdown(snap.Items)
	}
	printMarkdown(md, c.plain)
	return subcommands.ExitSuccess
}
