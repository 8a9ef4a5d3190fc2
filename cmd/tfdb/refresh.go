package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tf2-trader/internal/report"
	"tf2-trader/internal/valuation"
)

type refreshCmd struct {
	top   int
	plain bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "fetch inventory and prices, then value the backpack" }
func (*refreshCmd) Usage() string {
	return `tfdb refresh [-top <n>] [-plain]

  Fetches the inventory and the price feed, values every stack, saves the
  dashboard cache and prints the summary.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.top, "top", 20, "Number of deals to print, 0 for all")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of styled output")
}

func (c *refreshCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(ctx, a.Config.RefreshTimeout)
	defer cancel()

	snap, err := a.Engine.Refresh(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(os.Stderr, "Refresh timed out after %s\n", a.Config.RefreshTimeout)
		return subcommands.ExitFailure
	}
	if errors.Is(err, valuation.ErrRefreshInProgress) {
		fmt.Fprintln(os.Stderr, "A refresh is already running")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error refreshing: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(report.Markdown(snap, c.top), c.plain)
	return subcommands.ExitSuccess
}

// printMarkdown writes md to stdout, styled unless plain is set.
func printMarkdown(md string, plain bool) {
	if plain {
		fmt.Print(md)
		return
	}
	out, err := report.Terminal(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
