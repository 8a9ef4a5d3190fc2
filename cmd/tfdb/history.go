package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tf2-trader/internal/history"
	"tf2-trader/internal/report"
)

type historyCmd struct {
	limit int
	plain bool
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list recorded refreshes (requires DATABASE_URL)" }
func (*historyCmd) Usage() string {
	return `tfdb history [-n <count>] [-plain]

  Lists the portfolio value recorded at each refresh, newest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Number of refreshes to list")
	f.BoolVar(&c.plain, "plain", false, "Print raw markdown instead of styled output")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if a.History == nil {
		fmt.Fprintln(os.Stderr, "History is disabled, set DATABASE_URL")
		return subcommands.ExitFailure
	}
	records, err := a.History.Recent(ctx, c.limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading history: %v\n", err)
		return subcommands.ExitFailure
	}
	md := report.HistoryMarkdown(records)
	if trend := history.ComputeTrend(records); trend.ChangeRef != nil {
		md += fmt.Sprintf("\nLast change: %s", report.FormatRef(*trend.ChangeRef))
		if trend.MA5 != nil {
			md += fmt.Sprintf(", 5-refresh average: %s", report.FormatRef(*trend.MA5))
		}
		md += "\n"
	}
	printMarkdown(md, c.plain)
	return subcommands.ExitSuccess
}
