// Command tfdb refreshes and inspects the TF2 backpack valuation from a
// terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"tf2-trader/internal/app"
	"tf2-trader/internal/applog"
	"tf2-trader/internal/config"
)

var verbose = flag.Bool("v", false, "Echo log lines to stderr")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	commander.Register(&refreshCmd{}, "dashboard")
	commander.Register(&showCmd{}, "dashboard")
	commander.Register(&exportCmd{}, "dashboard")
	commander.Register(&historyCmd{}, "dashboard")
	commander.Register(&settingsCmd{}, "setup")
	commander.Register(&importSchemaCmd{}, "setup")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := run(ctx, commander)
	stop()
	os.Exit(int(status))
}

func run(ctx context.Context, commander *subcommands.Commander) (status subcommands.ExitStatus) {
	defer func() {
		if r := recover(); r != nil {
			log.Print(applog.Recovered("tfdb", r))
			fmt.Fprintln(os.Stderr, "Unexpected error, see the log file for details.")
			status = subcommands.ExitFailure
		}
	}()
	return commander.Execute(ctx)
}

// openApp loads the environment and wires the services every command uses.
func openApp() (*app.App, error) {
	if err := godotenv.Load(); err != nil && *verbose {
		fmt.Fprintln(os.Stderr, "No .env file found")
	}
	cfg := config.Load()

	var echo io.Writer
	if *verbose {
		echo = os.Stderr
	}
	log.SetOutput(applog.New(cfg.Paths().LogsDir(), echo))

	return app.New(cfg)
}
