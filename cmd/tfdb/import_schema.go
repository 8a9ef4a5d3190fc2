package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type importSchemaCmd struct{}

func (*importSchemaCmd) Name() string     { return "import-schema" }
func (*importSchemaCmd) Synopsis() string { return "copy a schema_items.json and its icons into the cache" }
func (*importSchemaCmd) Usage() string {
	return `tfdb import-schema <path/to/schema_items.json>

  Copies the schema file, and the icons folder next to it when present,
  into the cache directory.
`
}

func (*importSchemaCmd) SetFlags(f *flag.FlagSet) {}

func (*importSchemaCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.Schema.ImportFromFile(f.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing schema: %v\n", err)
		return subcommands.ExitFailure
	}

	index := a.Schema.LoadIndex()
	if index == nil {
		fmt.Fprintln(os.Stderr, "Schema copied but could not be loaded, check the log file")
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d items into %s\n", len(index.Map), index.Path)
	return subcommands.ExitSuccess
}
