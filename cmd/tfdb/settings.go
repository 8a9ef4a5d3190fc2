package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"tf2-trader/internal/services/settings"
)

// settingsCmd is a container for the settings subcommands.
type settingsCmd struct{}

func (*settingsCmd) Name() string     { return "settings" }
func (*settingsCmd) Synopsis() string { return "show or change the saved credentials" }
func (*settingsCmd) Usage() string {
	return `settings <subcommand> [args]

Commands:
  show - Print the saved SteamID64 and masked API keys.
  set  - Change one or more saved values.
`
}

func (*settingsCmd) SetFlags(f *flag.FlagSet) {}
func (*settingsCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "settings")
	commander.Register(&settingsShowCmd{}, "")
	commander.Register(&settingsSetCmd{}, "")
	return commander.Execute(ctx, args...)
}

type settingsShowCmd struct{}

func (*settingsShowCmd) Name() string     { return "show" }
func (*settingsShowCmd) Synopsis() string { return "print the saved settings" }
func (*settingsShowCmd) Usage() string    { return "settings show\n" }

func (*settingsShowCmd) SetFlags(f *flag.FlagSet) {}

func (*settingsShowCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	st, err := a.Settings.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("SteamID64:           %s\n", st.SteamID64)
	fmt.Printf("Steam API key:       %s\n", mask(st.SteamAPIKey))
	fmt.Printf("backpack.tf API key: %s\n", mask(st.BackpackTFAPIKey))
	fmt.Printf("Settings file:       %s\n", a.Paths.SettingsPath())
	return subcommands.ExitSuccess
}

type settingsSetCmd struct {
	steamID64  string
	steamKey   string
	backpackTF string
}

func (*settingsSetCmd) Name() string     { return "set" }
func (*settingsSetCmd) Synopsis() string { return "change saved settings" }
func (*settingsSetCmd) Usage() string {
	return `settings set [-steamid <id>] [-steam-key <key>] [-bptf-key <key>]

  Only the flags given are changed; pass an empty value to clear one.
`
}

func (c *settingsSetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.steamID64, "steamid", "", "SteamID64 of the backpack owner")
	f.StringVar(&c.steamKey, "steam-key", "", "Steam Web API key")
	f.StringVar(&c.backpackTF, "bptf-key", "", "backpack.tf API key")
}

func (c *settingsSetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NFlag() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	a, err := openApp()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	st, err := a.Settings.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "steamid":
			st.SteamID64 = c.steamID64
		case "steam-key":
			st.SteamAPIKey = c.steamKey
		case "bptf-key":
			st.BackpackTFAPIKey = c.backpackTF
		}
	})
	if err := a.Settings.Save(st); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Settings saved")
	return subcommands.ExitSuccess
}

// mask renders a secret for the terminal.
func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	return settings.Mask(s)
}
