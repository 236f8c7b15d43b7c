// Command kansoctl runs the productivity engine offline over a JSON export of
// daily records, and mints development tokens for the API.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Version kong.VersionFlag

	Aggregate AggregateCmd `cmd:"" help:"Summarize records by day, week or month."`
	Streak    StreakCmd    `cmd:"" help:"Compute current and longest streak."`
	Token     TokenCmd     `cmd:"" help:"Mint a bearer token for a user."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kansoctl"),
		kong.Description("Offline productivity aggregation and streak engine"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	err := ctx.Run(&Context{In: os.Stdin, Out: os.Stdout})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
