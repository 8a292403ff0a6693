package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"nice_day_bot/internal/cli"
	"nice_day_bot/internal/infra/refdata"
)

var CLI cli.Root

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("niceday"),
		kong.Description("Biorhythm calculator: physical, emotional and intellectual cycles"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	loc, err := time.LoadLocation(CLI.Timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid time zone %q: %v\n", CLI.Timezone, err)
		os.Exit(1)
	}
	organs, err := refdata.LoadOrganSchedule()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Out:      os.Stdout,
		Organs:   organs,
		Location: loc,
		Now:      time.Now,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
