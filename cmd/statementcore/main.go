// Command statementcore converts rules-driven bank statement PDFs to
// CSV/XLSX, batch-processes directories, watches a directory for new
// files, or serves the extraction engine over HTTP — all driven by
// declarative Config records rather than a hardcoded per-bank parser.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

const version = "1.0.0"

// Globals are flags shared across every subcommand.
type Globals struct {
	Configs string           `help:"Directory of declarative statement Config JSON records." default:"configs" short:"c"`
	Version kong.VersionFlag `help:"Show version and exit."`
}

type cli struct {
	Globals

	Convert  ConvertCmd  `cmd:"" help:"Convert a single PDF statement to CSV or XLSX."`
	Batch    BatchCmd    `cmd:"" help:"Convert every PDF statement in a directory."`
	Watch    WatchCmd    `cmd:"" help:"Watch a directory and convert new PDF statements as they arrive."`
	Schedule ScheduleCmd `cmd:"" help:"Re-sweep a directory on a cron schedule."`
	Configs  ConfigsCmd  `cmd:"" help:"Inspect the registered declarative statement Configs."`
	Serve    ServeCmd    `cmd:"" help:"Start the HTTP API server."`
}

func main() {
	var c cli
	ctx := kong.Parse(&c,
		kong.Name("statementcore"),
		kong.Description("Rules-driven bank statement PDF extractor."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	if err := ctx.Run(&c.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("✗"), err)
		os.Exit(1)
	}
}
