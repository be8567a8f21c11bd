package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockwatch"
	"github.com/etnz/stockwatch/date"
	"github.com/etnz/stockwatch/eodhd"
	"github.com/google/subcommands"
)

// updateCmd refreshes prices without evaluating alerts.
type updateCmd struct{}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "refresh closing prices for every tracked symbol"
}
func (*updateCmd) Usage() string { return "stw update\n" }

func (*updateCmd) SetFlags(*flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	cfg := loadConfig()
	table, err := stockwatch.LoadTable(cfg.TrackingFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report, err := table.UpdatePrices(eodhd.New(cfg.EodhdAPIKey), cfg.LookbackDays, date.Today())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := stockwatch.SaveTable(cfg.TrackingFile, table); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("updated %d symbols", len(report.Updated))
	if len(report.NewHighs) > 0 {
		fmt.Printf(", new highs: %v", report.NewHighs)
	}
	if len(report.Missing) > 0 {
		fmt.Printf(", no data for: %v", report.Missing)
	}
	fmt.Println()
	return subcommands.ExitSuccess
}
