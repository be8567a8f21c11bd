package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockwatch"
	"github.com/etnz/stockwatch/date"
	"github.com/etnz/stockwatch/renderer"
	"github.com/google/subcommands"
)

// checkCmd evaluates the tracking table and prints the digest without
// sending anything.
type checkCmd struct{}

func (*checkCmd) Name() string { return "check" }
func (*checkCmd) Synopsis() string {
	return "evaluate alerts and print the digest without sending email"
}
func (*checkCmd) Usage() string {
	return `stw check

  Evaluates drawdown and stagnation for every tracked symbol against the
  persisted tracking table and prints the digest that 'run' would email.
  Does not fetch prices and does not send anything.
`
}
func (*checkCmd) SetFlags(*flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	alerts := stockwatch.Evaluate(table, cfg.StagnationDays, date.Today())
	if alerts.Empty() {
		fmt.Println("nothing to report")
		return subcommands.ExitSuccess
	}

	fmt.Println(alerts.Subject())
	printMarkdown(renderer.AlertMarkdown(alerts))
	return subcommands.ExitSuccess
}
