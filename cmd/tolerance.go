package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockwatch"
	"github.com/google/subcommands"
)

// toleranceCmd adjusts the per-symbol alert threshold.
type toleranceCmd struct{}

func (*toleranceCmd) Name() string { return "tolerance" }
func (*toleranceCmd) Synopsis() string {
	return "set the drawdown tolerance of a tracked symbol"
}
func (*toleranceCmd) Usage() string {
	return `stw tolerance <symbol> <percent>

  Sets the drawdown percentage beyond which the symbol is flagged for
  selling, e.g. 'stw tolerance MCD.US 20'.
`
}
func (*toleranceCmd) SetFlags(*flag.FlagSet) {}

func (c *toleranceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "a symbol and a percent are required as arguments")
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)
	tolerance, err := stockwatch.ParsePercent(f.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	cfg := loadConfig()
	table, err := stockwatch.LoadTable(cfg.TrackingFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	rec := table.Get(symbol)
	if rec == nil {
		fmt.Fprintf(os.Stderr, "unknown symbol %q\n", symbol)
		return subcommands.ExitFailure
	}
	rec.Tolerance = tolerance

	if err := stockwatch.SaveTable(cfg.TrackingFile, table); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s tolerance set to %s\n", symbol, tolerance)
	return subcommands.ExitSuccess
}
