package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// runCmd is the scheduled entry point: one full tracking pass.
type runCmd struct {
	updateInvestments bool
}

func (*runCmd) Name() string { return "run" }
func (*runCmd) Synopsis() string {
	return "refresh prices, evaluate alerts, and email the digest"
}
func (*runCmd) Usage() string {
	return `stw run [-update-investments]

  Runs one tracking pass: refresh closing prices for every tracked symbol,
  evaluate drawdown and stagnation alerts, and email the digest when any
  threshold is breached. With -update-investments, the broker exports in
  the input directory are imported and reconciled into the tracking table
  first.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.updateInvestments, "update-investments", false, "import broker exports and reconcile the tracking table before the price pass")
}

func (c *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	cfg := loadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error:\n%v\n", err)
		return subcommands.ExitFailure
	}
	if err := cfg.EnsureDirs(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := newTracker(cfg).Run(c.updateInvestments); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
