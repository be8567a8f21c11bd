package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// importCmd runs the importer and reconciler without touching prices.
type importCmd struct{}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "merge broker exports into the registry and reconcile the tracking table"
}
func (*importCmd) Usage() string {
	return `stw import

  Reads every CSV export in the input directory, merges them into the
  symbol registry, and reconciles the tracking table: new symbols are
  seeded, symbols no longer held are removed, everything else keeps its
  state.
`
}
func (*importCmd) SetFlags(*flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	cfg := loadConfig()
	if err := cfg.EnsureDirs(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := newTracker(cfg).ImportAndReconcile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("reconciled tracking table %s\n", cfg.TrackingFile)
	return subcommands.ExitSuccess
}
