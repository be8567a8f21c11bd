// Package cmd implements the stw command line application.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockwatch"
	"github.com/etnz/stockwatch/elasticemail"
	"github.com/etnz/stockwatch/eodhd"
	"github.com/etnz/stockwatch/renderer"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&runCmd{}, "tracking")
	c.Register(&importCmd{}, "tracking")
	c.Register(&updateCmd{}, "tracking")
	c.Register(&checkCmd{}, "tracking")
	c.Register(&toleranceCmd{}, "tracking")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global flag variables.

var eodhdApiFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices.\n If missing it will read the environment variable EODHD_API_KEY. You can get one at https://eodhd.com/")

// loadConfig reads the environment configuration and applies flag overrides.
func loadConfig() stockwatch.Config {
	cfg := stockwatch.LoadConfig()
	if *eodhdApiFlag != "" {
		cfg.EodhdAPIKey = *eodhdApiFlag
	}
	return cfg
}

// newTracker wires the tracker with its live collaborators.
func newTracker(cfg stockwatch.Config) *stockwatch.Tracker {
	return &stockwatch.Tracker{
		Config:   cfg,
		Provider: eodhd.New(cfg.EodhdAPIKey),
		Notifier: elasticemail.New(cfg),
		Compose:  renderer.Compose,
	}
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the terminal renderer is unavailable.
func printMarkdown(md string) {
	out, err := glamour.RenderWithEnvironmentConfig(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
