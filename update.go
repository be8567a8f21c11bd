package stockwatch

import (
	"fmt"
	"log"

	"github.com/etnz/stockwatch/date"
)

// This file contains the price updater: recent closes are folded into the
// tracking table's rolling high/close fields.

// PriceProvider returns daily closing prices for a set of symbols.
//
// Implementations return one series per symbol for the inclusive [from, to]
// window; symbols they cannot resolve are simply absent from the result.
// Only a total failure (nothing could be fetched at all) is an error.
type PriceProvider interface {
	Closes(symbols []string, from, to date.Date) (map[string]*date.History[float64], error)
}

// UpdateReport lists the outcome of one price refresh per symbol.
type UpdateReport struct {
	Updated  []string // symbols whose close (and possibly high) changed
	NewHighs []string // subset of Updated whose high was raised
	Missing  []string // symbols the provider had no data for, left untouched
}

// UpdatePrices fetches the last lookback business days of closes for every
// tracked symbol and folds them into the table.
//
// Per symbol the fold uses the minimum close of the window, not the latest:
// the table tracks the worst intra-window dip, and the high is only ever
// raised from a confirmed window minimum so a single-day spike cannot
// inflate it. Symbols missing from the provider response keep their state
// and are reported in Missing.
//
// A provider error fails the whole refresh: the caller must skip alert
// evaluation for the run rather than alert on stale data.
func (t *Table) UpdatePrices(provider PriceProvider, lookback int, today date.Date) (UpdateReport, error) {
	var report UpdateReport
	if t.Len() == 0 {
		log.Printf("no symbols to update")
		return report, nil
	}

	from := today.AddBusinessDays(-lookback)
	closes, err := provider.Closes(t.Symbols(), from, today)
	if err != nil {
		return report, fmt.Errorf("price fetch failed: %w", err)
	}

	for _, rec := range t.records {
		hist := closes[rec.Symbol]
		if hist == nil || hist.Len() == 0 {
			log.Printf("no price data for %q between %s and %s, keeping previous state", rec.Symbol, from, today)
			report.Missing = append(report.Missing, rec.Symbol)
			continue
		}
		low, _ := hist.Min()
		rec.Close = low
		rec.Updated = today
		if low > rec.High {
			rec.High = low
			rec.HighDate = today
			report.NewHighs = append(report.NewHighs, rec.Symbol)
			log.Printf("new high for %q: %v", rec.Symbol, low)
		}
		report.Updated = append(report.Updated, rec.Symbol)
	}
	return report, nil
}
