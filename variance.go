package stockwatch

import (
	"github.com/etnz/stockwatch/date"
)

// This file contains the variance and alert evaluator. It is pure
// computation over the tracking table: same table in, same report out.

// AlertEntry is one symbol flagged by a drawdown bucket.
type AlertEntry struct {
	Symbol   string
	Drawdown Percent
}

// StagnantEntry is one symbol whose high has not moved for too long.
type StagnantEntry struct {
	Symbol string
	Days   int
}

// AlertReport classifies every tracked symbol into alert buckets. A symbol
// may appear in Breach and in one percent bucket at the same time. Buckets
// are listed in priority order.
type AlertReport struct {
	Date        date.Date
	Breach      []AlertEntry    // drawdown beyond the symbol's own tolerance
	TenPercent  []AlertEntry    // drawdown in [10, inf)
	FivePercent []AlertEntry    // drawdown in [5, 10)
	Stagnant    []StagnantEntry // high older than the stagnation threshold
}

// Drawdown returns the percent decline of the record's close from its high.
//
// It reports ok=false when the high is unset or zero (never-priced seed
// state, or corrupt data), which exempts the record from all percent
// buckets. A negative drawdown (close above the recorded high, possible on
// stale data) is clamped to zero rather than corrected.
func (r *Record) Drawdown() (Percent, bool) {
	if r.High <= 0 {
		return 0, false
	}
	d := Percent((r.High - r.Close) / r.High * 100)
	if d < 0 {
		d = 0
	}
	return d, true
}

// Staleness returns the number of days between the record's last refresh
// and the day its high was set. It reports ok=false when either date is
// unset, which exempts the record from the stagnation check.
func (r *Record) Staleness() (int, bool) {
	if r.Updated.IsZero() || r.HighDate.IsZero() {
		return 0, false
	}
	days := r.Updated.Sub(r.HighDate)
	if days < 0 {
		days = -days
	}
	return days, true
}

// Evaluate classifies every record of the table for the given day.
//
// Bucket boundaries are half-open: a drawdown of exactly 5 lands in the
// five-percent bucket, exactly 10 in the ten-percent bucket.
func Evaluate(t *Table, stagnationDays int, on date.Date) *AlertReport {
	report := &AlertReport{Date: on}
	for _, rec := range t.Records() {
		if d, ok := rec.Drawdown(); ok {
			if d > rec.Tolerance {
				report.Breach = append(report.Breach, AlertEntry{rec.Symbol, d})
			}
			switch {
			case d >= 10:
				report.TenPercent = append(report.TenPercent, AlertEntry{rec.Symbol, d})
			case d >= 5:
				report.FivePercent = append(report.FivePercent, AlertEntry{rec.Symbol, d})
			}
		}
		if days, ok := rec.Staleness(); ok && days > stagnationDays {
			report.Stagnant = append(report.Stagnant, StagnantEntry{rec.Symbol, days})
		}
	}
	return report
}

// Empty reports whether no bucket was filled, in which case no message is
// produced and the notifier is never invoked.
func (r *AlertReport) Empty() bool {
	return len(r.Breach) == 0 && len(r.TenPercent) == 0 &&
		len(r.FivePercent) == 0 && len(r.Stagnant) == 0
}

// Subject names the highest-priority non-empty bucket.
func (r *AlertReport) Subject() string {
	var category string
	switch {
	case len(r.Breach) > 0:
		category = "Tolerance Breach"
	case len(r.TenPercent) > 0:
		category = "10% Threshold Breached"
	case len(r.FivePercent) > 0:
		category = "5% Threshold Breached"
	case len(r.Stagnant) > 0:
		category = "Stagnant Positions"
	default:
		return ""
	}
	return "Stock Alert: " + category + " - " + r.Date.String()
}
