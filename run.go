package stockwatch

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/etnz/stockwatch/date"
)

// This file contains the orchestrator: one invocation is one pass through
// importer, reconciler, price updater, evaluator and notifier, with the
// persisted tracking table read, mutated and rewritten between phases.

// Tracker wires the configuration and the external collaborators together.
// Compose renders an alert report into a deliverable message; it is
// injected so the domain package stays free of rendering dependencies.
type Tracker struct {
	Config   Config
	Provider PriceProvider
	Notifier Notifier
	Compose  func(*AlertReport) Message
}

// Run executes one tracking pass. With updateInvestments, the broker
// exports are imported and reconciled into the tracking table first;
// routine runs skip straight to the price refresh.
//
// Phase failures follow the propagation policy: import and table errors
// abort before state mutation, a refresh that yields no fresh data at all
// (provider failure or an empty response) skips evaluation rather than
// alerting on stale state, and a notification failure is logged but
// does not fail the run, the computation already succeeded.
func (tr *Tracker) Run(updateInvestments bool) error {
	if updateInvestments {
		if err := tr.ImportAndReconcile(); err != nil {
			return err
		}
	}

	table, err := LoadTable(tr.Config.TrackingFile)
	if err != nil {
		return err
	}

	today := date.Today()
	report, err := table.UpdatePrices(tr.Provider, tr.Config.LookbackDays, today)
	if err != nil {
		// Skip evaluation: alerting on a stale table would be worse than
		// a missed day.
		return err
	}
	if len(report.Missing) > 0 {
		log.Printf("no data for %d of %d symbols: %v", len(report.Missing), table.Len(), report.Missing)
	}
	if table.Len() > 0 && len(report.Updated) == 0 {
		// The provider answered but refreshed nothing: the table is entirely
		// stale, and evaluating it would alert on yesterday's state.
		return fmt.Errorf("no fresh prices for any of the %d tracked symbols, skipping evaluation", table.Len())
	}
	if err := SaveTable(tr.Config.TrackingFile, table); err != nil {
		return err
	}

	alerts := Evaluate(table, tr.Config.StagnationDays, today)
	if alerts.Empty() {
		log.Printf("nothing to report")
		return nil
	}

	msg := tr.Compose(alerts)
	if err := tr.Notifier.Send(msg); err != nil {
		log.Printf("notification failed (alert computed, delivery lost): %v", err)
		return nil
	}
	log.Printf("alert sent: %s", msg.Subject)
	return nil
}

// ImportAndReconcile merges the broker exports into the symbol registry,
// persists it, and reconciles the tracking table against it.
func (tr *Tracker) ImportAndReconcile() error {
	reg, err := ImportRegistry(tr.Config.InputDir)
	if err != nil {
		return err
	}
	if err := SaveRegistry(tr.Config.RegistryFile, reg); err != nil {
		return err
	}
	log.Printf("imported %d symbols", len(reg))

	table, err := LoadTable(tr.Config.TrackingFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("no tracking table at %q, starting empty", tr.Config.TrackingFile)
		table, err = NewTable(), nil
	}
	if err != nil {
		return err
	}

	added, removed := table.Reconcile(reg, tr.Config.DefaultTolerance)
	if len(added) > 0 {
		log.Printf("now tracking: %v", added)
	}
	if len(removed) > 0 {
		log.Printf("no longer tracking: %v", removed)
	}
	return SaveTable(tr.Config.TrackingFile, table)
}

// LoadTable reads the persisted tracking table from path.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open tracking table: %w", err)
	}
	defer f.Close()
	return DecodeTable(f)
}

// SaveTable writes the tracking table to path.
func SaveTable(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write tracking table: %w", err)
	}
	if err := t.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot encode tracking table: %w", err)
	}
	return f.Close()
}

// SaveRegistry writes the symbol registry to path.
func SaveRegistry(path string, reg Registry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write registry: %w", err)
	}
	if err := reg.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot encode registry: %w", err)
	}
	return f.Close()
}
