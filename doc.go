// Package stockwatch tracks a personal equity portfolio against each
// position's historical high.
//
// The model is deliberately small: broker CSV exports are merged into a
// registry of symbols, the registry is reconciled against a persisted
// tracking table (one record per symbol with its rolling high, last low
// close and alert tolerance), recent closing prices are folded into the
// table, and positions whose drawdown from the high crosses a threshold
// (or whose high has gone stale) are collected into a single alert digest
// delivered by email.
//
// The package holds the data model and the pure operations; network
// collaborators live in the eodhd (price history) and elasticemail
// (notification) packages, and the command line lives in cmd.
package stockwatch
