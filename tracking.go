package stockwatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/stockwatch/date"
)

// This file contains the tracking table, the system's only persistent state,
// and its reconciliation against the symbol registry.

// ErrTracking is wrapped by failures to read the persisted tracking table.
var ErrTracking = errors.New("tracking table error")

// seedValue is the high and close seeded on a newly tracked symbol. It marks
// a record as "never priced" together with the empty dates.
const seedValue = 1

// Record is the persistent state of one tracked symbol.
type Record struct {
	Symbol    string
	High      float64   // highest window-minimum close ever confirmed
	HighDate  date.Date // day High was last raised; zero until first raise
	Close     float64   // minimum close of the last refresh window
	Tolerance Percent   // drawdown beyond which the symbol is flagged for selling
	Updated   date.Date // day of the last successful refresh; zero until first refresh
}

// Table is the tracking table: one Record per tracked symbol, unique and
// always sorted by symbol for deterministic diffs and output.
type Table struct {
	records []*Record
	index   map[string]*Record
}

// NewTable returns an empty tracking table.
func NewTable() *Table {
	return &Table{index: make(map[string]*Record)}
}

// Len returns the number of tracked symbols.
func (t *Table) Len() int { return len(t.records) }

// Get returns the record for symbol, or nil if it is not tracked.
func (t *Table) Get(symbol string) *Record { return t.index[symbol] }

// Records returns the records in symbol order. The slice is shared with the
// table; callers mutate records, not the slice.
func (t *Table) Records() []*Record { return t.records }

// Symbols returns the tracked symbols in ascending order.
func (t *Table) Symbols() []string {
	symbols := make([]string, 0, len(t.records))
	for _, rec := range t.records {
		symbols = append(symbols, rec.Symbol)
	}
	return symbols
}

func (t *Table) add(rec *Record) {
	t.records = append(t.records, rec)
	t.index[rec.Symbol] = rec
}

func (t *Table) sort() {
	slices.SortFunc(t.records, func(a, b *Record) int {
		return strings.Compare(a.Symbol, b.Symbol)
	})
}

// Reconcile diffs the table against the current registry: registry symbols
// not yet tracked are inserted with seed values, tracked symbols that left
// the registry are removed, everything else keeps its state untouched.
//
// Reconcile is idempotent: a second call with the same registry is a no-op.
func (t *Table) Reconcile(reg Registry, defaultTolerance Percent) (added, removed []string) {
	for _, symbol := range reg {
		if t.Get(symbol) != nil {
			continue
		}
		t.add(&Record{
			Symbol:    symbol,
			High:      seedValue,
			Close:     seedValue,
			Tolerance: defaultTolerance,
		})
		added = append(added, symbol)
	}

	kept := t.records[:0]
	for _, rec := range t.records {
		if reg.Has(rec.Symbol) {
			kept = append(kept, rec)
		} else {
			removed = append(removed, rec.Symbol)
			delete(t.index, rec.Symbol)
		}
	}
	t.records = kept
	t.sort()
	return added, removed
}

// trackingHeader is the persisted tracking table header, bit-exact.
var trackingHeader = []string{"symbol", "high", "high_date", "close", "tolerance", "updated"}

// DecodeTable reads the persisted tracking table. Any malformed content is a
// reconcile-stopping error (wrapped in ErrTracking): the table is the
// system's state and must not be silently repaired.
func DecodeTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read header: %v", ErrTracking, err)
	}
	if !slices.Equal(header, trackingHeader) {
		return nil, fmt.Errorf("%w: invalid header %v, want %v", ErrTracking, header, trackingHeader)
	}

	t := NewTable()
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrTracking, line, err)
		}
		rec, err := decodeRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrTracking, line, err)
		}
		if t.Get(rec.Symbol) != nil {
			return nil, fmt.Errorf("%w: line %d: duplicate symbol %q", ErrTracking, line, rec.Symbol)
		}
		t.add(rec)
	}
	t.sort()
	return t, nil
}

func decodeRecord(row []string) (*Record, error) {
	if len(row) != len(trackingHeader) {
		return nil, fmt.Errorf("want %d fields, got %d", len(trackingHeader), len(row))
	}
	rec := &Record{Symbol: row[0]}
	if rec.Symbol == "" {
		return nil, errors.New("empty symbol")
	}
	var err error
	if rec.High, err = strconv.ParseFloat(row[1], 64); err != nil {
		return nil, fmt.Errorf("invalid high %q: %w", row[1], err)
	}
	if rec.HighDate, err = decodeDate(row[2]); err != nil {
		return nil, fmt.Errorf("invalid high_date: %w", err)
	}
	if rec.Close, err = strconv.ParseFloat(row[3], 64); err != nil {
		return nil, fmt.Errorf("invalid close %q: %w", row[3], err)
	}
	if rec.Tolerance, err = ParsePercent(row[4]); err != nil {
		return nil, fmt.Errorf("invalid tolerance: %w", err)
	}
	if rec.Updated, err = decodeDate(row[5]); err != nil {
		return nil, fmt.Errorf("invalid updated: %w", err)
	}
	return rec, nil
}

// decodeDate maps the empty-string sentinel to the zero date.
func decodeDate(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// Encode writes the table in its persisted form, sorted by symbol, with the
// empty-string sentinel for unset dates.
func (t *Table) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trackingHeader); err != nil {
		return err
	}
	for _, rec := range t.records {
		row := []string{
			rec.Symbol,
			strconv.FormatFloat(rec.High, 'f', -1, 64),
			rec.HighDate.String(),
			strconv.FormatFloat(rec.Close, 'f', -1, 64),
			rec.Tolerance.csv(),
			rec.Updated.String(),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
