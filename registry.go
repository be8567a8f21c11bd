package stockwatch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"sort"
)

// This file contains the portfolio importer: broker CSV exports are merged
// into a single sorted, deduplicated symbol registry.

// ErrImport is wrapped by every importer failure that must abort the run
// before any state is mutated.
var ErrImport = errors.New("import error")

// symbolColumn is the one column every broker export must carry.
const symbolColumn = "Symbol"

// Registry is the set of symbols currently held, sorted and deduplicated.
// It is recomputed on every import and is not stateful beyond the hand-off
// to the reconciler.
type Registry []string

// Has reports whether the registry contains the given symbol.
func (r Registry) Has(symbol string) bool {
	_, found := slices.BinarySearch(r, symbol)
	return found
}

// ImportRegistry merges every "*.csv" file of dir into a Registry.
//
// Files are read in lexical order so that the first-occurrence rule is
// reproducible across runs. A file that cannot be parsed, or that has no
// Symbol column, is logged and skipped; the import only fails (with
// ErrImport) when no file yields any symbol at all.
func ImportRegistry(dir string) (Registry, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("%w: bad input directory %q: %v", ErrImport, dir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no input files in %q", ErrImport, dir)
	}
	sort.Strings(files)

	seen := make(map[string]bool)
	var symbols Registry
	parsed := 0
	for _, file := range files {
		fileSymbols, err := readSymbols(file)
		if err != nil {
			log.Printf("skipping input file %q: %v", file, err)
			continue
		}
		parsed++
		for _, s := range fileSymbols {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			symbols = append(symbols, s)
		}
	}
	if parsed == 0 {
		return nil, fmt.Errorf("%w: no readable input files in %q", ErrImport, dir)
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("%w: no symbols found in %q", ErrImport, dir)
	}
	sort.Strings(symbols)
	return symbols, nil
}

// readSymbols extracts the Symbol column from one broker export. All other
// columns are broker-specific noise and are dropped.
func readSymbols(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Broker exports are not always rectangular.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	col := slices.Index(header, symbolColumn)
	if col < 0 {
		return nil, fmt.Errorf("no %q column in header %v", symbolColumn, header)
	}

	var symbols []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read row: %w", err)
		}
		if col < len(record) {
			symbols = append(symbols, record[col])
		}
	}
	return symbols, nil
}

// DecodeRegistry reads a persisted registry: a one-column CSV with header
// "Symbol".
func DecodeRegistry(r io.Reader) (Registry, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read registry header: %w", err)
	}
	if len(header) != 1 || header[0] != symbolColumn {
		return nil, fmt.Errorf("invalid registry header %v, want [%s]", header, symbolColumn)
	}
	var reg Registry
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read registry row: %w", err)
		}
		if record[0] != "" {
			reg = append(reg, record[0])
		}
	}
	sort.Strings(reg)
	reg = slices.Compact(reg)
	return reg, nil
}

// Encode writes the registry in its persisted form: header "Symbol", one
// symbol per row, sorted ascending.
func (r Registry) Encode(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{symbolColumn}); err != nil {
		return err
	}
	for _, s := range r {
		if err := cw.Write([]string{s}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
