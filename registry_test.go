package stockwatch

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestImportRegistry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broker_a.csv", "Symbol,Qty,Price\nMCD.US,10,100\nAAPL.US,5,200\nMCD.US,2,99\n")
	writeFile(t, dir, "broker_b.csv", "Account,Symbol\nx,ZZZ.US\ny,AAPL.US\n")

	reg, err := ImportRegistry(dir)
	if err != nil {
		t.Fatalf("ImportRegistry() unexpected error = %v", err)
	}

	want := Registry{"AAPL.US", "MCD.US", "ZZZ.US"}
	if !slices.Equal(reg, want) {
		t.Errorf("ImportRegistry() = %v, want %v", reg, want)
	}
}

func TestImportRegistrySkipsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.csv", "Symbol\nMCD.US\n")
	writeFile(t, dir, "no_symbol.csv", "Ticker,Qty\nAAPL,5\n")

	reg, err := ImportRegistry(dir)
	if err != nil {
		t.Fatalf("ImportRegistry() unexpected error = %v", err)
	}
	want := Registry{"MCD.US"}
	if !slices.Equal(reg, want) {
		t.Errorf("ImportRegistry() = %v, want %v", reg, want)
	}
}

func TestImportRegistryErrors(t *testing.T) {
	testCases := []struct {
		name  string
		setup func(t *testing.T, dir string)
	}{
		{"No input files", func(t *testing.T, dir string) {}},
		{"No Symbol column anywhere", func(t *testing.T, dir string) {
			writeFile(t, dir, "a.csv", "Ticker\nAAPL\n")
		}},
		{"Symbol column but no rows", func(t *testing.T, dir string) {
			writeFile(t, dir, "a.csv", "Symbol\n")
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			tc.setup(t, dir)
			_, err := ImportRegistry(dir)
			if !errors.Is(err, ErrImport) {
				t.Errorf("ImportRegistry() error = %v, want ErrImport", err)
			}
		})
	}
}

func TestRegistryRoundTrip(t *testing.T) {
	reg := Registry{"AAPL.US", "MCD.US"}

	var buf strings.Builder
	if err := reg.Encode(&buf); err != nil {
		t.Fatalf("Encode() unexpected error = %v", err)
	}

	want := "Symbol\nAAPL.US\nMCD.US\n"
	if buf.String() != want {
		t.Errorf("Encode() = %q, want %q", buf.String(), want)
	}

	got, err := DecodeRegistry(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("DecodeRegistry() unexpected error = %v", err)
	}
	if !slices.Equal(got, reg) {
		t.Errorf("DecodeRegistry() = %v, want %v", got, reg)
	}
}

func TestDecodeRegistryBadHeader(t *testing.T) {
	_, err := DecodeRegistry(strings.NewReader("Ticker\nAAPL\n"))
	if err == nil {
		t.Error("DecodeRegistry() with bad header, want error")
	}
}
