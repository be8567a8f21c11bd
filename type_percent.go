package stockwatch

import (
	"fmt"
	"strconv"
	"strings"
)

// Percent represents a percentage value, such as a drawdown or a tolerance.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// ParsePercent parses a plain decimal number ("15" or "12.5") into a Percent.
func ParsePercent(s string) (Percent, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percent %q: %w", s, err)
	}
	return Percent(f), nil
}

// csv renders the percent for the tracking table file. A decimal point is
// always present ("15.0" not "15") to keep the on-disk format stable.
func (p Percent) csv() string {
	s := strconv.FormatFloat(float64(p), 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
