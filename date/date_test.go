package date

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		in        string
		want      Date
		expectErr bool
	}{
		{"ISO date", "2025-07-01", New(2025, time.July, 1), false},
		{"Permissive date", "2025-7-1", New(2025, time.July, 1), false},
		{"Empty string", "", Date{}, true},
		{"Garbage", "not-a-date", Date{}, true},
		{"Time suffix", "2025-07-01T00:00:00", Date{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.expectErr {
				t.Fatalf("Parse(%q) error = %v, want error: %v", tc.in, err, tc.expectErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := New(2025, time.July, 1).String(); got != "2025-07-01" {
		t.Errorf("String() = %q, want %q", got, "2025-07-01")
	}
	// The zero date is the "never set" sentinel and must render empty.
	if got := (Date{}).String(); got != "" {
		t.Errorf("zero date String() = %q, want empty", got)
	}
}

func TestIsZero(t *testing.T) {
	if !(Date{}).IsZero() {
		t.Error("zero date IsZero() = false, want true")
	}
	if Today().IsZero() {
		t.Error("Today().IsZero() = true, want false")
	}
}

func TestAddBusinessDays(t *testing.T) {
	// 2025-07-04 is a Friday.
	friday := New(2025, time.July, 4)

	testCases := []struct {
		name string
		from Date
		days int
		want Date
	}{
		{"Back over a weekend", friday.Add(3), -1, friday},            // Monday -1 => Friday
		{"Back within a week", friday, -3, New(2025, time.July, 1)},   // Friday -3 => Tuesday
		{"Back five from Monday", friday.Add(3), -5, New(2025, time.June, 30)},
		{"Forward over a weekend", friday, 1, New(2025, time.July, 7)}, // Friday +1 => Monday
		{"Zero days", friday, 0, friday},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.from.AddBusinessDays(tc.days)
			if got != tc.want {
				t.Errorf("%v.AddBusinessDays(%d) = %v, want %v", tc.from, tc.days, got, tc.want)
			}
			if wd := got.Weekday(); tc.days != 0 && (wd == time.Saturday || wd == time.Sunday) {
				t.Errorf("AddBusinessDays landed on a %v", wd)
			}
		})
	}
}

func TestSub(t *testing.T) {
	a := New(2025, time.July, 10)
	b := New(2025, time.July, 1)
	if got := a.Sub(b); got != 9 {
		t.Errorf("Sub() = %d, want 9", got)
	}
	if got := b.Sub(a); got != -9 {
		t.Errorf("Sub() = %d, want -9", got)
	}
	if got := a.Sub(a); got != 0 {
		t.Errorf("Sub() = %d, want 0", got)
	}
}
