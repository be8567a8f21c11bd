package date

import (
	"testing"
	"time"
)

func TestHistoryAppend(t *testing.T) {
	h := new(History[float64])

	// Append out of order, the history must come back sorted.
	h.Append(New(2025, time.July, 3), 3)
	h.Append(New(2025, time.July, 1), 1)
	h.Append(New(2025, time.July, 2), 2)

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	var prev Date
	for day := range h.Values() {
		if day.Before(prev) {
			t.Errorf("history not chronological: %v after %v", day, prev)
		}
		prev = day
	}

	// Appending the same day overwrites.
	h.Append(New(2025, time.July, 2), 20)
	if h.Len() != 3 {
		t.Errorf("Len() after overwrite = %d, want 3", h.Len())
	}
}

func TestHistoryLatest(t *testing.T) {
	h := new(History[float64])
	if day, _ := h.Latest(); !day.IsZero() {
		t.Errorf("empty history Latest() = %v, want zero date", day)
	}
	h.Append(New(2025, time.July, 1), 1)
	h.Append(New(2025, time.July, 3), 3)
	day, value := h.Latest()
	if day != New(2025, time.July, 3) || value != 3 {
		t.Errorf("Latest() = %v %v, want 2025-07-03 3", day, value)
	}
}

func TestHistoryMin(t *testing.T) {
	h := new(History[float64])
	if _, ok := h.Min(); ok {
		t.Error("empty history Min() ok = true, want false")
	}

	h.Append(New(2025, time.July, 1), 99.5)
	h.Append(New(2025, time.July, 2), 97.25)
	h.Append(New(2025, time.July, 3), 101)

	got, ok := h.Min()
	if !ok || got != 97.25 {
		t.Errorf("Min() = %v %v, want 97.25 true", got, ok)
	}
}
