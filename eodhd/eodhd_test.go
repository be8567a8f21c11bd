package eodhd

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/etnz/stockwatch/date"
)

// newTestServer serves canned per-symbol EOD payloads on /api/eod/{symbol}.
func newTestServer(payloads map[string]string) *httptest.Server {
	mux := http.NewServeMux()
	for symbol, payload := range payloads {
		mux.HandleFunc("/api/eod/"+symbol, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, payload)
		})
	}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	return httptest.NewServer(mux)
}

func newTestClient(server *httptest.Server) *Client {
	return &Client{apiKey: "demo", base: server.URL, client: server.Client()}
}

func TestCloses(t *testing.T) {
	server := newTestServer(map[string]string{
		"MCD.US": `[
			{"date": "2025-07-07", "open": 300, "close": 295.5},
			{"date": "2025-07-08", "open": 296, "close": 290.25}
		]`,
	})
	defer server.Close()

	from, to := date.New(2025, time.July, 3), date.New(2025, time.July, 10)
	closes, err := newTestClient(server).Closes([]string{"MCD.US"}, from, to)
	if err != nil {
		t.Fatalf("Closes() unexpected error = %v", err)
	}

	hist := closes["MCD.US"]
	if hist == nil || hist.Len() != 2 {
		t.Fatalf("Closes() returned %v points, want 2", hist.Len())
	}
	if low, _ := hist.Min(); low != 290.25 {
		t.Errorf("Min() = %v, want 290.25", low)
	}
	if day, value := hist.Latest(); day != date.New(2025, time.July, 8) || value != 290.25 {
		t.Errorf("Latest() = %v %v", day, value)
	}
}

func TestClosesPartialMiss(t *testing.T) {
	server := newTestServer(map[string]string{
		"GOOD.US": `[{"date": "2025-07-07", "close": 100}]`,
	})
	defer server.Close()

	closes, err := newTestClient(server).Closes([]string{"GOOD.US", "GONE.US"},
		date.New(2025, time.July, 3), date.New(2025, time.July, 10))
	if err != nil {
		t.Fatalf("Closes() unexpected error = %v", err)
	}
	if _, ok := closes["GONE.US"]; ok {
		t.Error("unresolvable symbol present in result")
	}
	if _, ok := closes["GOOD.US"]; !ok {
		t.Error("resolvable symbol missing from result")
	}
}

func TestClosesTotalFailure(t *testing.T) {
	server := newTestServer(nil) // every symbol 404s
	defer server.Close()

	_, err := newTestClient(server).Closes([]string{"A.US", "B.US"},
		date.New(2025, time.July, 3), date.New(2025, time.July, 10))
	if err == nil {
		t.Error("Closes() with every symbol failing, want error")
	}
}

func TestClosesMissingKey(t *testing.T) {
	c := &Client{base: "http://example.invalid", client: http.DefaultClient}
	if _, err := c.Closes([]string{"A.US"}, date.Today().Add(-5), date.Today()); err == nil {
		t.Error("Closes() without API key, want error")
	}
}
