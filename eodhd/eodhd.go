// Package eodhd fetches daily closing prices from the eodhd.com API.
package eodhd

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/etnz/stockwatch"
	"github.com/etnz/stockwatch/date"
	"github.com/shopspring/decimal"
)

// Client is a price history provider backed by the EODHD end-of-day API.
// The zero value is not usable; use New.
type Client struct {
	apiKey string
	base   string
	client *http.Client
}

const defaultBase = "https://eodhd.com"

// New returns a Client using a disk cache with daily expiry, so repeated
// runs on the same day do not consume API quota.
func New(apiKey string) *Client {
	return &Client{apiKey: apiKey, base: defaultBase, client: newDailyCachingClient()}
}

var _ stockwatch.PriceProvider = (*Client)(nil)

// Closes fetches the daily close series for every symbol in the inclusive
// [from, to] window.
//
// Symbols EODHD cannot resolve are skipped with a warning and absent from
// the result; only a total failure (every symbol errored) is an error, so
// one delisted ticker cannot abort the whole batch.
func (c *Client) Closes(symbols []string, from, to date.Date) (map[string]*date.History[float64], error) {
	if c.apiKey == "" {
		return nil, errors.New("EODHD API key is not set. Use -eodhd-api-key flag or EODHD_API_KEY environment variable")
	}

	result := make(map[string]*date.History[float64])
	var errs error
	for _, symbol := range symbols {
		hist, err := c.daily(symbol, from, to)
		if err != nil {
			log.Printf("cannot fetch prices for %q: %v", symbol, err)
			errs = errors.Join(errs, fmt.Errorf("%s: %w", symbol, err))
			continue
		}
		if hist.Len() > 0 {
			result[symbol] = hist
		}
	}
	if len(result) == 0 && errs != nil {
		return nil, errs
	}
	return result, nil
}

// daily fetches the close series for a single EODHD ticker.
func (c *Client) daily(symbol string, from, to date.Date) (*date.History[float64], error) {
	// https://eodhd.com/api/eod/MCD.US?api_token=demo&fmt=json
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	addr := fmt.Sprintf("%s/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s",
		c.base, url.PathEscape(symbol), c.apiKey, from, to)

	type info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}

	content := make([]info, 0)
	if err := jwget(c.client, addr, &content); err != nil {
		return nil, err
	}

	hist := new(date.History[float64])
	for _, i := range content {
		hist.Append(i.Date, i.Close.InexactFloat64())
	}
	return hist, nil
}
