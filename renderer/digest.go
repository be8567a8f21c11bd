// Package renderer turns an alert report into the digest delivered by email
// or printed on the terminal.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/stockwatch"
	md "github.com/nao1215/markdown"
)

// AlertMarkdown renders the digest: one section per non-empty bucket, in
// priority order, each listing one "symbol: value" line per entry.
func AlertMarkdown(r *stockwatch.AlertReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Alert " + r.Date.String())

	if len(r.Breach) > 0 {
		doc.H2("Consider selling: tolerance breached")
		doc.BulletList(drawdownLines(r.Breach)...)
	}
	if len(r.TenPercent) > 0 {
		doc.H2("10% threshold breached")
		doc.BulletList(drawdownLines(r.TenPercent)...)
	}
	if len(r.FivePercent) > 0 {
		doc.H2("5% threshold breached")
		doc.BulletList(drawdownLines(r.FivePercent)...)
	}
	if len(r.Stagnant) > 0 {
		doc.H2("Stagnant positions")
		lines := make([]string, 0, len(r.Stagnant))
		for _, e := range r.Stagnant {
			lines = append(lines, fmt.Sprintf("%s: %d days since peak", e.Symbol, e.Days))
		}
		doc.BulletList(lines...)
	}

	return doc.String()
}

func drawdownLines(entries []stockwatch.AlertEntry) []string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s drop from high", e.Symbol, e.Drawdown))
	}
	return lines
}

// Compose builds the deliverable message for a non-empty report: markdown
// text body plus its HTML rendering.
func Compose(r *stockwatch.AlertReport) stockwatch.Message {
	text := AlertMarkdown(r)
	return stockwatch.Message{
		Subject: r.Subject(),
		Text:    text,
		HTML:    HTML(text),
	}
}
