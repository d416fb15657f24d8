package hhi

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// ConcentrationLevel classifies a market by its HHI score.
type ConcentrationLevel string

const (
	// Unconcentrated is a competitive market (HHI below 1500).
	Unconcentrated ConcentrationLevel = "Unconcentrated (Competitive Market)"

	// ModeratelyConcentrated covers HHI 1500 to 2500, both ends inclusive.
	ModeratelyConcentrated ConcentrationLevel = "Moderately Concentrated"

	// HighlyConcentrated is HHI above 2500.
	HighlyConcentrated ConcentrationLevel = "Highly Concentrated"
)

// maxReportRows caps the rendered table at the top entries.
const maxReportRows = 15

// ClassifyConcentration maps an HHI score to its concentration band.
// The 1500 and 2500 boundaries both fall into the moderate band.
func ClassifyConcentration(score float64) ConcentrationLevel {
	switch {
	case score < 1500:
		return Unconcentrated
	case score <= 2500:
		return ModeratelyConcentrated
	default:
		return HighlyConcentrated
	}
}

// RenderReport writes the human-readable market concentration report.
func RenderReport(w io.Writer, country string, metric Metric, res Result) {
	metricName := "Port Capacity"
	valueHeader := "Capacity (Gbps)"
	if metric == MetricASNs {
		metricName = "Connected Networks"
		valueHeader = "Networks"
	}

	fmt.Fprintf(w, "--- IXP Market Concentration Analysis for %s (by %s) ---\n\n", country, metricName)
	fmt.Fprintf(w, "Herfindahl-Hirschman Index (HHI): %.2f\n", res.Score)
	fmt.Fprintf(w, "Market Concentration Level: %s\n\n", ClassifyConcentration(res.Score))

	if len(res.Details) == 0 {
		fmt.Fprintln(w, "No market data found.")
		return
	}

	fmt.Fprintf(w, "--- Top %d IXPs in %s by %s ---\n", maxReportRows, country, metricName)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"IXP Name", valueHeader, "Market Share (%)"})

	rows := res.Details
	if len(rows) > maxReportRows {
		rows = rows[:maxReportRows]
	}

	for _, entry := range rows {
		value := fmt.Sprintf("%.1f", entry.DisplayValue)
		if metric == MetricASNs {
			value = fmt.Sprintf("%d", int64(entry.DisplayValue))
		}
		t.AppendRow(table.Row{entry.Name, value, fmt.Sprintf("%.2f", entry.SharePercent)})
	}

	t.SetStyle(table.StyleRounded)
	t.Render()
}
