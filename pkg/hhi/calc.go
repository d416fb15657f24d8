package hhi

import (
	"fmt"
	"sort"
)

// MarketShare is one finalized, display-ready market aggregate.
type MarketShare struct {
	// Name is the exchange name.
	Name string

	// DisplayValue is the aggregated metric value for presentation.
	// Under the speed metric it is converted from Mbps to Gbps; the
	// share computation always uses the unconverted raw value.
	DisplayValue float64

	// SharePercent is the market share as a percentage (0-100).
	SharePercent float64
}

// ComputeIndex turns per-exchange metric values into market shares and the
// Herfindahl-Hirschman Index.
//
// Shares are expressed as percentages, so the index ranges 0-10000 and a
// monopoly scores exactly 10000. This is the fixed convention of the tool;
// an index computed on fractional shares would be 10000x smaller and must
// not be produced.
//
// A zero total market is a valid terminal state returning (0, nil).
// The detail list is sorted by display value descending; ordering among
// exact ties is unspecified.
func ComputeIndex(values map[int]int64, names map[int]string, metric Metric) (float64, []MarketShare) {
	var total int64
	for _, v := range values {
		total += v
	}
	if total == 0 {
		return 0, nil
	}

	details := make([]MarketShare, 0, len(values))
	hhi := 0.0

	for ixID, value := range values {
		share := float64(value) / float64(total) * 100

		name, ok := names[ixID]
		if !ok {
			name = fmt.Sprintf("Unknown IXP (ID: %d)", ixID)
		}

		displayValue := float64(value)
		if metric == MetricSpeed {
			// Mbps to Gbps, presentation only
			displayValue /= 1000.0
		}

		details = append(details, MarketShare{
			Name:         name,
			DisplayValue: displayValue,
			SharePercent: share,
		})

		hhi += share * share
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].DisplayValue > details[j].DisplayValue
	})

	return hhi, details
}
