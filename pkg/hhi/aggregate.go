package hhi

import (
	"errors"
	"fmt"
)

// Metric selects how market share is measured.
type Metric string

const (
	// MetricSpeed measures by summed port capacity in Mbps.
	MetricSpeed Metric = "speed"

	// MetricASNs measures by the number of distinct connected networks.
	MetricASNs Metric = "asns"
)

// ErrInvalidMetric indicates a metric selector outside {speed, asns}.
var ErrInvalidMetric = errors.New("invalid metric")

// Validate rejects metric selectors outside the supported set.
func (m Metric) Validate() error {
	switch m {
	case MetricSpeed, MetricASNs:
		return nil
	default:
		return fmt.Errorf("%w: %q (choose %q or %q)", ErrInvalidMetric, string(m), MetricSpeed, MetricASNs)
	}
}

// AggregateValues accumulates the chosen metric per exchange.
// Links whose LAN does not resolve into scope are excluded entirely, not
// counted toward any group. Exchanges with no qualifying links are absent
// from the result, not present with a zero.
func AggregateValues(links []NetworkLink, lanOwners map[int]int, metric Metric) (map[int]int64, error) {
	if err := metric.Validate(); err != nil {
		return nil, err
	}

	if metric == MetricASNs {
		return countNetworks(links, lanOwners), nil
	}
	return sumSpeeds(links, lanOwners), nil
}

// sumSpeeds sums link speeds per exchange. A missing speed field decodes
// to zero and contributes nothing.
func sumSpeeds(links []NetworkLink, lanOwners map[int]int) map[int]int64 {
	values := make(map[int]int64)
	for _, link := range links {
		ixID, ok := lanOwners[link.IXLanID]
		if !ok {
			continue
		}
		values[ixID] += link.Speed
	}
	return values
}

// countNetworks counts distinct connected network IDs per exchange.
// A network connecting twice to the same exchange counts once.
func countNetworks(links []NetworkLink, lanOwners map[int]int) map[int]int64 {
	seen := make(map[int]map[int]struct{})
	for _, link := range links {
		ixID, ok := lanOwners[link.IXLanID]
		if !ok {
			continue
		}
		if seen[ixID] == nil {
			seen[ixID] = make(map[int]struct{})
		}
		seen[ixID][link.NetID] = struct{}{}
	}

	values := make(map[int]int64)
	for ixID, nets := range seen {
		values[ixID] = int64(len(nets))
	}
	return values
}
