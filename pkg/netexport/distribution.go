package netexport

import "sort"

// TypeCount is one row of the network-type distribution summary.
type TypeCount struct {
	// Type is the network type, with "NSP" spelled out and empty values
	// reported as "Unknown".
	Type  string
	Count int
}

// Summary describes the fetched dataset before filtering.
type Summary struct {
	// Distribution is sorted by count descending.
	Distribution []TypeCount

	// MissingASN counts networks without ASN information.
	MissingASN int

	// Untyped counts networks with an empty type, which are excluded
	// from the output files.
	Untyped int
}

// Summarize computes the type distribution over the unfiltered networks.
func Summarize(networks []Network) Summary {
	counts := make(map[string]int)
	summary := Summary{}

	for _, n := range networks {
		netType := n.Type
		if netType == "" {
			netType = "Unknown"
			summary.Untyped++
		}
		counts[netType]++

		if n.ASN == 0 {
			summary.MissingASN++
		}
	}

	for netType, count := range counts {
		label := netType
		if label == "NSP" {
			label = "Network Service Provider"
		}
		summary.Distribution = append(summary.Distribution, TypeCount{
			Type:  label,
			Count: count,
		})
	}

	sort.Slice(summary.Distribution, func(i, j int) bool {
		return summary.Distribution[i].Count > summary.Distribution[j].Count
	})

	return summary
}
