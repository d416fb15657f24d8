// Package netexport turns raw PeeringDB network records into filtered
// CSV/JSON extracts of ASN network types.
package netexport

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Network is the slice of a PeeringDB net record this tool cares about.
type Network struct {
	ASN  int    `json:"asn"`
	Type string `json:"info_type"`
	Name string `json:"name"`
}

// DecodeNetworks decodes raw paginated records into Network values.
// Records that fail to decode are skipped with a warning; a single bad
// record should not sink a multi-thousand-record fetch.
func DecodeNetworks(raw []json.RawMessage) []Network {
	networks := make([]Network, 0, len(raw))
	skipped := 0

	for _, rec := range raw {
		var n Network
		if err := json.Unmarshal(rec, &n); err != nil {
			skipped++
			continue
		}
		networks = append(networks, n)
	}

	if skipped > 0 {
		log.Warn().
			Int("skipped", skipped).
			Int("decoded", len(networks)).
			Msg("Skipped undecodable network records")
	}

	return networks
}

// FilterTyped drops networks with an empty network type. Untyped records
// carry no signal for type analysis and are excluded from all outputs.
func FilterTyped(networks []Network) []Network {
	filtered := make([]Network, 0, len(networks))
	for _, n := range networks {
		if n.Type != "" {
			filtered = append(filtered, n)
		}
	}
	return filtered
}
