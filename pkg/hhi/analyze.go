package hhi

import (
	"github.com/rs/zerolog/log"
)

// Params are the analysis inputs.
type Params struct {
	// FilePath is the local path to the PeeringDB JSON dump.
	FilePath string

	// CountryCode is the two-letter ISO 3166-1 alpha-2 country code.
	CountryCode string

	// Metric selects how market share is measured.
	Metric Metric
}

// Result is the finished analysis.
type Result struct {
	// Score is the Herfindahl-Hirschman Index on percentage shares.
	Score float64

	// Details is the per-exchange breakdown, sorted by display value
	// descending. Nil when the market is empty.
	Details []MarketShare
}

// Analyze runs the full pipeline: load, scope, aggregate, compute.
// The metric selector is validated before any file access. An empty scope
// or a zero market yields a zero Result, not an error.
func Analyze(params Params) (Result, error) {
	if err := params.Metric.Validate(); err != nil {
		return Result{}, err
	}

	dump, err := LoadDump(params.FilePath)
	if err != nil {
		return Result{}, err
	}

	scope := ExchangesInCountry(dump.IX.Data, params.CountryCode)
	if len(scope) == 0 {
		log.Info().
			Str("country", params.CountryCode).
			Msg("No exchanges found for country")
		return Result{}, nil
	}

	lanOwners := LANOwners(dump.IXLan.Data, scope)

	values, err := AggregateValues(dump.NetIXLan.Data, lanOwners, params.Metric)
	if err != nil {
		return Result{}, err
	}

	score, details := ComputeIndex(values, scope, params.Metric)

	log.Debug().
		Str("country", params.CountryCode).
		Str("metric", string(params.Metric)).
		Int("exchanges_in_scope", len(scope)).
		Int("exchanges_with_data", len(details)).
		Float64("hhi", score).
		Msg("Analysis complete")

	return Result{Score: score, Details: details}, nil
}
