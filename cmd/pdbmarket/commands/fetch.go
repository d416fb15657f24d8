package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ixmetrics/peeringdb-market/pkg/client"
	"github.com/ixmetrics/peeringdb-market/pkg/config"
	"github.com/ixmetrics/peeringdb-market/pkg/netexport"
	"github.com/ixmetrics/peeringdb-market/pkg/pagination"
)

var (
	fetchOutputDir string
	fetchFormat    string
	fetchAPIKey    string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch all PeeringDB networks and export ASN network types to CSV/JSON.",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutputDir, "output-dir", "o", "", "output directory (overrides OUTPUT_DIR)")
	fetchCmd.Flags().StringVar(&fetchFormat, "format", "", "output format: csv, json or both (overrides OUTPUT_FORMAT)")
	fetchCmd.Flags().StringVar(&fetchAPIKey, "api-key", "", "PeeringDB API key (overrides PEERINGDB_API_KEY)")

	rootCmd.AddCommand(fetchCmd)
}

// applyFetchFlags overlays set CLI flags onto the env-derived configuration.
func applyFetchFlags(cfg *config.Config) {
	if fetchOutputDir != "" {
		cfg.OutputDir = fetchOutputDir
	}
	if fetchFormat != "" {
		cfg.OutputFormat = fetchFormat
	}
	if fetchAPIKey != "" {
		cfg.APIKey = fetchAPIKey
	}
}

// validateFormat rejects output formats outside the supported set.
func validateFormat(format string) error {
	switch format {
	case "csv", "json", "both":
		return nil
	default:
		return fmt.Errorf("invalid output format %q (choose csv, json or both)", format)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()
	applyFetchFlags(cfg)

	if err := validateFormat(cfg.OutputFormat); err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis at %s: %w", cfg.RedisURL, err)
	}
	log.Info().Str("redis", cfg.RedisURL).Msg("Connected to Redis")

	pdb, err := client.New(client.Config{
		Redis:      redisClient,
		BaseURL:    cfg.BaseURL,
		UserAgent:  cfg.UserAgent,
		APIKey:     cfg.APIKey,
		MaxRetries: cfg.MaxRetries,
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	defer pdb.Close()

	if cfg.APIKey == "" {
		log.Warn().Msg("No API key configured, fetching anonymously at lower rate limits")
	}

	fetcher := pagination.NewFetcher(pdb, pagination.Config{
		PageDelay: time.Duration(cfg.PageDelayMs) * time.Millisecond,
	})

	raw, fetchErr := fetcher.FetchAll(ctx, "/net")
	if fetchErr != nil {
		if len(raw) == 0 {
			return fmt.Errorf("fetch networks: %w", fetchErr)
		}
		// Partial data is still worth exporting
		log.Warn().
			Err(fetchErr).
			Int("records", len(raw)).
			Msg("Fetch incomplete, exporting partial results")
	}

	networks := netexport.DecodeNetworks(raw)
	summary := netexport.Summarize(networks)
	typed := netexport.FilterTyped(networks)

	printSummary(summary, len(networks))

	stamp := time.Now().Format("20060102_150405")
	base := filepath.Join(cfg.OutputDir, "asn_network_types_"+stamp)

	if cfg.OutputFormat == "csv" || cfg.OutputFormat == "both" {
		path := base + ".csv"
		if err := netexport.WriteCSV(path, typed); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		log.Info().Str("file", path).Int("records", len(typed)).Msg("Wrote CSV output")
	}

	if cfg.OutputFormat == "json" || cfg.OutputFormat == "both" {
		path := base + ".json"
		if err := netexport.WriteJSON(path, typed); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		log.Info().Str("file", path).Int("records", len(typed)).Msg("Wrote JSON output")
	}

	return fetchErr
}

func printSummary(summary netexport.Summary, total int) {
	fmt.Printf("\n--- Network Type Distribution (%d networks) ---\n", total)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Network Type", "Count"})
	for _, tc := range summary.Distribution {
		t.AppendRow(table.Row{tc.Type, tc.Count})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()

	if summary.Untyped > 0 {
		fmt.Printf("Excluded from output: %d networks without a type\n", summary.Untyped)
	}
	if summary.MissingASN > 0 {
		fmt.Printf("Networks without ASN information: %d\n", summary.MissingASN)
	}
}
