package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds fetcher configuration.
type Config struct {
	// PageDelay is the fixed sleep between page fetches.
	PageDelay time.Duration

	// MaxPages caps the walk as a runaway guard (0 = no cap).
	MaxPages int
}

// DefaultConfig returns a safe default configuration for PeeringDB.
func DefaultConfig() Config {
	return Config{
		PageDelay: 500 * time.Millisecond,
		MaxPages:  0,
	}
}

// PageGetter is the client interface the fetcher needs: one GET against an
// endpoint path and one against the absolute cursor URL.
type PageGetter interface {
	Get(ctx context.Context, endpoint string) (*http.Response, error)
	GetURL(ctx context.Context, rawURL string) (*http.Response, error)
}

// page mirrors the PeeringDB list envelope.
type page struct {
	Data []json.RawMessage `json:"data"`
	Meta struct {
		Next string `json:"next"`
	} `json:"meta"`
}

// Fetcher accumulates all records of a paginated endpoint.
type Fetcher struct {
	client PageGetter
	config Config
}

// NewFetcher creates a new cursor fetcher.
func NewFetcher(client PageGetter, config Config) *Fetcher {
	if config.PageDelay < 0 {
		config.PageDelay = 0
	}
	return &Fetcher{
		client: client,
		config: config,
	}
}

// FetchAll walks the endpoint's pages until the cursor runs out.
// On failure it returns everything accumulated so far along with the error;
// partial results are expected and usable.
func (f *Fetcher) FetchAll(ctx context.Context, endpoint string) ([]json.RawMessage, error) {
	start := time.Now()

	var records []json.RawMessage

	log.Info().
		Str("endpoint", endpoint).
		Msg("Starting paginated fetch")

	resp, err := f.client.Get(ctx, endpoint)
	pageNum := 1

	for {
		if err != nil {
			log.Warn().
				Err(err).
				Int("page", pageNum).
				Int("records", len(records)).
				Msg("Page fetch failed - returning partial results")
			return records, fmt.Errorf("fetch page %d (partial data: %d records): %w", pageNum, len(records), err)
		}

		var p *page
		p, err = decodePage(resp)
		if err != nil {
			log.Warn().
				Err(err).
				Int("page", pageNum).
				Int("records", len(records)).
				Msg("Page decode failed - returning partial results")
			return records, fmt.Errorf("decode page %d (partial data: %d records): %w", pageNum, len(records), err)
		}

		records = append(records, p.Data...)

		log.Debug().
			Str("endpoint", endpoint).
			Int("page", pageNum).
			Int("page_records", len(p.Data)).
			Int("records", len(records)).
			Msg("Fetched page")

		if p.Meta.Next == "" {
			break
		}

		if f.config.MaxPages > 0 && pageNum >= f.config.MaxPages {
			log.Warn().
				Int("max_pages", f.config.MaxPages).
				Msg("Page cap reached - stopping walk")
			break
		}

		// Fixed inter-page sleep to respect rate limits
		if f.config.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return records, ctx.Err()
			case <-time.After(f.config.PageDelay):
			}
		}

		pageNum++
		resp, err = f.client.GetURL(ctx, p.Meta.Next)
	}

	log.Info().
		Str("endpoint", endpoint).
		Int("pages", pageNum).
		Int("records", len(records)).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return records, nil
}

// decodePage reads and decodes one response body.
func decodePage(resp *http.Response) (*page, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var p page
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	return &p, nil
}
