package pagination

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plainGetter satisfies PageGetter with a bare HTTP client, enough to walk
// an httptest server without redis.
type plainGetter struct {
	baseURL string
}

func (g *plainGetter) Get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", g.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

func (g *plainGetter) GetURL(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

// newPagedServer serves pageCount pages of recordsPerPage records each,
// linked via meta.next. failAtPage > 0 makes that page answer 500.
func newPagedServer(t *testing.T, pageCount, recordsPerPage, failAtPage int) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pageNum := 1
		if skip := r.URL.Query().Get("page"); skip != "" {
			fmt.Sscanf(skip, "%d", &pageNum)
		}

		if failAtPage > 0 && pageNum == failAtPage {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		data := make([]map[string]int, 0, recordsPerPage)
		for i := 0; i < recordsPerPage; i++ {
			data = append(data, map[string]int{"id": (pageNum-1)*recordsPerPage + i})
		}

		next := ""
		if pageNum < pageCount {
			next = fmt.Sprintf("%s/api/net?page=%d", server.URL, pageNum+1)
		}

		resp := map[string]any{
			"data": data,
			"meta": map[string]string{"next": next},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))

	t.Cleanup(server.Close)
	return server
}

func TestFetchAll_SinglePage(t *testing.T) {
	server := newPagedServer(t, 1, 3, 0)
	fetcher := NewFetcher(&plainGetter{baseURL: server.URL + "/api"}, Config{})

	records, err := fetcher.FetchAll(context.Background(), "/net")
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestFetchAll_FollowsCursor(t *testing.T) {
	server := newPagedServer(t, 3, 2, 0)
	fetcher := NewFetcher(&plainGetter{baseURL: server.URL + "/api"}, Config{})

	records, err := fetcher.FetchAll(context.Background(), "/net")
	require.NoError(t, err)
	assert.Len(t, records, 6, "all three pages should be accumulated")

	// Records arrive in page order
	var first struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(records[0], &first))
	assert.Equal(t, 0, first.ID)
}

func TestFetchAll_PartialResultsOnFailure(t *testing.T) {
	server := newPagedServer(t, 3, 2, 3)
	fetcher := NewFetcher(&plainGetter{baseURL: server.URL + "/api"}, Config{})

	records, err := fetcher.FetchAll(context.Background(), "/net")
	assert.Error(t, err, "failed walk should surface the error")
	assert.Len(t, records, 4, "records from the first two pages should survive")
}

func TestFetchAll_SleepsBetweenPages(t *testing.T) {
	server := newPagedServer(t, 3, 1, 0)
	fetcher := NewFetcher(&plainGetter{baseURL: server.URL + "/api"}, Config{
		PageDelay: 30 * time.Millisecond,
	})

	start := time.Now()
	_, err := fetcher.FetchAll(context.Background(), "/net")
	require.NoError(t, err)

	// Two inter-page sleeps for three pages
	assert.GreaterOrEqual(t, time.Since(start), 60*time.Millisecond)
}

func TestFetchAll_MaxPagesCap(t *testing.T) {
	server := newPagedServer(t, 10, 1, 0)
	fetcher := NewFetcher(&plainGetter{baseURL: server.URL + "/api"}, Config{
		MaxPages: 2,
	})

	records, err := fetcher.FetchAll(context.Background(), "/net")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFetchAll_ContextCancellation(t *testing.T) {
	server := newPagedServer(t, 5, 1, 0)
	fetcher := NewFetcher(&plainGetter{baseURL: server.URL + "/api"}, Config{
		PageDelay: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	records, err := fetcher.FetchAll(ctx, "/net")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Len(t, records, 1, "first page should be kept")
}
