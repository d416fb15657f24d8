// Package pagination walks paginated PeeringDB endpoints.
//
// PeeringDB pages with a cursor: each response carries the records under
// "data" and the URL of the next page under "meta.next". The walker follows
// that cursor sequentially, accumulating records and sleeping a fixed delay
// between pages to stay friendly to the API's rate limits.
//
// Example usage:
//
//	fetcher := pagination.NewFetcher(pdbClient, pagination.DefaultConfig())
//	records, err := fetcher.FetchAll(ctx, "/net")
//
// A page failure after the client's retry budget is exhausted ends the walk;
// FetchAll then returns every record accumulated so far together with the
// error, and callers are expected to treat the partial data as usable.
package pagination
