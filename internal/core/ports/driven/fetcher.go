package driven

import "context"

// Fetcher retrieves one raw page from a source URL.
// Implementations are expected to rate-limit themselves; a non-2xx
// response is an error.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}
