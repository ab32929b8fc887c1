// Package article defines the web article extraction capability.
package article

import "context"

// Fetcher retrieves the plain-text body of an article at a URL.
type Fetcher interface {
	FetchBody(ctx context.Context, url string) (string, error)
}
