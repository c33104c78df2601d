package llm

import (
	"context"
	"errors"
)

// Client abstracts the text-completion oracle used for match scoring and
// resume rewriting.
type Client interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("oracle client not configured")

// ErrUnavailable wraps transport failures and timeouts talking to the oracle.
var ErrUnavailable = errors.New("oracle unavailable")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, system, user string) (string, error) {
	_ = ctx
	_ = system
	_ = user
	return "", ErrNotConfigured
}
