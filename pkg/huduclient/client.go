// Package huduclient provides the main entry point for creating Hudu API clients
package huduclient

import (
	"context"
	"fmt"

	"github.com/telcocentric/hudu-go/internal/client"
	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// New creates a new Hudu API client. Credential resolution, domain
// normalization, and optional lookup-table construction happen here;
// see hudu.Config for the fallback chain.
func New(ctx context.Context, config *hudu.Config) (hudu.Client, error) {
	if config == nil {
		return nil, hudu.ErrConfigRequired
	}

	huduClient, err := client.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return huduClient, nil
}

// NewWithDomain creates a new client for a domain, resolving the API
// key from the environment or a mounted secret.
func NewWithDomain(ctx context.Context, domain string) (hudu.Client, error) {
	return New(ctx, &hudu.Config{
		Domain: domain,
	})
}

// NewWithAPIKey creates a new client with an explicit domain and key.
func NewWithAPIKey(ctx context.Context, domain, apiKey string) (hudu.Client, error) {
	return New(ctx, &hudu.Config{
		Domain: domain,
		APIKey: apiKey,
	})
}

// NewWithLookupTables creates a new client that builds the companies
// and asset-layouts name↔id tables during construction.
func NewWithLookupTables(ctx context.Context, domain, apiKey string) (hudu.Client, error) {
	return New(ctx, &hudu.Config{
		Domain:            domain,
		APIKey:            apiKey,
		BuildLookupTables: true,
	})
}
