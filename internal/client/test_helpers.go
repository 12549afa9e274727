package client

import (
	"time"

	"github.com/telcocentric/hudu-go/internal/constants"
	internalhttp "github.com/telcocentric/hudu-go/internal/http"
	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// NewTestClient creates a client against the given base URL, bypassing
// credential resolution. The engine delays are shortened so pagination
// and rate-limit tests run in milliseconds instead of real time.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, "test-api-key")

	client := &Client{
		httpClient:        httpClient,
		baseURL:           baseURL,
		cache:             hudu.NewMemoryCache(0),
		rateLimitRetryMax: constants.DefaultRateLimitRetryMax,
		interPageDelay:    time.Millisecond,
		rateLimitDelay:    5 * time.Millisecond,
	}

	client.initializeResourceClients()

	return client
}

// IntPtr returns a pointer to the given int.
func IntPtr(i int) *int {
	return &i
}

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string {
	return &s
}
