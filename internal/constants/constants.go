package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits for the transport layer.
const (
	// DefaultRetryMax is the default maximum number of transport retries
	// when retries are enabled via WithRetryConfig.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Pagination behavior of the Hudu API.
const (
	// OptimisticPageSize is requested first on list endpoints. Endpoints
	// that honor page_size return up to this many items per page.
	OptimisticPageSize = 1000

	// CappedPageSize is the silent per-page cap applied by endpoints that
	// ignore the requested page_size.
	CappedPageSize = 25

	// InterPageDelay is the self-imposed throttle between page fetches.
	InterPageDelay = 10 * time.Millisecond

	// RateLimitDelay is how long to wait before retrying a 429 response.
	RateLimitDelay = 30 * time.Second

	// DefaultRateLimitRetryMax bounds consecutive 429 retries for one page.
	DefaultRateLimitRetryMax = 10
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// Cache sizes and lifetimes.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute

	// LookupTableCacheTTL is the TTL for persisted lookup tables.
	LookupTableCacheTTL = 24 * time.Hour

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024
)

// Credential sources.
const (
	// APIKeyEnvVar names the environment variable holding the API key.
	APIKeyEnvVar = "HUDU_API_KEY"

	// DomainEnvVar names the environment variable holding the Hudu domain.
	DomainEnvVar = "HUDU_DOMAIN"

	// APIVersionEnvVar names the environment variable holding the API version.
	APIVersionEnvVar = "HUDU_API_VERSION"

	// APIKeySecretPath is the mounted secret checked as a last resort,
	// for containers that receive the key as a Docker/Kubernetes secret.
	APIKeySecretPath = "/run/secrets/HUDU_API_KEY"

	// DefaultAPIVersion is used when no version is configured.
	DefaultAPIVersion = "v1"
)
