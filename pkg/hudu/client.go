package hudu

import (
	"context"
	"encoding/json"
	"net/url"
	"time"
)

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	ActivityLogs() ActivityLogsClient
	Articles() ArticlesClient
	Assets() AssetsClient
	AssetLayouts() AssetLayoutsClient
	AssetPasswords() AssetPasswordsClient
	Companies() CompaniesClient
}

// InfoClient provides access to the API information endpoint.
type InfoClient interface {
	GetAPIInfo(ctx context.Context) (*APIInfo, error)
}

// LookupClient exposes the optional name↔id lookup tables built at
// construction time.
type LookupClient interface {
	CompanyLookup() (*LookupTable, error)
	AssetLayoutLookup() (*LookupTable, error)
}

// RawClient exposes the request engine directly for endpoints this
// library has no typed client for yet. GET calls paginate and return
// accumulated items; writes return the decoded-or-raw body.
type RawClient interface {
	Execute(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (*Result, error)
}

type Client interface {
	ResourceClients
	InfoClient
	LookupClient
	RawClient
}

// ActivityLogsClient reads the activity log.
type ActivityLogsClient interface {
	List(ctx context.Context, filter *ActivityLogFilter) ([]ActivityLog, error)
}

// ArticlesClient manages knowledge-base articles.
type ArticlesClient interface {
	List(ctx context.Context, filter *ArticleFilter) ([]Article, error)
	Get(ctx context.Context, id int) (*Article, error)
	Create(ctx context.Context, request *ArticleCreateRequest) (*Article, error)
	Update(ctx context.Context, id int, request *ArticleUpdateRequest) (*Article, error)
	Delete(ctx context.Context, id int) error
	Archive(ctx context.Context, id int) (*Article, error)
	Unarchive(ctx context.Context, id int) (*Article, error)
}

// AssetsClient manages assets, which live under a company in the API.
type AssetsClient interface {
	List(ctx context.Context, filter *AssetFilter) ([]Asset, error)
	ListForCompany(ctx context.Context, companyID int, filter *CompanyAssetFilter) ([]Asset, error)
	GetForCompany(ctx context.Context, companyID, id int) (*AssetWithPasswords, error)
	Create(ctx context.Context, companyID int, request *AssetCreateRequest) (*Asset, error)
	Update(ctx context.Context, companyID, id int, request *AssetUpdateRequest) (*Asset, error)
	Delete(ctx context.Context, companyID, id int) error
	Archive(ctx context.Context, companyID, id int) (*Asset, error)
	Unarchive(ctx context.Context, companyID, id int) (*Asset, error)
}

// AssetLayoutsClient manages asset layouts.
type AssetLayoutsClient interface {
	List(ctx context.Context, filter *AssetLayoutFilter) ([]AssetLayout, error)
	Get(ctx context.Context, id int) (*AssetLayout, error)
	Create(ctx context.Context, request *AssetLayoutCreateRequest) (*AssetLayout, error)
	Update(ctx context.Context, id int, request *AssetLayoutUpdateRequest) (*AssetLayout, error)
}

// AssetPasswordsClient manages standalone and asset-scoped passwords.
type AssetPasswordsClient interface {
	List(ctx context.Context, filter *AssetPasswordFilter) ([]AssetPassword, error)
	Get(ctx context.Context, id int) (*AssetPassword, error)
	Create(ctx context.Context, request *AssetPasswordCreateRequest) (*AssetPassword, error)
}

// CompaniesClient reads companies.
type CompaniesClient interface {
	List(ctx context.Context, filter *CompanyFilter) ([]Company, error)
	Get(ctx context.Context, id int) (*Company, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Result is the outcome of a raw Execute call.
type Result struct {
	// Items holds the accumulated pages of a GET call, one raw JSON
	// document per item.
	Items []json.RawMessage

	// JSON holds the response body of a write call when it parsed as
	// JSON.
	JSON json.RawMessage

	// Raw holds the unparsed body of a write call whose body was not
	// valid JSON. Callers of the raw engine must tolerate either JSON
	// or Raw being set; some Hudu endpoints answer writes with empty or
	// non-JSON bodies.
	Raw []byte

	// StatusCode of the final round-trip.
	StatusCode int
}

// Config represents client configuration for building a hudu.Client.
//
// # Credential resolution
//
// The API key is resolved in order: APIKey field, the HUDU_API_KEY
// environment variable, then the mounted secret file
// /run/secrets/HUDU_API_KEY. Construction fails if none yields a
// value. Domain follows the same field-then-environment pattern via
// HUDU_DOMAIN; APIVersion falls back to HUDU_API_VERSION and then to
// "v1".
type Config struct {
	// APIKey is the pre-issued static key sent as the x-api-key header.
	APIKey string
	// Domain is the Hudu instance domain, e.g. "docs.example.com".
	// A scheme prefix and trailing slash are tolerated and stripped.
	Domain string
	// APIVersion selects the API path segment; defaults to "v1".
	APIVersion string

	// BuildLookupTables makes construction list companies and asset
	// layouts and build a bidirectional name↔id table for each. This is
	// a synchronous, blocking step; the tables are never refreshed
	// automatically.
	BuildLookupTables bool

	// RateLimitRetryMax bounds how many times a single page is retried
	// after a 429 before the call fails with a RateLimitError. If 0, a
	// default of 10 is used.
	RateLimitRetryMax int

	// HTTPTimeout is the per-round-trip timeout. Pagination can span
	// many round-trips; use context deadlines to bound a whole call.
	HTTPTimeout time.Duration
	// RetryMax enables transport-level retries for connection errors
	// and 5xx responses. Off by default: 429 handling belongs to the
	// request engine and any other non-200 status is surfaced to the
	// caller unchanged.
	RetryMax int
	// RetryWaitMin is the minimum backoff between transport retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between transport retries.
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger
	// is provided.
	Debug bool
	// Logger is an optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Interceptors is an optional chain run around every round-trip.
	// Request interceptors may mutate headers or abort the call; an
	// error from either side fails the request.
	Interceptors *InterceptorChain

	// Cache selects the backend used to persist lookup tables. If nil,
	// an in-memory cache is used.
	Cache *CacheConfig
}
