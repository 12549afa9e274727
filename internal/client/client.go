// Package client implements the hudu.Client interface: credential
// resolution, the paginated request engine, and the per-resource
// façades.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/telcocentric/hudu-go/internal/constants"
	internalhttp "github.com/telcocentric/hudu-go/internal/http"
	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// Cache keys under which lookup tables are persisted.
const (
	companyLookupCacheKey = "lookup/companies"
	layoutLookupCacheKey  = "lookup/asset_layouts"
)

// Client implements the hudu.Client interface.
type Client struct {
	httpClient *internalhttp.Client
	baseURL    string
	logger     hudu.Logger
	cache      hudu.Cache

	rateLimitRetryMax int
	interPageDelay    time.Duration
	rateLimitDelay    time.Duration

	companyLookup *hudu.LookupTable
	layoutLookup  *hudu.LookupTable

	// Resource clients
	activityLogs   *ActivityLogsClient
	articles       *ArticlesClient
	assets         *AssetsClient
	assetLayouts   *AssetLayoutsClient
	assetPasswords *AssetPasswordsClient
	companies      *CompaniesClient
}

// New creates a new Hudu API client from config. Credentials resolve
// explicit argument → environment → mounted secret file; construction
// fails if no API key is found anywhere. When
// config.BuildLookupTables is set, the companies and asset-layouts
// lookup tables are built synchronously before the client is returned.
func New(ctx context.Context, config *hudu.Config) (*Client, error) {
	if config == nil {
		return nil, hudu.ErrConfigRequired
	}

	apiKey, err := resolveAPIKey(config)
	if err != nil {
		return nil, err
	}

	domain := config.Domain
	if domain == "" {
		domain = os.Getenv(constants.DomainEnvVar)
	}

	if domain == "" {
		return nil, hudu.ErrDomainRequired
	}

	version := config.APIVersion
	if version == "" {
		version = os.Getenv(constants.APIVersionEnvVar)
	}

	if version == "" {
		version = constants.DefaultAPIVersion
	}

	baseURL := fmt.Sprintf("https://%s/api/%s", normalizeDomain(domain), version)

	cache, err := hudu.NewCacheFromConfig(config.Cache)
	if err != nil {
		return nil, fmt.Errorf("building lookup cache: %w", err)
	}

	httpOpts := []internalhttp.Option{}
	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger), internalhttp.WithDebug(config.Debug))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin == 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax == 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, internalhttp.WithInterceptors(config.Interceptors))
	}

	rateLimitRetryMax := config.RateLimitRetryMax
	if rateLimitRetryMax <= 0 {
		rateLimitRetryMax = constants.DefaultRateLimitRetryMax
	}

	client := &Client{
		httpClient:        internalhttp.NewClient(baseURL, apiKey, httpOpts...),
		baseURL:           baseURL,
		logger:            config.Logger,
		cache:             cache,
		rateLimitRetryMax: rateLimitRetryMax,
		interPageDelay:    constants.InterPageDelay,
		rateLimitDelay:    constants.RateLimitDelay,
	}

	client.initializeResourceClients()

	if config.BuildLookupTables {
		if err := client.buildLookupTables(ctx); err != nil {
			return nil, fmt.Errorf("building lookup tables: %w", err)
		}
	}

	return client, nil
}

// resolveAPIKey applies the credential fallback chain.
func resolveAPIKey(config *hudu.Config) (string, error) {
	if config.APIKey != "" {
		return config.APIKey, nil
	}

	if key := os.Getenv(constants.APIKeyEnvVar); key != "" {
		return key, nil
	}

	if data, err := os.ReadFile(constants.APIKeySecretPath); err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			return key, nil
		}
	}

	return "", hudu.ErrMissingAPIKey
}

// normalizeDomain strips a scheme prefix and trailing slash from a
// configured domain.
func normalizeDomain(domain string) string {
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")

	return strings.TrimSuffix(domain, "/")
}

// initializeResourceClients sets up all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.activityLogs = NewActivityLogsClient(c)
	c.articles = NewArticlesClient(c)
	c.assets = NewAssetsClient(c)
	c.assetLayouts = NewAssetLayoutsClient(c)
	c.assetPasswords = NewAssetPasswordsClient(c)
	c.companies = NewCompaniesClient(c)
}

// ActivityLogs returns the activity logs client.
func (c *Client) ActivityLogs() hudu.ActivityLogsClient {
	return c.activityLogs
}

// Articles returns the articles client.
func (c *Client) Articles() hudu.ArticlesClient {
	return c.articles
}

// Assets returns the assets client.
func (c *Client) Assets() hudu.AssetsClient {
	return c.assets
}

// AssetLayouts returns the asset layouts client.
func (c *Client) AssetLayouts() hudu.AssetLayoutsClient {
	return c.assetLayouts
}

// AssetPasswords returns the asset passwords client.
func (c *Client) AssetPasswords() hudu.AssetPasswordsClient {
	return c.assetPasswords
}

// Companies returns the companies client.
func (c *Client) Companies() hudu.CompaniesClient {
	return c.companies
}

// GetAPIInfo implements hudu.InfoClient. The api_info endpoint is a
// direct read outside the pagination engine: its response is a plain
// object, not a wrapped envelope.
func (c *Client) GetAPIInfo(ctx context.Context) (*hudu.APIInfo, error) {
	resp, err := c.httpClient.Get(ctx, "api_info", nil)
	if err != nil {
		return nil, fmt.Errorf("getting API info: %w", err)
	}

	if resp.StatusCode != 200 {
		return nil, &hudu.RemoteError{StatusCode: resp.StatusCode, Reason: resp.Reason(), Body: resp.Body}
	}

	var info hudu.APIInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, fmt.Errorf("parsing API info response: %w", err)
	}

	return &info, nil
}

// CompanyLookup returns the companies name↔id table.
func (c *Client) CompanyLookup() (*hudu.LookupTable, error) {
	if c.companyLookup == nil {
		return nil, hudu.ErrLookupTablesNotBuilt
	}

	return c.companyLookup, nil
}

// AssetLayoutLookup returns the asset layouts name↔id table.
func (c *Client) AssetLayoutLookup() (*hudu.LookupTable, error) {
	if c.layoutLookup == nil {
		return nil, hudu.ErrLookupTablesNotBuilt
	}

	return c.layoutLookup, nil
}

// buildLookupTables builds the companies and asset-layouts tables,
// reusing a cached copy when the configured backend has a live one.
func (c *Client) buildLookupTables(ctx context.Context) error {
	companyTable, err := c.loadLookupTable(ctx, companyLookupCacheKey, "companies")
	if err != nil {
		return err
	}

	layoutTable, err := c.loadLookupTable(ctx, layoutLookupCacheKey, "asset_layouts")
	if err != nil {
		return err
	}

	c.companyLookup = companyTable
	c.layoutLookup = layoutTable

	return nil
}

func (c *Client) loadLookupTable(ctx context.Context, cacheKey, endpoint string) (*hudu.LookupTable, error) {
	if entry, err := c.cache.Get(ctx, cacheKey); err == nil {
		var table hudu.LookupTable
		if err := json.Unmarshal(entry.Data, &table); err == nil {
			return &table, nil
		}
		// A corrupt cache entry falls through to a fresh listing.
	}

	items, err := c.executeList(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", endpoint, err)
	}

	entries, err := decodeItems[hudu.LookupEntry](items)
	if err != nil {
		return nil, fmt.Errorf("parsing %s for lookup table: %w", endpoint, err)
	}

	table := hudu.NewLookupTable(entries)

	if data, err := json.Marshal(table); err == nil {
		_ = c.cache.Set(ctx, cacheKey, &hudu.CacheEntry{
			Data:      data,
			ExpiresAt: time.Now().Add(constants.LookupTableCacheTTL),
		})
	}

	return table, nil
}
