package hudu

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrMissingAPIKey        = errors.New("no API key found: pass Config.APIKey, set HUDU_API_KEY, or mount a HUDU_API_KEY secret")
	ErrDomainRequired       = errors.New("no Hudu domain found: pass Config.Domain or set HUDU_DOMAIN")
	ErrInvalidMethod        = errors.New("HTTP method must be one of GET, POST, PUT, DELETE")
	ErrEndpointRequired     = errors.New("endpoint is required")
	ErrUnsupportedShape     = errors.New("unsupported response shape: expected a JSON object or array")
	ErrEmptyWriteResponse   = errors.New("write accepted but the response body was empty or not JSON")
	ErrResourceFilterPair   = errors.New("resource_id and resource_type must be supplied together")
	ErrLookupTablesNotBuilt = errors.New("lookup tables not built: set Config.BuildLookupTables")
	ErrLookupNameNotFound   = errors.New("name not found in lookup table")
	ErrLookupIDNotFound     = errors.New("id not found in lookup table")
)

// RemoteError is returned when the API responds with a status other
// than 200 or 429. The original status code and reason phrase are
// preserved for callers that branch on them.
type RemoteError struct {
	StatusCode int
	Reason     string
	Body       []byte
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("hudu: remote error %d: %s", e.StatusCode, e.Reason)
	}

	return fmt.Sprintf("hudu: remote error %d", e.StatusCode)
}

// RateLimitError is returned when a page stayed rate limited after the
// configured number of retries.
type RateLimitError struct {
	Attempts int
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("hudu: rate limited after %d attempts", e.Attempts)
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	remoteErr := &RemoteError{}
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsUnauthorized checks if the error is a 401 from the API, which for
// Hudu means the x-api-key header was missing or wrong.
func IsUnauthorized(err error) bool {
	remoteErr := &RemoteError{}
	if errors.As(err, &remoteErr) {
		return remoteErr.StatusCode == http.StatusUnauthorized
	}

	return false
}

// IsRateLimited checks if the error is an exhausted rate-limit retry.
func IsRateLimited(err error) bool {
	rateErr := &RateLimitError{}

	return errors.As(err, &rateErr)
}
