package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/telcocentric/hudu-go/internal/constants"
	internalhttp "github.com/telcocentric/hudu-go/internal/http"
	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// pageState is the engine-owned paging cursor. It lives apart from the
// caller's filters so injecting page controls never mutates caller
// arguments.
type pageState struct {
	page int
	size int
}

// merge combines the caller's filters with the paging cursor into a
// fresh query for one round-trip.
func (p pageState) merge(filters url.Values) url.Values {
	query := url.Values{}

	for key, values := range filters {
		query[key] = append([]string(nil), values...)
	}

	query.Set("page", fmt.Sprintf("%d", p.page))
	query.Set("page_size", fmt.Sprintf("%d", p.size))

	return query
}

// Execute routes one logical API call. GET paginates and returns the
// accumulated items; POST and PUT send body as a JSON document; DELETE
// sends no body. Verbs outside those four fail before any network
// traffic.
func (c *Client) Execute(ctx context.Context, method, endpoint string, params url.Values, body interface{}) (*hudu.Result, error) {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("%w: got %q", hudu.ErrInvalidMethod, method)
	}

	if endpoint == "" {
		return nil, hudu.ErrEndpointRequired
	}

	if method == http.MethodGet {
		items, err := c.executeList(ctx, endpoint, params)
		if err != nil {
			return nil, err
		}

		return &hudu.Result{Items: items, StatusCode: http.StatusOK}, nil
	}

	return c.executeWrite(ctx, method, endpoint, body)
}

// executeList drives the paginated GET loop.
//
// Hudu's page-size support is inconsistent across endpoints, so the
// loop starts optimistic (page_size=1000) and downgrades to 25 when a
// page comes back with exactly 25 items, the signature of an endpoint
// that silently caps pages and ignores the requested size. Without the
// downgrade such an endpoint would never satisfy the termination
// condition and the same 25 items would be fetched forever.
func (c *Client) executeList(ctx context.Context, endpoint string, filters url.Values) ([]json.RawMessage, error) {
	cursor := pageState{page: 1, size: constants.OptimisticPageSize}

	var (
		items        []json.RawMessage
		rateAttempts int
	)

	for {
		resp, err := c.httpClient.Get(ctx, endpoint, cursor.merge(filters))
		if err != nil {
			return nil, fmt.Errorf("fetching %s page %d: %w", endpoint, cursor.page, err)
		}

		// Self-imposed throttle, independent of server feedback.
		if err := sleepContext(ctx, c.interPageDelay); err != nil {
			return nil, err
		}

		switch resp.StatusCode {
		case http.StatusOK:
			rateAttempts = 0

			payload, err := hudu.ClassifyPayload(resp.Body)
			if err != nil {
				return nil, fmt.Errorf("classifying %s response: %w", endpoint, err)
			}

			if payload.Single() {
				// Single-resource GETs return one object per call and
				// never paginate.
				return []json.RawMessage{payload.Object}, nil
			}

			items = append(items, payload.Items...)

			if payload.Len() == constants.CappedPageSize {
				cursor.size = constants.CappedPageSize
			}

			if payload.Len() < cursor.size {
				return items, nil
			}

			cursor.page++

		case http.StatusTooManyRequests:
			rateAttempts++
			if rateAttempts >= c.rateLimitRetryMax {
				return nil, &hudu.RateLimitError{Attempts: rateAttempts}
			}

			// Retry the same page after the fixed delay.
			if err := sleepContext(ctx, c.rateLimitDelay); err != nil {
				return nil, err
			}

		default:
			return nil, &hudu.RemoteError{
				StatusCode: resp.StatusCode,
				Reason:     resp.Reason(),
				Body:       resp.Body,
			}
		}
	}
}

// executeWrite performs the single-round-trip write path. A 2xx body
// is decoded as JSON when possible; otherwise the raw bytes are kept,
// since some endpoints answer writes with empty or non-JSON bodies.
func (c *Client) executeWrite(ctx context.Context, method, endpoint string, body interface{}) (*hudu.Result, error) {
	var (
		resp *internalhttp.Response
		err  error
	)

	switch method {
	case http.MethodPut:
		resp, err = c.httpClient.Put(ctx, endpoint, body)
	case http.MethodPost:
		resp, err = c.httpClient.Post(ctx, endpoint, body)
	case http.MethodDelete:
		resp, err = c.httpClient.Delete(ctx, endpoint)
	}

	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, endpoint, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &hudu.RemoteError{
			StatusCode: resp.StatusCode,
			Reason:     resp.Reason(),
			Body:       resp.Body,
		}
	}

	result := &hudu.Result{StatusCode: resp.StatusCode}
	if len(resp.Body) > 0 && json.Valid(resp.Body) {
		result.JSON = resp.Body
	} else {
		result.Raw = resp.Body
	}

	return result, nil
}

// sleepContext waits for the duration unless the context ends first.
func sleepContext(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// decodeItems unmarshals accumulated raw items into a typed slice.
func decodeItems[T any](items []json.RawMessage) ([]T, error) {
	decoded := make([]T, 0, len(items))

	for _, raw := range items {
		var value T
		if err := json.Unmarshal(raw, &value); err != nil {
			return nil, fmt.Errorf("parsing list item: %w", err)
		}

		decoded = append(decoded, value)
	}

	return decoded, nil
}

// decodeSingle unmarshals a one-item result into a typed value.
func decodeSingle[T any](items []json.RawMessage) (*T, error) {
	if len(items) == 0 {
		return nil, &hudu.RemoteError{StatusCode: http.StatusNotFound, Reason: "empty result"}
	}

	var value T
	if err := json.Unmarshal(items[0], &value); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &value, nil
}

// decodeWrite unmarshals a write-path response into a typed value,
// unwrapping the single-key envelope most write endpoints use. A 2xx
// answer that carried no JSON yields ErrEmptyWriteResponse so typed
// callers never get a nil value without an error.
func decodeWrite[T any](result *hudu.Result) (*T, error) {
	if result.JSON == nil {
		return nil, hudu.ErrEmptyWriteResponse
	}

	raw := result.JSON

	// Unwrap only when the inner value is itself an object; a bare
	// object response would otherwise lose everything past its first
	// key.
	if payload, err := hudu.ClassifyPayload(result.JSON); err == nil && payload.Single() {
		if inner := bytes.TrimLeft(payload.Object, " \t\r\n"); len(inner) > 0 && inner[0] == '{' {
			raw = payload.Object
		}
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &value, nil
}
