package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

func TestClientSetsFixedHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "hudu-go", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")

	resp, err := client.Get(context.Background(), "companies", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestClientCustomUserAgent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "telco-sync/1.2", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", WithUserAgent("telco-sync/1.2"))

	_, err := client.Get(context.Background(), "companies", nil)
	require.NoError(t, err)
}

func TestClientEncodesQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/companies", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "acme corp", r.URL.Query().Get("name"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")

	query := url.Values{}
	query.Set("page", "1")
	query.Set("name", "acme corp")

	_, err := client.Get(context.Background(), "/companies", query)
	require.NoError(t, err)
}

func TestClientEncodesBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "acme", body["name"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")

	resp, err := client.Post(context.Background(), "companies", map[string]string{"name": "acme"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClientReturnsAnyStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such record", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key")

	// Non-2xx statuses are data, not errors, at this layer.
	resp, err := client.Get(context.Background(), "companies/999", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.Reason())
}

func TestResponseReason(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status string
		want   string
	}{
		{name: "standard", status: "404 Not Found", want: "Not Found"},
		{name: "no phrase", status: "404", want: ""},
		{name: "empty", status: "", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			resp := &Response{Status: testCase.status}
			assert.Equal(t, testCase.want, resp.Reason())
		})
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key",
		WithRetryConfig(2, time.Millisecond, 5*time.Millisecond))

	resp, err := client.Get(context.Background(), "companies", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientNeverRetries429(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	// Even with transport retries on, 429 passes straight through so
	// the request engine can apply its own rate-limit policy.
	client := NewClient(server.URL, "secret-key",
		WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

	resp, err := client.Get(context.Background(), "companies", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRunsInterceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tenant-7", r.Header.Get("X-Tenant"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	chain := hudu.NewInterceptorChain()
	chain.AddRequestInterceptor(hudu.HeaderInterceptor(map[string]string{"X-Tenant": "tenant-7"}))

	var observed atomic.Int32

	chain.AddResponseInterceptor(func(ctx context.Context, req *hudu.Request, resp *hudu.Response) error {
		observed.Store(int32(resp.StatusCode))
		return nil
	})

	client := NewClient(server.URL, "secret-key", WithInterceptors(chain))

	_, err := client.Get(context.Background(), "companies", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(http.StatusOK), observed.Load())
}

func TestClientMethodRouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		invoke func(*Client) (*Response, error)
	}{
		{
			name:   "get",
			method: http.MethodGet,
			invoke: func(c *Client) (*Response, error) {
				return c.Get(context.Background(), "articles", nil)
			},
		},
		{
			name:   "post",
			method: http.MethodPost,
			invoke: func(c *Client) (*Response, error) {
				return c.Post(context.Background(), "articles", map[string]string{"name": "a"})
			},
		},
		{
			name:   "put",
			method: http.MethodPut,
			invoke: func(c *Client) (*Response, error) {
				return c.Put(context.Background(), "articles", map[string]string{"name": "a"})
			},
		},
		{
			name:   "delete",
			method: http.MethodDelete,
			invoke: func(c *Client) (*Response, error) {
				return c.Delete(context.Background(), "articles")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, testCase.method, r.Method)
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := NewClient(server.URL, "secret-key")

			resp, err := testCase.invoke(client)
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}
