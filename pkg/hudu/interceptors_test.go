package hudu

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errInterceptorBoom = errors.New("boom")

func TestInterceptorChainRunsInOrder(t *testing.T) {
	t.Parallel()

	chain := NewInterceptorChain()

	var order []string

	chain.AddRequestInterceptor(func(ctx context.Context, req *Request) error {
		order = append(order, "first")
		return nil
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *Request) error {
		order = append(order, "second")
		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &Request{Method: http.MethodGet})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestInterceptorChainStopsOnError(t *testing.T) {
	t.Parallel()

	chain := NewInterceptorChain()

	var reached bool

	chain.AddRequestInterceptor(func(ctx context.Context, req *Request) error {
		return errInterceptorBoom
	})
	chain.AddRequestInterceptor(func(ctx context.Context, req *Request) error {
		reached = true
		return nil
	})

	err := chain.ExecuteRequestInterceptors(context.Background(), &Request{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInterceptorBoom))
	assert.False(t, reached)
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	interceptor := HeaderInterceptor(map[string]string{"X-Tenant": "tenant-7"})

	req := &Request{Method: http.MethodGet}
	require.NoError(t, interceptor(context.Background(), req))
	assert.Equal(t, "tenant-7", req.Headers.Get("X-Tenant"))
}

func TestResponseInterceptorSeesStatus(t *testing.T) {
	t.Parallel()

	chain := NewInterceptorChain()

	var status int

	chain.AddResponseInterceptor(func(ctx context.Context, req *Request, resp *Response) error {
		status = resp.StatusCode
		return nil
	})

	err := chain.ExecuteResponseInterceptors(context.Background(), &Request{}, &Response{StatusCode: http.StatusTeapot})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, status)
}

func TestRateLimitInterceptorHonorsContext(t *testing.T) {
	t.Parallel()

	interceptor, stop := RateLimitInterceptor(1)
	defer stop()

	// First request takes the only token.
	require.NoError(t, interceptor(context.Background(), &Request{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := interceptor(ctx, &Request{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRateLimitInterceptorStop(t *testing.T) {
	t.Parallel()

	interceptor, stop := RateLimitInterceptor(1000)

	require.NoError(t, interceptor(context.Background(), &Request{}))

	// Stopping twice must not panic, and the interceptor keeps
	// draining whatever tokens remain in the bucket.
	stop()
	stop()

	require.NoError(t, interceptor(context.Background(), &Request{}))
}
