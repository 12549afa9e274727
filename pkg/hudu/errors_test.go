package hudu

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteErrorMessage(t *testing.T) {
	t.Parallel()

	withReason := &RemoteError{StatusCode: 404, Reason: "Not Found"}
	assert.Equal(t, "hudu: remote error 404: Not Found", withReason.Error())

	withoutReason := &RemoteError{StatusCode: 500}
	assert.Equal(t, "hudu: remote error 500", withoutReason.Error())
}

func TestRateLimitErrorMessage(t *testing.T) {
	t.Parallel()

	err := &RateLimitError{Attempts: 10}
	assert.Equal(t, "hudu: rate limited after 10 attempts", err.Error())
}

func TestErrorPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		notFound     bool
		unauthorized bool
		rateLimited  bool
	}{
		{
			name:     "remote 404",
			err:      &RemoteError{StatusCode: http.StatusNotFound},
			notFound: true,
		},
		{
			name:         "remote 401",
			err:          &RemoteError{StatusCode: http.StatusUnauthorized},
			unauthorized: true,
		},
		{
			name: "remote 500",
			err:  &RemoteError{StatusCode: http.StatusInternalServerError},
		},
		{
			name:        "rate limited",
			err:         &RateLimitError{Attempts: 3},
			rateLimited: true,
		},
		{
			name:     "wrapped remote 404",
			err:      fmt.Errorf("listing companies: %w", &RemoteError{StatusCode: http.StatusNotFound}),
			notFound: true,
		},
		{
			name: "unrelated error",
			err:  ErrEndpointRequired,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.notFound, IsNotFound(testCase.err))
			assert.Equal(t, testCase.unauthorized, IsUnauthorized(testCase.err))
			assert.Equal(t, testCase.rateLimited, IsRateLimited(testCase.err))
		})
	}
}
