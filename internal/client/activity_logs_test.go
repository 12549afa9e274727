package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

func TestActivityLogsList(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activity_logs", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("resource_id"))
		assert.Equal(t, "Asset", r.URL.Query().Get("resource_type"))
		assert.Equal(t, "2026-02-01T00:00:00Z", r.URL.Query().Get("start_date"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"activity_logs":[{"id":1,"user_email":"ops@example.com","action_message":"updated asset"}]}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	logs, err := client.ActivityLogs().List(context.Background(), &hudu.ActivityLogFilter{
		ResourceID:   3,
		ResourceType: "Asset",
		StartDate:    start,
	})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "ops@example.com", logs[0].UserEmail)
}

func TestActivityLogsListRejectsHalfPair(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected network traffic")
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	tests := []struct {
		name   string
		filter *hudu.ActivityLogFilter
	}{
		{name: "id without type", filter: &hudu.ActivityLogFilter{ResourceID: 3}},
		{name: "type without id", filter: &hudu.ActivityLogFilter{ResourceType: "Asset"}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := client.ActivityLogs().List(context.Background(), testCase.filter)
			require.Error(t, err)
			assert.True(t, errors.Is(err, hudu.ErrResourceFilterPair))
		})
	}
}

func TestActivityLogsListNilFilter(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"activity_logs":[]}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	logs, err := client.ActivityLogs().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
