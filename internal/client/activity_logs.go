package client

import (
	"context"
	"fmt"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// ActivityLogsClient implements hudu.ActivityLogsClient.
type ActivityLogsClient struct {
	client *Client
}

// NewActivityLogsClient creates a new activity logs client.
func NewActivityLogsClient(client *Client) *ActivityLogsClient {
	return &ActivityLogsClient{client: client}
}

// List implements hudu.ActivityLogsClient.List. The filter is
// validated before any network traffic: resource_id and resource_type
// only mean anything to the API as a pair.
func (c *ActivityLogsClient) List(ctx context.Context, filter *hudu.ActivityLogFilter) ([]hudu.ActivityLog, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	items, err := c.client.executeList(ctx, "activity_logs", filter.Values())
	if err != nil {
		return nil, fmt.Errorf("listing activity logs: %w", err)
	}

	return decodeItems[hudu.ActivityLog](items)
}
