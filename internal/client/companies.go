package client

import (
	"context"
	"fmt"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// CompaniesClient implements hudu.CompaniesClient.
type CompaniesClient struct {
	client *Client
}

// NewCompaniesClient creates a new companies client.
func NewCompaniesClient(client *Client) *CompaniesClient {
	return &CompaniesClient{client: client}
}

// List implements hudu.CompaniesClient.List.
func (c *CompaniesClient) List(ctx context.Context, filter *hudu.CompanyFilter) ([]hudu.Company, error) {
	items, err := c.client.executeList(ctx, "companies", filter.Values())
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}

	return decodeItems[hudu.Company](items)
}

// Get implements hudu.CompaniesClient.Get.
func (c *CompaniesClient) Get(ctx context.Context, id int) (*hudu.Company, error) {
	items, err := c.client.executeList(ctx, fmt.Sprintf("companies/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting company: %w", err)
	}

	return decodeSingle[hudu.Company](items)
}
