package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// AssetLayoutsClient implements hudu.AssetLayoutsClient.
type AssetLayoutsClient struct {
	client *Client
}

// NewAssetLayoutsClient creates a new asset layouts client.
func NewAssetLayoutsClient(client *Client) *AssetLayoutsClient {
	return &AssetLayoutsClient{client: client}
}

// assetLayoutBody is the write envelope for layout mutations.
type assetLayoutBody struct {
	AssetLayout interface{} `json:"asset_layout"`
}

// List implements hudu.AssetLayoutsClient.List.
func (c *AssetLayoutsClient) List(ctx context.Context, filter *hudu.AssetLayoutFilter) ([]hudu.AssetLayout, error) {
	items, err := c.client.executeList(ctx, "asset_layouts", filter.Values())
	if err != nil {
		return nil, fmt.Errorf("listing asset layouts: %w", err)
	}

	return decodeItems[hudu.AssetLayout](items)
}

// Get implements hudu.AssetLayoutsClient.Get.
func (c *AssetLayoutsClient) Get(ctx context.Context, id int) (*hudu.AssetLayout, error) {
	items, err := c.client.executeList(ctx, fmt.Sprintf("asset_layouts/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting asset layout: %w", err)
	}

	return decodeSingle[hudu.AssetLayout](items)
}

// Create implements hudu.AssetLayoutsClient.Create.
func (c *AssetLayoutsClient) Create(ctx context.Context, request *hudu.AssetLayoutCreateRequest) (*hudu.AssetLayout, error) {
	result, err := c.client.executeWrite(ctx, http.MethodPost, "asset_layouts", assetLayoutBody{AssetLayout: request})
	if err != nil {
		return nil, fmt.Errorf("creating asset layout: %w", err)
	}

	return decodeWrite[hudu.AssetLayout](result)
}

// Update implements hudu.AssetLayoutsClient.Update.
func (c *AssetLayoutsClient) Update(ctx context.Context, id int, request *hudu.AssetLayoutUpdateRequest) (*hudu.AssetLayout, error) {
	endpoint := fmt.Sprintf("asset_layouts/%d", id)

	result, err := c.client.executeWrite(ctx, http.MethodPut, endpoint, assetLayoutBody{AssetLayout: request})
	if err != nil {
		return nil, fmt.Errorf("updating asset layout: %w", err)
	}

	return decodeWrite[hudu.AssetLayout](result)
}
