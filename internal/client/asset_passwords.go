package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// AssetPasswordsClient implements hudu.AssetPasswordsClient.
type AssetPasswordsClient struct {
	client *Client
}

// NewAssetPasswordsClient creates a new asset passwords client.
func NewAssetPasswordsClient(client *Client) *AssetPasswordsClient {
	return &AssetPasswordsClient{client: client}
}

// assetPasswordBody is the write envelope for password mutations.
type assetPasswordBody struct {
	AssetPassword interface{} `json:"asset_password"`
}

// List implements hudu.AssetPasswordsClient.List.
func (c *AssetPasswordsClient) List(ctx context.Context, filter *hudu.AssetPasswordFilter) ([]hudu.AssetPassword, error) {
	items, err := c.client.executeList(ctx, "asset_passwords", filter.Values())
	if err != nil {
		return nil, fmt.Errorf("listing asset passwords: %w", err)
	}

	return decodeItems[hudu.AssetPassword](items)
}

// Get implements hudu.AssetPasswordsClient.Get.
func (c *AssetPasswordsClient) Get(ctx context.Context, id int) (*hudu.AssetPassword, error) {
	items, err := c.client.executeList(ctx, fmt.Sprintf("asset_passwords/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting asset password: %w", err)
	}

	return decodeSingle[hudu.AssetPassword](items)
}

// Create implements hudu.AssetPasswordsClient.Create.
func (c *AssetPasswordsClient) Create(ctx context.Context, request *hudu.AssetPasswordCreateRequest) (*hudu.AssetPassword, error) {
	result, err := c.client.executeWrite(ctx, http.MethodPost, "asset_passwords", assetPasswordBody{AssetPassword: request})
	if err != nil {
		return nil, fmt.Errorf("creating asset password: %w", err)
	}

	return decodeWrite[hudu.AssetPassword](result)
}
