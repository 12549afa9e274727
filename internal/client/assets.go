package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// AssetsClient implements hudu.AssetsClient. Assets are company-scoped
// in the API: every write goes through companies/{id}/assets.
type AssetsClient struct {
	client *Client
}

// NewAssetsClient creates a new assets client.
func NewAssetsClient(client *Client) *AssetsClient {
	return &AssetsClient{client: client}
}

// assetBody is the write envelope for asset mutations.
type assetBody struct {
	Asset interface{} `json:"asset"`
}

// assetWriteRequest mirrors the update request with normalized custom
// fields and the required name/layout pair filled in.
type assetWriteRequest struct {
	AssetLayoutID       int                      `json:"asset_layout_id"`
	Name                string                   `json:"name"`
	PrimarySerial       *string                  `json:"primary_serial,omitempty"`
	PrimaryMail         *string                  `json:"primary_mail,omitempty"`
	PrimaryModel        *string                  `json:"primary_model,omitempty"`
	PrimaryManufacturer *string                  `json:"primary_manufacturer,omitempty"`
	CustomFields        []map[string]interface{} `json:"custom_fields,omitempty"`
}

// List implements hudu.AssetsClient.List. A filter naming only a
// company delegates to the company-scoped endpoint.
func (c *AssetsClient) List(ctx context.Context, filter *hudu.AssetFilter) ([]hudu.Asset, error) {
	if filter.CompanyOnly() {
		return c.ListForCompany(ctx, filter.CompanyID, &hudu.CompanyAssetFilter{Archived: filter.Archived})
	}

	items, err := c.client.executeList(ctx, "assets", filter.Values())
	if err != nil {
		return nil, fmt.Errorf("listing assets: %w", err)
	}

	return decodeItems[hudu.Asset](items)
}

// ListForCompany implements hudu.AssetsClient.ListForCompany.
func (c *AssetsClient) ListForCompany(ctx context.Context, companyID int, filter *hudu.CompanyAssetFilter) ([]hudu.Asset, error) {
	endpoint := fmt.Sprintf("companies/%d/assets", companyID)

	items, err := c.client.executeList(ctx, endpoint, filter.Values())
	if err != nil {
		return nil, fmt.Errorf("listing company assets: %w", err)
	}

	return decodeItems[hudu.Asset](items)
}

// GetForCompany implements hudu.AssetsClient.GetForCompany: the
// composite read of one asset plus its attached passwords. The API has
// no scoped password listing per asset, so all passwords of the
// asset's company are fetched and filtered client-side on
// passwordable_id.
func (c *AssetsClient) GetForCompany(ctx context.Context, companyID, id int) (*hudu.AssetWithPasswords, error) {
	endpoint := fmt.Sprintf("companies/%d/assets/%d", companyID, id)

	items, err := c.client.executeList(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("getting asset: %w", err)
	}

	asset, err := decodeSingle[hudu.Asset](items)
	if err != nil {
		return nil, err
	}

	companyPasswords, err := c.client.assetPasswords.List(ctx, &hudu.AssetPasswordFilter{CompanyID: companyID})
	if err != nil {
		return nil, fmt.Errorf("listing asset passwords: %w", err)
	}

	passwords := make([]hudu.AssetPassword, 0)

	for _, password := range companyPasswords {
		if password.PasswordableID == id {
			passwords = append(passwords, password)
		}
	}

	return &hudu.AssetWithPasswords{Data: asset, Passwords: passwords}, nil
}

// Create implements hudu.AssetsClient.Create.
func (c *AssetsClient) Create(ctx context.Context, companyID int, request *hudu.AssetCreateRequest) (*hudu.Asset, error) {
	endpoint := fmt.Sprintf("companies/%d/assets", companyID)

	result, err := c.client.executeWrite(ctx, http.MethodPost, endpoint, assetBody{Asset: request})
	if err != nil {
		return nil, fmt.Errorf("creating asset: %w", err)
	}

	return decodeWrite[hudu.Asset](result)
}

// Update implements hudu.AssetsClient.Update.
//
// The API requires name and asset_layout_id on every update even when
// they are unchanged, so missing ones are filled from a read of the
// current asset. Custom-field keys are normalized before transmission.
func (c *AssetsClient) Update(ctx context.Context, companyID, id int, request *hudu.AssetUpdateRequest) (*hudu.Asset, error) {
	write := assetWriteRequest{
		PrimarySerial:       request.PrimarySerial,
		PrimaryMail:         request.PrimaryMail,
		PrimaryModel:        request.PrimaryModel,
		PrimaryManufacturer: request.PrimaryManufacturer,
	}

	if request.Name != nil && request.AssetLayoutID != nil {
		write.Name = *request.Name
		write.AssetLayoutID = *request.AssetLayoutID
	} else {
		current, err := c.fetchCurrent(ctx, companyID, id)
		if err != nil {
			return nil, err
		}

		write.Name = current.Name
		write.AssetLayoutID = current.AssetLayoutID

		if request.Name != nil {
			write.Name = *request.Name
		}

		if request.AssetLayoutID != nil {
			write.AssetLayoutID = *request.AssetLayoutID
		}
	}

	if len(request.CustomFields) > 0 {
		write.CustomFields = normalizeCustomFields(request.CustomFields)
	}

	endpoint := fmt.Sprintf("companies/%d/assets/%d", companyID, id)

	result, err := c.client.executeWrite(ctx, http.MethodPut, endpoint, assetBody{Asset: write})
	if err != nil {
		return nil, fmt.Errorf("updating asset: %w", err)
	}

	return decodeWrite[hudu.Asset](result)
}

// fetchCurrent reads the asset being updated through the flat assets
// listing filtered on id and company.
func (c *AssetsClient) fetchCurrent(ctx context.Context, companyID, id int) (*hudu.Asset, error) {
	assets, err := c.List(ctx, &hudu.AssetFilter{CompanyID: companyID, ID: id})
	if err != nil {
		return nil, fmt.Errorf("reading asset before update: %w", err)
	}

	if len(assets) == 0 {
		return nil, &hudu.RemoteError{StatusCode: http.StatusNotFound, Reason: "asset not found"}
	}

	return &assets[0], nil
}

// Delete implements hudu.AssetsClient.Delete.
func (c *AssetsClient) Delete(ctx context.Context, companyID, id int) error {
	endpoint := fmt.Sprintf("companies/%d/assets/%d", companyID, id)

	_, err := c.client.executeWrite(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("deleting asset: %w", err)
	}

	return nil
}

// Archive implements hudu.AssetsClient.Archive.
func (c *AssetsClient) Archive(ctx context.Context, companyID, id int) (*hudu.Asset, error) {
	endpoint := fmt.Sprintf("companies/%d/assets/%d/archive", companyID, id)

	result, err := c.client.executeWrite(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("archiving asset: %w", err)
	}

	return decodeWrite[hudu.Asset](result)
}

// Unarchive implements hudu.AssetsClient.Unarchive.
func (c *AssetsClient) Unarchive(ctx context.Context, companyID, id int) (*hudu.Asset, error) {
	endpoint := fmt.Sprintf("companies/%d/assets/%d/unarchive", companyID, id)

	result, err := c.client.executeWrite(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("unarchiving asset: %w", err)
	}

	return decodeWrite[hudu.Asset](result)
}

// normalizeCustomFields lower-cases field keys and replaces spaces
// with underscores, matching the form the update endpoint expects,
// and emits one single-pair object per field.
func normalizeCustomFields(fields map[string]interface{}) []map[string]interface{} {
	normalized := make([]map[string]interface{}, 0, len(fields))

	for key, value := range fields {
		normalizedKey := strings.ReplaceAll(strings.ToLower(key), " ", "_")
		normalized = append(normalized, map[string]interface{}{normalizedKey: value})
	}

	return normalized
}
