package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

func TestAssetsListDelegatesToCompanyEndpoint(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/companies/5/assets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"assets":[{"id":1,"company_id":5,"name":"fw-01"}]}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	assets, err := client.Assets().List(context.Background(), &hudu.AssetFilter{CompanyID: 5})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "fw-01", assets[0].Name)
}

func TestAssetsListFlat(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assets", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("company_id"))
		assert.Equal(t, "2", r.URL.Query().Get("asset_layout_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"assets":[{"id":1,"company_id":5,"asset_layout_id":2,"name":"fw-01"}]}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	// Any filter beyond the company forces the flat endpoint.
	assets, err := client.Assets().List(context.Background(), &hudu.AssetFilter{CompanyID: 5, AssetLayoutID: 2})
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, 2, assets[0].AssetLayoutID)
}

func TestAssetsGetForCompany(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/companies/5/assets/7":
			_, _ = w.Write([]byte(`{"asset":{"id":7,"company_id":5,"name":"fw-01"}}`))
		case "/asset_passwords":
			assert.Equal(t, "5", r.URL.Query().Get("company_id"))
			_, _ = w.Write([]byte(`{"asset_passwords":[
				{"id":10,"name":"admin","passwordable_id":7},
				{"id":11,"name":"other","passwordable_id":8}
			]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	asset, err := client.Assets().GetForCompany(context.Background(), 5, 7)
	require.NoError(t, err)
	require.NotNil(t, asset.Data)
	assert.Equal(t, 7, asset.Data.ID)

	// Only the passwords attached to this asset survive the filter.
	require.Len(t, asset.Passwords, 1)
	assert.Equal(t, "admin", asset.Passwords[0].Name)
}

func TestAssetsCreate(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/companies/5/assets", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body struct {
			Asset hudu.AssetCreateRequest `json:"asset"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fw-01", body.Asset.Name)
		assert.Equal(t, 2, body.Asset.AssetLayoutID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"asset":{"id":7,"company_id":5,"asset_layout_id":2,"name":"fw-01"}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	asset, err := client.Assets().Create(context.Background(), 5, &hudu.AssetCreateRequest{
		AssetLayoutID: 2,
		Name:          "fw-01",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, asset.ID)
}

func TestAssetsUpdateFillsRequiredFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/assets":
			assert.Equal(t, "7", r.URL.Query().Get("id"))
			assert.Equal(t, "5", r.URL.Query().Get("company_id"))
			_, _ = w.Write([]byte(`{"assets":[{"id":7,"company_id":5,"asset_layout_id":2,"name":"fw-01"}]}`))
		case r.Method == http.MethodPut && r.URL.Path == "/companies/5/assets/7":
			var body struct {
				Asset assetWriteRequest `json:"asset"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

			// Name and layout come from the read when the caller left
			// them out.
			assert.Equal(t, "fw-01", body.Asset.Name)
			assert.Equal(t, 2, body.Asset.AssetLayoutID)
			require.NotNil(t, body.Asset.PrimarySerial)
			assert.Equal(t, "SN-1", *body.Asset.PrimarySerial)

			_, _ = w.Write([]byte(`{"asset":{"id":7,"company_id":5,"asset_layout_id":2,"name":"fw-01","primary_serial":"SN-1"}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	asset, err := client.Assets().Update(context.Background(), 5, 7, &hudu.AssetUpdateRequest{
		PrimarySerial: StringPtr("SN-1"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SN-1", asset.PrimarySerial)
}

func TestAssetsUpdateNormalizesCustomFieldKeys(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/companies/5/assets/7", r.URL.Path)

		var body struct {
			Asset struct {
				Name         string                   `json:"name"`
				CustomFields []map[string]interface{} `json:"custom_fields"`
			} `json:"asset"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		require.Len(t, body.Asset.CustomFields, 1)
		assert.Equal(t, "SN-1", body.Asset.CustomFields[0]["serial_number"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"asset":{"id":7,"company_id":5,"name":"fw-01"}}`))
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	// Name and layout are given, so no read precedes the write.
	_, err := client.Assets().Update(context.Background(), 5, 7, &hudu.AssetUpdateRequest{
		Name:          StringPtr("fw-01"),
		AssetLayoutID: IntPtr(2),
		CustomFields:  map[string]interface{}{"Serial Number": "SN-1"},
	})
	require.NoError(t, err)
}

func TestAssetsDelete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/companies/5/assets/7", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewTestClient(server.URL)

	require.NoError(t, client.Assets().Delete(context.Background(), 5, 7))
}

func TestAssetsArchiveUnarchive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		path   string
		invoke func(hudu.AssetsClient) (*hudu.Asset, error)
	}{
		{
			name: "archive",
			path: "/companies/5/assets/7/archive",
			invoke: func(c hudu.AssetsClient) (*hudu.Asset, error) {
				return c.Archive(context.Background(), 5, 7)
			},
		},
		{
			name: "unarchive",
			path: "/companies/5/assets/7/unarchive",
			invoke: func(c hudu.AssetsClient) (*hudu.Asset, error) {
				return c.Unarchive(context.Background(), 5, 7)
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, testCase.path, r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`{"asset":{"id":7,"company_id":5,"name":"fw-01"}}`))
			}))
			defer server.Close()

			client := NewTestClient(server.URL)

			asset, err := testCase.invoke(client.Assets())
			require.NoError(t, err)
			assert.Equal(t, 7, asset.ID)
		})
	}
}
