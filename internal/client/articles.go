package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/telcocentric/hudu-go/pkg/hudu"
)

// ArticlesClient implements hudu.ArticlesClient.
type ArticlesClient struct {
	client *Client
}

// NewArticlesClient creates a new articles client.
func NewArticlesClient(client *Client) *ArticlesClient {
	return &ArticlesClient{client: client}
}

// articleBody is the write envelope for article mutations.
type articleBody struct {
	Article interface{} `json:"article"`
}

// List implements hudu.ArticlesClient.List.
func (c *ArticlesClient) List(ctx context.Context, filter *hudu.ArticleFilter) ([]hudu.Article, error) {
	items, err := c.client.executeList(ctx, "articles", filter.Values())
	if err != nil {
		return nil, fmt.Errorf("listing articles: %w", err)
	}

	return decodeItems[hudu.Article](items)
}

// Get implements hudu.ArticlesClient.Get.
func (c *ArticlesClient) Get(ctx context.Context, id int) (*hudu.Article, error) {
	items, err := c.client.executeList(ctx, fmt.Sprintf("articles/%d", id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting article: %w", err)
	}

	return decodeSingle[hudu.Article](items)
}

// Create implements hudu.ArticlesClient.Create.
func (c *ArticlesClient) Create(ctx context.Context, request *hudu.ArticleCreateRequest) (*hudu.Article, error) {
	result, err := c.client.executeWrite(ctx, http.MethodPost, "articles", articleBody{Article: request})
	if err != nil {
		return nil, fmt.Errorf("creating article: %w", err)
	}

	return decodeWrite[hudu.Article](result)
}

// Update implements hudu.ArticlesClient.Update.
func (c *ArticlesClient) Update(ctx context.Context, id int, request *hudu.ArticleUpdateRequest) (*hudu.Article, error) {
	endpoint := fmt.Sprintf("articles/%d", id)

	result, err := c.client.executeWrite(ctx, http.MethodPut, endpoint, articleBody{Article: request})
	if err != nil {
		return nil, fmt.Errorf("updating article: %w", err)
	}

	return decodeWrite[hudu.Article](result)
}

// Delete implements hudu.ArticlesClient.Delete.
func (c *ArticlesClient) Delete(ctx context.Context, id int) error {
	endpoint := fmt.Sprintf("articles/%d", id)

	_, err := c.client.executeWrite(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("deleting article: %w", err)
	}

	return nil
}

// Archive implements hudu.ArticlesClient.Archive. Archiving is a
// parameterless PUT to a suffixed endpoint.
func (c *ArticlesClient) Archive(ctx context.Context, id int) (*hudu.Article, error) {
	endpoint := fmt.Sprintf("articles/%d/archive", id)

	result, err := c.client.executeWrite(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("archiving article: %w", err)
	}

	return decodeWrite[hudu.Article](result)
}

// Unarchive implements hudu.ArticlesClient.Unarchive.
func (c *ArticlesClient) Unarchive(ctx context.Context, id int) (*hudu.Article, error) {
	endpoint := fmt.Sprintf("articles/%d/unarchive", id)

	result, err := c.client.executeWrite(ctx, http.MethodPut, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("unarchiving article: %w", err)
	}

	return decodeWrite[hudu.Article](result)
}
