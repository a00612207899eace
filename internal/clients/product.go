package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	"github.com/google/go-querystring/query"
)

type ProductClient struct {
	*Client
}

func NewProductClient(c *Client) *ProductClient {
	return &ProductClient{Client: c}
}

// List pushes the category and search filters down to the product service.
func (p *ProductClient) List(ctx context.Context, filter *models.ProductFilter) ([]models.Product, error) {

	var params url.Values

	if filter != nil {
		var err error

		params, err = query.Values(filter)
		if err != nil {
			return nil, err
		}
	}

	products := []models.Product{}
	if err := p.Do(ctx, http.MethodGet, "/api/products/", params, nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (p *ProductClient) Get(ctx context.Context, id string) (*models.Product, error) {

	var product models.Product
	if err := p.Do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (p *ProductClient) Categories(ctx context.Context) ([]string, error) {

	categories := []string{}
	if err := p.Do(ctx, http.MethodGet, "/api/products/categories", nil, nil, &categories); err != nil {
		return nil, err
	}

	return categories, nil
}
