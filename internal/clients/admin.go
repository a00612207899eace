package clients

import (
	"context"
	"net/http"
	"net/url"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
)

type AdminClient struct {
	*Client
}

func NewAdminClient(c *Client) *AdminClient {
	return &AdminClient{Client: c}
}

func (a *AdminClient) Dashboard(ctx context.Context) (*models.DashboardResponse, error) {

	var dashboard models.DashboardResponse
	if err := a.Do(ctx, http.MethodGet, "/api/admin/dashboard", nil, nil, &dashboard); err != nil {
		return nil, err
	}

	if dashboard.RecentOrders == nil {
		dashboard.RecentOrders = []models.AdminOrder{}
	}

	return &dashboard, nil
}

func (a *AdminClient) Users(ctx context.Context) ([]models.AdminUser, error) {

	users := []models.AdminUser{}
	if err := a.Do(ctx, http.MethodGet, "/api/admin/users", nil, nil, &users); err != nil {
		return nil, err
	}

	return users, nil
}

func (a *AdminClient) Orders(ctx context.Context) ([]models.AdminOrder, error) {

	orders := []models.AdminOrder{}
	if err := a.Do(ctx, http.MethodGet, "/api/admin/orders", nil, nil, &orders); err != nil {
		return nil, err
	}

	return orders, nil
}

func (a *AdminClient) CreateProduct(ctx context.Context, product *models.CreateProductRequest) (*models.Product, error) {

	var created models.Product
	if err := a.Do(ctx, http.MethodPost, "/api/admin/products", nil, product, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

func (a *AdminClient) UpdateProduct(ctx context.Context, id string, product *models.UpdateProductRequest) (*models.Product, error) {

	var updated models.Product
	if err := a.Do(ctx, http.MethodPut, "/api/admin/products/"+url.PathEscape(id), nil, product, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (a *AdminClient) DeleteProduct(ctx context.Context, id string) error {
	return a.Do(ctx, http.MethodDelete, "/api/admin/products/"+url.PathEscape(id), nil, nil, nil)
}

func (a *AdminClient) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error {
	return a.Do(ctx, http.MethodPut, "/api/admin/orders/"+url.PathEscape(id)+"/status", nil,
		models.UpdateOrderStatusRequest{Status: status}, nil)
}
