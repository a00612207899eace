package models

import "encoding/json"

type DashboardStats struct {
	TotalUsers    int     `json:"total_users"`
	TotalProducts int     `json:"total_products"`
	TotalOrders   int     `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type DashboardResponse struct {
	Stats        DashboardStats `json:"stats"`
	RecentOrders []AdminOrder   `json:"recent_orders"`
}

type AdminUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	IsAdmin   bool   `json:"is_admin"`
	CreatedAt string `json:"created_at,omitempty"`
}

// AdminOrder is an order annotated with its customer.
type AdminOrder struct {
	Order
	User *AdminUser `json:"user,omitempty"`
}

// UnmarshalJSON is needed because the embedded Order has its own decoder.
func (o *AdminOrder) UnmarshalJSON(data []byte) error {
	if err := o.Order.UnmarshalJSON(data); err != nil {
		return err
	}

	var aux struct {
		User *AdminUser `json:"user"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	o.User = aux.User

	return nil
}

type AdminOrderFilter struct {
	Status OrderStatus `validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
}

// ServiceHealth reports reachability of one backend service.
type ServiceHealth struct {
	Service   string `json:"service"`
	Healthy   bool   `json:"healthy"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}
