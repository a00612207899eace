package models

import "time"

type CartItem struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gte=1,lte=99"`
}

type CartItemResponse struct {
	ProductID int      `json:"product_id"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}

// Subtotal is zero when the product price is unknown.
func (i CartItemResponse) Subtotal() float64 {
	if i.Product == nil {
		return 0
	}

	return i.Product.Price * float64(i.Quantity)
}

// CartResponse is the cart service representation.
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

// Cart is what the storefront returns for both guest and signed-in shoppers.
type Cart struct {
	Items     []CartItemResponse `json:"items"`
	Total     float64            `json:"total"`
	ItemCount int                `json:"item_count"`
	Synced    bool               `json:"synced"`
	Guest     bool               `json:"guest,omitempty"`
}

// Recalculate refreshes Total and ItemCount from the line items.
func (c *Cart) Recalculate() {
	c.Total = 0
	c.ItemCount = 0

	for _, item := range c.Items {
		c.Total += item.Subtotal()
		c.ItemCount += item.Quantity
	}
}

// Find returns the index of the line for productID, or -1.
func (c *Cart) Find(productID int) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=99"`
}

// SyncCartRequest carries the shopper's local cart lines.
type SyncCartRequest struct {
	Items []CartItem `json:"items" validate:"omitempty,max=100,dive"`
}

// GuestCart is kept in Redis under the guest_cart_id cookie.
type GuestCart struct {
	ID        string             `json:"id"`
	Items     []CartItemResponse `json:"items"`
	UpdatedAt time.Time          `json:"updated_at"`
}
