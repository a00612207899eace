package models

// Product as served by the product service. IDs are opaque strings.
type Product struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description string  `json:"description,omitempty" validate:"max=5000"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required"`
	ImageURL    string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Stock       int     `json:"stock" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

type ProductSortField string

const (
	SortByName      ProductSortField = "name"
	SortByPrice     ProductSortField = "price"
	SortByCreatedAt ProductSortField = "created_at"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ProductFilter is decoded from the catalog query string.
type ProductFilter struct {
	Category  string           `url:"category,omitempty" validate:"omitempty,max=100"`
	Search    string           `url:"search,omitempty" validate:"omitempty,max=200"`
	MinPrice  *float64         `url:"-" validate:"omitempty,gte=0"`
	MaxPrice  *float64         `url:"-" validate:"omitempty,gte=0"`
	SortBy    ProductSortField `url:"-" validate:"omitempty,oneof=name price created_at"`
	SortOrder SortOrder        `url:"-" validate:"omitempty,oneof=asc desc"`
	Page      int              `url:"-" validate:"gte=0"`
	PageSize  int              `url:"-" validate:"gte=0"`
}

// HomeResponse backs the landing page.
type HomeResponse struct {
	Featured   []Product `json:"featured"`
	Categories []string  `json:"categories"`
}
