package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/shophub-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/config"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/models"
	service "github.com/aaravmahajanofficial/shophub-storefront/internal/services"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils"
	"github.com/aaravmahajanofficial/shophub-storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	catalogCfg     *config.Catalog
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService, catalogCfg *config.Catalog) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, catalogCfg: catalogCfg, validator: utils.NewValidator()}
}

// Home godoc
//	@Summary		Landing page data
//	@Description	Returns featured products and the category list.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	models.HomeResponse		"Featured products and categories"
//	@Failure		503	{object}	response.ErrorResponse	"Product service unreachable"
//	@Router			/home [get]
func (h *CatalogHandler) Home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		home, err := h.catalogService.Home(r.Context())
		if err != nil {
			logger.Error("Failed to load home page", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, home)
	}
}

// ListProducts godoc
//	@Summary		List products
//	@Description	Lists catalog products with optional category, search, price range and sorting.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category	query		string					false	"Category"
//	@Param			search		query		string					false	"Search text"
//	@Param			min_price	query		number					false	"Minimum price"
//	@Param			max_price	query		number					false	"Maximum price"
//	@Param			sort_by		query		string					false	"Sort field"	Enums(name, price, created_at)
//	@Param			sort_order	query		string					false	"Sort order"	Enums(asc, desc)
//	@Param			page		query		int						false	"Page number"	default(1)
//	@Param			pageSize	query		int						false	"Page size"		default(12)
//	@Success		200			{object}	models.PaginatedResponse{data=[]models.Product}
//	@Failure		400			{object}	response.ErrorResponse	"Invalid filter"
//	@Failure		503			{object}	response.ErrorResponse	"Product service unreachable"
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter, err := h.parseFilter(r)
		if err != nil {
			logger.Warn("Invalid product filter", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		if err := h.validator.Struct(filter); err != nil {
			if validationErrs, ok := err.(validator.ValidationErrors); ok {
				response.ValidationError(w, validationErrs)
				return
			}
			response.Error(w, err)
			return
		}

		products, err := h.catalogService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		logger.Info("Products listed", slog.Int("total", products.Total), slog.Int("page", products.Page))
		response.Success(w, http.StatusOK, products)
	}
}

// GetProduct godoc
//	@Summary		Get a product
//	@Tags			Catalog
//	@Produce		json
//	@Param			id	path		string					true	"Product ID"
//	@Success		200	{object}	models.Product
//	@Failure		400	{object}	response.ErrorResponse	"Missing product ID"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{id} [get]
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParsePathID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		logger = logger.With(slog.String("productId", id))

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			logger.Error("Failed to fetch product", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// Categories godoc
//	@Summary	List categories
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}		string
//	@Failure	503	{object}	response.ErrorResponse	"Product service unreachable"
//	@Router		/categories [get]
func (h *CatalogHandler) Categories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.catalogService.Categories(r.Context())
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *CatalogHandler) parseFilter(r *http.Request) (*models.ProductFilter, error) {

	q := r.URL.Query()

	minPrice, err := utils.ParseOptionalFloat(r, "min_price")
	if err != nil {
		return nil, err
	}

	maxPrice, err := utils.ParseOptionalFloat(r, "max_price")
	if err != nil {
		return nil, err
	}

	page, size := utils.ParsePagination(r, h.catalogCfg.DefaultPageSize, h.catalogCfg.MaxPageSize)

	return &models.ProductFilter{
		Category:  strings.TrimSpace(q.Get("category")),
		Search:    strings.TrimSpace(q.Get("search")),
		MinPrice:  minPrice,
		MaxPrice:  maxPrice,
		SortBy:    models.ProductSortField(q.Get("sort_by")),
		SortOrder: models.SortOrder(strings.ToLower(q.Get("sort_order"))),
		Page:      page,
		PageSize:  size,
	}, nil
}
