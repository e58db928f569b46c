package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	catalogapp "github.com/markethub/backend/internal/application/catalog"
	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/interfaces/http/dto"
)

// CatalogHandler handles product and category browsing endpoints
type CatalogHandler struct {
	BaseHandler
	productService  *catalogapp.ProductService
	categoryService *catalogapp.CategoryService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(productService *catalogapp.ProductService, categoryService *catalogapp.CategoryService) *CatalogHandler {
	return &CatalogHandler{
		productService:  productService,
		categoryService: categoryService,
	}
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	result, err := h.categoryService.ListCategories(c.Request.Context(), toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListProducts handles GET /api/v1/products. Optional category_id and
// supplier_id query parameters scope the listing.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	req.Normalize()

	categoryID, err := optionalUUIDQuery(c, "category_id")
	if err != nil {
		h.BadRequest(c, "category_id must be a valid UUID")
		return
	}
	supplierID, err := optionalUUIDQuery(c, "supplier_id")
	if err != nil {
		h.BadRequest(c, "supplier_id must be a valid UUID")
		return
	}

	result, err := h.productService.ListProducts(c.Request.Context(), categoryID, supplierID, toFilter(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetProduct handles GET /api/v1/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "id must be a valid UUID")
		return
	}
	id, _ := uuid.Parse(req.ID)

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

func toFilter(req dto.ListRequest) shared.Filter {
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
}

func optionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
