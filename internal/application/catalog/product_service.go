package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/partner"
	"github.com/markethub/backend/internal/domain/shared"
)

// ProductService exposes read access to the product catalog
type ProductService struct {
	productRepo          catalog.ProductRepository
	categoryRepo         catalog.CategoryRepository
	supplierRepo         partner.SupplierRepository
	parameterRepo        catalog.ParameterRepository
	productParameterRepo catalog.ProductParameterRepository
}

// NewProductService creates a product browse service
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	supplierRepo partner.SupplierRepository,
	parameterRepo catalog.ParameterRepository,
	productParameterRepo catalog.ProductParameterRepository,
) *ProductService {
	return &ProductService{
		productRepo:          productRepo,
		categoryRepo:         categoryRepo,
		supplierRepo:         supplierRepo,
		parameterRepo:        parameterRepo,
		productParameterRepo: productParameterRepo,
	}
}

// ListProducts lists products, optionally scoped to a category or supplier
func (s *ProductService) ListProducts(ctx context.Context, categoryID, supplierID *uuid.UUID, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	var (
		products []catalog.Product
		err      error
	)
	switch {
	case categoryID != nil:
		products, err = s.productRepo.FindByCategory(ctx, *categoryID, filter)
	case supplierID != nil:
		products, err = s.productRepo.FindBySupplier(ctx, *supplierID, filter)
	default:
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = *ToProductResponse(&products[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}

// GetProduct returns one product with its category, supplier and parameters
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDetailResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ProductDetailResponse{
		ProductResponse: *ToProductResponse(product),
		Parameters:      []ParameterValueResponse{},
	}

	if category, err := s.categoryRepo.FindByID(ctx, product.CategoryID); err == nil {
		detail.CategoryName = category.Name
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if supplier, err := s.supplierRepo.FindByID(ctx, product.SupplierID); err == nil {
		detail.SupplierName = supplier.Name
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	links, err := s.productParameterRepo.FindByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	for i := range links {
		parameter, err := s.parameterRepo.FindByID(ctx, links[i].ParameterID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		detail.Parameters = append(detail.Parameters, ParameterValueResponse{
			Name:  parameter.Name,
			Value: links[i].Value,
		})
	}

	return detail, nil
}
