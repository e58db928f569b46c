package catalog

import (
	"context"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// CategoryService exposes read access to catalog categories
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a category browse service
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories lists categories matching the filter
func (s *CategoryService) ListCategories(ctx context.Context, filter shared.Filter) (*shared.Paginated[CategoryResponse], error) {
	categories, err := s.categoryRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.categoryRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = *ToCategoryResponse(&categories[i])
	}
	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}
