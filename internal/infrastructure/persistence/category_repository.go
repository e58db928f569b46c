package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindByName finds a category by its exact name
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// FindAll finds all categories matching the filter
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var categories []catalog.Category
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Category{}), filter)

	if err := query.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Count counts categories matching the filter
func (r *GormCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Category{})
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+strings.TrimSpace(filter.Search)+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCategoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+strings.TrimSpace(filter.Search)+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		field := ValidateSortField(filter.OrderBy, CategorySortFields, "name")
		query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("name ASC")
	}

	return query
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)

// GormCategoryMappingRepository implements CategoryMappingRepository using GORM
type GormCategoryMappingRepository struct {
	db *gorm.DB
}

// NewGormCategoryMappingRepository creates a new GormCategoryMappingRepository
func NewGormCategoryMappingRepository(db *gorm.DB) *GormCategoryMappingRepository {
	return &GormCategoryMappingRepository{db: db}
}

// FindBySupplierAndExternalID finds the mapping for a supplier's feed-local category id
func (r *GormCategoryMappingRepository) FindBySupplierAndExternalID(ctx context.Context, supplierID uuid.UUID, externalID int64) (*catalog.SupplierCategoryMapping, error) {
	var mapping catalog.SupplierCategoryMapping
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND external_id = ?", supplierID, externalID).
		First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mapping, nil
}

// FindBySupplier finds all mappings for a supplier
func (r *GormCategoryMappingRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]catalog.SupplierCategoryMapping, error) {
	var mappings []catalog.SupplierCategoryMapping
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("external_id ASC").
		Find(&mappings).Error; err != nil {
		return nil, err
	}
	return mappings, nil
}

// Save creates or updates a mapping
func (r *GormCategoryMappingRepository) Save(ctx context.Context, mapping *catalog.SupplierCategoryMapping) error {
	return r.db.WithContext(ctx).Save(mapping).Error
}

// Ensure GormCategoryMappingRepository implements CategoryMappingRepository
var _ catalog.CategoryMappingRepository = (*GormCategoryMappingRepository)(nil)
