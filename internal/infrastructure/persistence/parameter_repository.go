package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/catalog"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormParameterRepository implements ParameterRepository using GORM
type GormParameterRepository struct {
	db *gorm.DB
}

// NewGormParameterRepository creates a new GormParameterRepository
func NewGormParameterRepository(db *gorm.DB) *GormParameterRepository {
	return &GormParameterRepository{db: db}
}

// FindByID finds a parameter by its ID
func (r *GormParameterRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Parameter, error) {
	var parameter catalog.Parameter
	if err := r.db.WithContext(ctx).First(&parameter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &parameter, nil
}

// FindByName finds a parameter by its unique name
func (r *GormParameterRepository) FindByName(ctx context.Context, name string) (*catalog.Parameter, error) {
	var parameter catalog.Parameter
	if err := r.db.WithContext(ctx).First(&parameter, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &parameter, nil
}

// Save creates or updates a parameter
func (r *GormParameterRepository) Save(ctx context.Context, parameter *catalog.Parameter) error {
	return r.db.WithContext(ctx).Save(parameter).Error
}

// Ensure GormParameterRepository implements ParameterRepository
var _ catalog.ParameterRepository = (*GormParameterRepository)(nil)

// GormProductParameterRepository implements ProductParameterRepository using GORM
type GormProductParameterRepository struct {
	db *gorm.DB
}

// NewGormProductParameterRepository creates a new GormProductParameterRepository
func NewGormProductParameterRepository(db *gorm.DB) *GormProductParameterRepository {
	return &GormProductParameterRepository{db: db}
}

// FindByProduct finds all parameter values for a product
func (r *GormProductParameterRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductParameter, error) {
	var values []catalog.ProductParameter
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}

// FindByProductAndParameter finds the value row for a (product, parameter) pair
func (r *GormProductParameterRepository) FindByProductAndParameter(ctx context.Context, productID, parameterID uuid.UUID) (*catalog.ProductParameter, error) {
	var value catalog.ProductParameter
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND parameter_id = ?", productID, parameterID).
		First(&value).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &value, nil
}

// Save creates or updates a product parameter value
func (r *GormProductParameterRepository) Save(ctx context.Context, value *catalog.ProductParameter) error {
	return r.db.WithContext(ctx).Save(value).Error
}

// Ensure GormProductParameterRepository implements ProductParameterRepository
var _ catalog.ProductParameterRepository = (*GormProductParameterRepository)(nil)
