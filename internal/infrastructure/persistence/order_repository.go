package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/markethub/backend/internal/domain/ordering"
	"github.com/markethub/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM.
// Orders are loaded and saved together with their line items.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindBasketByUser finds the user's live basket. At most one basket row
// exists per user, so a plain First is sufficient.
func (r *GormOrderRepository) FindBasketByUser(ctx context.Context, userID uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status = ?", userID, ordering.OrderStatusBasket).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindPlacedByUser finds the user's post-basket orders, newest first
func (r *GormOrderRepository) FindPlacedByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]ordering.Order, error) {
	var orders []ordering.Order
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND status <> ?", userID, ordering.OrderStatusBasket)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	query = query.Order("confirmed_at DESC")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its items. Lines removed
// from the aggregate are deleted from the store.
func (r *GormOrderRepository) Save(ctx context.Context, order *ordering.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(order).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(order.Items))
		for i, item := range order.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("order_id = ? AND id NOT IN ?", order.ID, currentItemIDs).
				Delete(&ordering.OrderItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&ordering.OrderItem{}).Error; err != nil {
				return err
			}
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&ordering.Order{})

	for key, value := range filter.Filters {
		switch key {
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "placed":
			if value == true {
				query = query.Where("status <> ?", ordering.OrderStatusBasket)
			}
		case "since":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		}
	}

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
