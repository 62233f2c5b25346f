package orderrepo

import (
	"context"
	"errors"
	"time"

	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM over PostgreSQL.
// Each mutation is one transaction, so a failed call leaves no partial row behind.
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{
		db:  db,
		now: time.Now,
	}
}

// Create inserts the order and lets the sequence assign its id.
func (r *GormOrderRepository) Create(ctx context.Context, details order.Details) (*order.Order, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	dto := fromDetails(details, r.now().UTC().Truncate(time.Millisecond))
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return nil, errs.NewStorageError("create order", err)
	}

	return toDomain(dto)
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStorageError("get order", err)
	}

	return toDomain(dto)
}

// List returns all orders, newest first.
func (r *GormOrderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&dtos).Error; err != nil {
		return nil, errs.NewStorageError("list orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// SetStatus overwrites the status column and reads the row back in the same
// transaction. The old status is never read, so concurrent writers resolve as
// last write wins.
func (r *GormOrderRepository) SetStatus(ctx context.Context, id order.ID, status order.Status) (*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	key, ok := parseID(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&OrderDTO{}).Where("id = ?", key).Update("status", status.String())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&dto, "id = ?", key).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewStorageError("set order status", err)
	}

	return toDomain(dto)
}
