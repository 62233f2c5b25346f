// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database rows.
package orderrepo

import (
	"strconv"
	"time"

	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/core/domain/model/order"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting orders.
// Items are stored as a Postgres text[] so their order survives the round trip.
type OrderDTO struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement"`
	TableNumber int             `gorm:"not null"`
	Items       pq.StringArray  `gorm:"type:text[];not null"`
	Notes       string          `gorm:"type:text;not null;default:''"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Status      string          `gorm:"type:varchar(16);not null;index"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDetails builds the row inserted by Create. The id is left to the sequence.
func fromDetails(details order.Details, createdAt time.Time) OrderDTO {
	return OrderDTO{
		TableNumber: details.TableNumber(),
		Items:       pq.StringArray(details.Items()),
		Notes:       details.Notes(),
		TotalPrice:  details.TotalPrice().Decimal(),
		Status:      order.New.String(),
		CreatedAt:   createdAt,
	}
}

// toDomain converts a database row back to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	price, err := kernel.NewPrice(dto.TotalPrice)
	if err != nil {
		return nil, err
	}

	details, err := order.NewDetails(dto.TableNumber, dto.Items, dto.Notes, price)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(formatID(dto.ID), details, status, dto.CreatedAt)
}

func formatID(id uint64) order.ID {
	return order.ID(strconv.FormatUint(id, 10))
}

// parseID maps an order id onto the bigserial key. Ids that cannot be keys
// cannot exist, so callers treat ok == false as not found.
func parseID(id order.ID) (uint64, bool) {
	n, err := strconv.ParseUint(id.String(), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
