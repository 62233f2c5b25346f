// Package wire renders domain orders in the JSON shape shared by HTTP responses,
// stream events and the external message relays, so every consumer sees the
// same document for the same order.
package wire

import (
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/generated/servers"
)

// TimeLayout matches JavaScript's Date.toISOString output.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Order maps an order aggregate to its wire representation.
// Notes are omitted when empty.
func Order(o *order.Order) servers.Order {
	dto := servers.Order{
		Id:          o.ID().String(),
		TableNumber: o.TableNumber(),
		Items:       o.Items(),
		TotalPrice:  o.TotalPrice().Float64(),
		Status:      servers.OrderStatus(o.Status().String()),
		CreatedAt:   o.CreatedAt().UTC().Format(TimeLayout),
	}
	if notes := o.Notes(); notes != "" {
		dto.Notes = &notes
	}
	return dto
}

// OrderList maps orders preserving their order. The result is never nil.
func OrderList(orders []*order.Order) servers.OrderList {
	list := servers.OrderList{Orders: make([]servers.Order, 0, len(orders))}
	for _, o := range orders {
		list.Orders = append(list.Orders, Order(o))
	}
	return list
}

// Connected is the payload of the first event on every stream.
type Connected struct {
	OK bool `json:"ok"`
}

// OrderEvent is the message body sent to external brokers.
type OrderEvent struct {
	Type  string        `json:"type"`
	Order servers.Order `json:"order"`
}
