// Package http exposes the order relay over HTTP with echo. Server implements
// the generated servers.ServerInterface; NewRouter adds middleware, the API
// description, health check and the static waiter and kitchen pages.
package http

import (
	"log/slog"
	"net/http"

	"posrelay/internal/adapters/out/sse"
	"posrelay/internal/adapters/wire"
	"posrelay/internal/core/application/usecases/commands"
	"posrelay/internal/core/application/usecases/queries"
	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// EventStream hands out viewer subscriptions.
type EventStream interface {
	Subscribe() (*sse.Subscription, error)
	Unsubscribe(id kernel.UUID)
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        commands.PlaceOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	listOrdersHandler           queries.ListOrdersQueryHandler
	getOrderHandler             queries.GetOrderQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler

	events EventStream
	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	events EventStream,
	logger *slog.Logger,
) *Server {
	return &Server{
		placeOrderHandler:           placeOrderHandler,
		changeOrderStatusHandler:    changeOrderStatusHandler,
		listOrdersHandler:           listOrdersHandler,
		getOrderHandler:             getOrderHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		events:                      events,
		logger:                      logger.With("component", "http_server"),
	}
}

// ListOrders handles GET /api/orders - retrieves all orders, most recent first.
// With uncompleted=true only orders that are not ready are returned.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var (
		orders []*order.Order
		err    error
	)
	if params.Uncompleted != nil && *params.Uncompleted {
		orders, err = s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetUncompletedOrdersQuery())
	} else {
		orders, err = s.listOrdersHandler.Handle(ctx.Request().Context(), queries.NewListOrdersQuery())
	}
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, wire.OrderList(orders))
}

// CreateOrder handles POST /api/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := decodeBody(ctx.Request().Body, &req); err != nil {
		return s.respondError(ctx, err)
	}

	tableNumber, err := parseTableNumber(req.TableNumber)
	if err != nil {
		return s.respondError(ctx, err)
	}
	items := parseItems(req.Items)
	notes, err := parseNotes(req.Notes)
	if err != nil {
		return s.respondError(ctx, err)
	}
	totalPrice, err := parseTotalPrice(req.TotalPrice)
	if err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(tableNumber, items, notes, totalPrice)
	if err != nil {
		return s.respondError(ctx, err)
	}

	created, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, wire.Order(created))
}

// GetOrder handles GET /api/orders/:id - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context, id servers.OrderId) error {
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.respondError(ctx, err)
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, wire.Order(o))
}

// UpdateOrderStatus handles POST /api/orders/:id/status - replaces the order status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, id servers.OrderId) error {
	var req updateStatusRequest
	if err := decodeBody(ctx.Request().Body, &req); err != nil {
		return s.respondError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, parseStatus(req.Status))
	if err != nil {
		return s.respondError(ctx, err)
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, wire.Order(updated))
}
