package sse_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"posrelay/internal/adapters/out/sse"
	"posrelay/internal/adapters/wire"
	"posrelay/internal/core/domain/model/kernel"
	"posrelay/internal/core/domain/model/order"
	"posrelay/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderEventPublisher_PublishesWireOrder(t *testing.T) {
	b := sse.NewBroadcaster(testLogger())
	publisher := sse.NewOrderEventPublisher(b)

	sub, err := b.Subscribe()
	require.NoError(t, err)
	receive(t, sub)

	details, err := order.NewDetails(4, []string{"Tea"}, "", kernel.ZeroPrice)
	require.NoError(t, err)
	o, err := order.NewOrder("9", details, time.Date(2024, 1, 2, 3, 4, 5, 6_000_000, time.UTC))
	require.NoError(t, err)

	publisher.Publish(context.Background(), ports.OrderCreated, o)

	frame := receive(t, sub)
	require.True(t, strings.HasPrefix(frame, "event: order_created\ndata: "))
	require.True(t, strings.HasSuffix(frame, "\n\n"))

	data := strings.TrimSuffix(strings.TrimPrefix(frame, "event: order_created\ndata: "), "\n\n")
	expected, err := json.Marshal(wire.Order(o))
	require.NoError(t, err)
	assert.JSONEq(t, string(expected), data)
	assert.Contains(t, data, `"createdAt":"2024-01-02T03:04:05.006Z"`)
}
