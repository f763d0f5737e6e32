package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"vintagecoffee/internal/apperr"
	"vintagecoffee/internal/model"
)

func TestCreateOrderTotalsFromCatalogPrices(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{
		{ItemID: "1", Quantity: 2}, // espresso 3.50
		{ItemID: "7", Quantity: 1}, // croissant 2.50
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusPending, order.Status)
	assert.Equal(t, adaActor.ID, order.UserID)
	assert.Equal(t, "Ada", order.CustomerName)
	require.Len(t, order.Items, 2)
	assert.Equal(t, model.Cents(700), order.Items[0].Subtotal)
	assert.Equal(t, model.Cents(350), order.Items[0].UnitPrice)
	assert.Equal(t, model.Cents(950), order.Total)
	assert.False(t, order.CreatedAt.IsZero())

	// The persisted record carries the snapshot totals.
	listed, err := e.orders.List(ctx, staffActor)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, model.Cents(950), listed[0].Total)
}

func TestCreateOrderCustomerNameFallback(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order, err := e.orders.Create(ctx, adaActor, "Gift for Bob", []OrderLineRequest{{ItemID: "1", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, "Gift for Bob", order.CustomerName)

	anon := &model.Actor{ID: "cust-x", Role: model.RoleCustomer}
	order, err = e.orders.Create(ctx, anon, "", []OrderLineRequest{{ItemID: "1", Quantity: 1}})
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", order.CustomerName)
}

func TestCreateOrderFailuresPersistNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "999", Quantity: 1}})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = e.catalog.SetAvailability(ctx, staffActor, "2", false)
	require.NoError(t, err)
	_, err = e.orders.Create(ctx, adaActor, "", []OrderLineRequest{
		{ItemID: "1", Quantity: 1},
		{ItemID: "2", Quantity: 1},
	})
	assert.Equal(t, apperr.Unavailable, apperr.KindOf(err))

	_, err = e.orders.Create(ctx, adaActor, "", nil)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: 0}})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = e.orders.Create(ctx, nil, "", []OrderLineRequest{{ItemID: "1", Quantity: 1}})
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	orders, err := e.orders.List(ctx, staffActor)
	require.NoError(t, err)
	assert.Empty(t, orders, "no partial order may be persisted")
}

func TestCreateOrderQuantityBounds(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	// An absurd quantity would overflow the cents arithmetic and persist a
	// negative total; it must be rejected up front.
	_, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: 1 << 60}})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: maxLineQuantity + 1}})
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	orders, err := e.orders.List(ctx, staffActor)
	require.NoError(t, err)
	assert.Empty(t, orders)

	order, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: maxLineQuantity}})
	require.NoError(t, err)
	assert.Equal(t, model.Cents(350).Mul(maxLineQuantity), order.Total)
	assert.Greater(t, order.Total, model.Cents(0))
}

func TestListOrdersScoping(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: 1}})
	require.NoError(t, err)
	_, err = e.orders.Create(ctx, bobActor, "", []OrderLineRequest{{ItemID: "7", Quantity: 1}})
	require.NoError(t, err)

	all, err := e.orders.List(ctx, staffActor)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := e.orders.List(ctx, adaActor)
	require.NoError(t, err)
	require.Len(t, own, 1)
	for _, o := range own {
		assert.Equal(t, adaActor.ID, o.UserID)
	}
}

func TestSetStatus(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: 1}})
	require.NoError(t, err)

	updated, err := e.orders.SetStatus(ctx, staffActor, order.ID, model.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPreparing, updated.Status)

	// Staff may move between the known states freely, including backwards.
	updated, err = e.orders.SetStatus(ctx, staffActor, order.ID, model.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, updated.Status)

	updated, err = e.orders.SetStatus(ctx, staffActor, order.ID, model.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)
}

func TestSetStatusRejectsInvalidValues(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: 1}})
	require.NoError(t, err)

	_, err = e.orders.SetStatus(ctx, staffActor, order.ID, "shipped")
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = e.orders.SetStatus(ctx, staffActor, order.ID, model.StatusPaid)
	assert.Equal(t, apperr.Validation, apperr.KindOf(err))

	_, err = e.orders.SetStatus(ctx, staffActor, "missing", model.StatusPreparing)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = e.orders.SetStatus(ctx, adaActor, order.ID, model.StatusPreparing)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	listed, err := e.orders.List(ctx, staffActor)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, listed[0].Status, "rejected updates must not change state")
}

func TestGetOrderOwnership(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	order, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: 1}})
	require.NoError(t, err)

	got, err := e.orders.Get(ctx, adaActor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = e.orders.Get(ctx, bobActor, order.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	got, err = e.orders.Get(ctx, staffActor, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = e.orders.Get(ctx, staffActor, "missing")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestConcurrentCreateOrdersLoseNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	const callers = 20
	var g errgroup.Group
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			_, err := e.orders.Create(ctx, adaActor, "", []OrderLineRequest{{ItemID: "1", Quantity: 1}})
			return err
		})
	}
	require.NoError(t, g.Wait())

	orders, err := e.orders.List(ctx, staffActor)
	require.NoError(t, err)
	assert.Len(t, orders, callers, "concurrent creates must all be persisted")
}
