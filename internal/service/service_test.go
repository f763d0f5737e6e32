package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vintagecoffee/internal/model"
	"vintagecoffee/internal/store"
)

var (
	staffActor = &model.Actor{ID: "staff-1", Role: model.RoleStaff, Name: "Counter Staff"}
	adaActor   = &model.Actor{ID: "cust-ada", Role: model.RoleCustomer, Name: "Ada"}
	bobActor   = &model.Actor{ID: "cust-bob", Role: model.RoleCustomer, Name: "Bob"}
)

type env struct {
	store    store.Store
	catalog  *CatalogService
	orders   *OrderService
	invoices *InvoiceService
	payments *PaymentService
	reviews  *ReviewService
}

// newEnv wires every service against a fresh file store with the default
// catalog seeded.
func newEnv(t *testing.T) *env {
	t.Helper()
	fs, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	log := zap.NewNop()
	e := &env{
		store:   fs,
		catalog: NewCatalogService(fs, log),
	}
	e.orders = NewOrderService(fs, log)
	e.invoices = NewInvoiceService(fs, 800, log)
	e.payments = NewPaymentService(fs, e.orders, log)
	e.reviews = NewReviewService(fs, log)

	require.NoError(t, e.catalog.Seed(context.Background()))
	return e
}
