package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vintagecoffee/internal/apperr"
	"vintagecoffee/internal/model"
	"vintagecoffee/internal/policy"
	"vintagecoffee/internal/store"
)

// InvoiceService derives immutable invoices from orders, applying tax.
type InvoiceService struct {
	store     store.Store
	taxRateBP int64
	log       *zap.Logger
}

func NewInvoiceService(st store.Store, taxRateBP int64, log *zap.Logger) *InvoiceService {
	return &InvoiceService{store: st, taxRateBP: taxRateBP, log: log}
}

// Generate builds an invoice for an order: subtotal is the frozen order
// total, tax is applied at the configured rate, and the invoice number is
// derived from the creation instant. Generating twice for the same order is
// idempotent and returns the existing invoice. Staff only. Order status is
// not checked; a pending order can be invoiced.
func (s *InvoiceService) Generate(ctx context.Context, actor *model.Actor, orderID string) (model.Invoice, error) {
	if err := policy.Authorize(actor, model.RoleStaff, ""); err != nil {
		return model.Invoice{}, err
	}
	orders, err := store.View[[]model.Order](ctx, s.store, store.Orders)
	if err != nil {
		return model.Invoice{}, err
	}
	var order *model.Order
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		return model.Invoice{}, apperr.New(apperr.NotFound, "order %s not found", orderID)
	}

	var inv model.Invoice
	_, err = store.Mutate(ctx, s.store, store.Invoices, func(invoices *[]model.Invoice) error {
		for _, existing := range *invoices {
			if existing.OrderID == orderID {
				inv = existing
				return nil
			}
		}
		subtotal := order.Total
		tax := subtotal.TaxAt(s.taxRateBP)
		inv = model.Invoice{
			ID:            uuid.NewString(),
			OrderID:       orderID,
			InvoiceNumber: fmt.Sprintf("INV-%d", time.Now().UnixMilli()),
			CustomerName:  order.CustomerName,
			Items:         order.Items,
			Subtotal:      subtotal,
			Tax:           tax,
			Total:         subtotal + tax,
			CreatedAt:     time.Now().UTC(),
		}
		*invoices = append(*invoices, inv)
		return nil
	})
	if err != nil {
		return model.Invoice{}, err
	}
	s.log.Info("invoice generated",
		zap.String("invoice_id", inv.ID),
		zap.String("order_id", orderID),
		zap.String("total", inv.Total.String()))
	return inv, nil
}

// List returns every invoice for staff. Customers get only invoices whose
// order belongs to them, joined against the orders collection.
func (s *InvoiceService) List(ctx context.Context, actor *model.Actor) ([]model.Invoice, error) {
	if err := policy.Authorize(actor, "", ""); err != nil {
		return nil, err
	}
	invoices, err := store.View[[]model.Invoice](ctx, s.store, store.Invoices)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleStaff {
		return invoices, nil
	}
	owned, err := s.ownedOrderIDs(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	own := make([]model.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if owned[inv.OrderID] {
			own = append(own, inv)
		}
	}
	return own, nil
}

// Get fetches one invoice by id. The caller must be staff or own the
// underlying order.
func (s *InvoiceService) Get(ctx context.Context, actor *model.Actor, invoiceID string) (model.Invoice, error) {
	if err := policy.Authorize(actor, "", ""); err != nil {
		return model.Invoice{}, err
	}
	invoices, err := store.View[[]model.Invoice](ctx, s.store, store.Invoices)
	if err != nil {
		return model.Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID != invoiceID {
			continue
		}
		if actor.Role == model.RoleStaff {
			return inv, nil
		}
		owned, err := s.ownedOrderIDs(ctx, actor.ID)
		if err != nil {
			return model.Invoice{}, err
		}
		if !owned[inv.OrderID] {
			return model.Invoice{}, apperr.New(apperr.Forbidden, "not the owner of this resource")
		}
		return inv, nil
	}
	return model.Invoice{}, apperr.New(apperr.NotFound, "invoice %s not found", invoiceID)
}

func (s *InvoiceService) ownedOrderIDs(ctx context.Context, userID string) (map[string]bool, error) {
	orders, err := store.View[[]model.Order](ctx, s.store, store.Orders)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(orders))
	for _, o := range orders {
		if o.UserID == userID {
			owned[o.ID] = true
		}
	}
	return owned, nil
}
