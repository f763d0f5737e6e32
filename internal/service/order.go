package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vintagecoffee/internal/apperr"
	"vintagecoffee/internal/model"
	"vintagecoffee/internal/policy"
	"vintagecoffee/internal/store"
)

// OrderService creates orders from catalog items and owns the order status
// lifecycle: pending -> preparing -> paid|completed.
type OrderService struct {
	store store.Store
	log   *zap.Logger
}

func NewOrderService(st store.Store, log *zap.Logger) *OrderService {
	return &OrderService{store: st, log: log}
}

// OrderLineRequest is one requested line: an item id and a quantity.
type OrderLineRequest struct {
	ItemID   string `json:"id"`
	Quantity int    `json:"quantity"`
}

// maxLineQuantity caps a single line. Far beyond any real counter order,
// and keeps line subtotals and the order total well inside int64 cents.
const maxLineQuantity = 1000

// Create prices the requested lines against the current catalog snapshot and
// persists a pending order. Prices always come from the catalog, never from
// the client. Nothing is persisted when any line fails to resolve.
func (s *OrderService) Create(ctx context.Context, actor *model.Actor, customerName string, lines []OrderLineRequest) (model.Order, error) {
	if err := policy.Authorize(actor, "", ""); err != nil {
		return model.Order{}, err
	}
	if len(lines) == 0 {
		return model.Order{}, apperr.New(apperr.Validation, "order must contain at least one item")
	}
	for _, l := range lines {
		if l.Quantity < 1 {
			return model.Order{}, apperr.New(apperr.Validation, "quantity for item %s must be at least 1", l.ItemID)
		}
		if l.Quantity > maxLineQuantity {
			return model.Order{}, apperr.New(apperr.Validation, "quantity for item %s exceeds the limit of %d", l.ItemID, maxLineQuantity)
		}
	}

	cat, err := store.View[model.Catalog](ctx, s.store, store.Catalog)
	if err != nil {
		return model.Order{}, err
	}

	var total model.Cents
	items := make([]model.OrderLine, 0, len(lines))
	for _, l := range lines {
		item := cat.Find(l.ItemID)
		if item == nil {
			return model.Order{}, apperr.New(apperr.NotFound, "menu item %s not found", l.ItemID)
		}
		if !item.Available {
			return model.Order{}, apperr.New(apperr.Unavailable, "%s is not available", item.Name)
		}
		subtotal := item.Price.Mul(l.Quantity)
		total += subtotal
		items = append(items, model.OrderLine{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  l.Quantity,
			Subtotal:  subtotal,
		})
	}

	name := customerName
	if name == "" {
		name = actor.Name
	}
	if name == "" {
		name = "Walk-in Customer"
	}

	order := model.Order{
		ID:           uuid.NewString(),
		UserID:       actor.ID,
		CustomerName: name,
		Items:        items,
		Total:        total,
		Status:       model.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = store.Mutate(ctx, s.store, store.Orders, func(orders *[]model.Order) error {
		*orders = append(*orders, order)
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	s.log.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("user_id", actor.ID),
		zap.String("total", order.Total.String()))
	return order, nil
}

// List returns every order for staff and only the actor's own orders for
// customers.
func (s *OrderService) List(ctx context.Context, actor *model.Actor) ([]model.Order, error) {
	if err := policy.Authorize(actor, "", ""); err != nil {
		return nil, err
	}
	orders, err := store.View[[]model.Order](ctx, s.store, store.Orders)
	if err != nil {
		return nil, err
	}
	if actor.Role == model.RoleStaff {
		return orders, nil
	}
	own := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.UserID == actor.ID {
			own = append(own, o)
		}
	}
	return own, nil
}

// Get returns one order by id, staff or owner only.
func (s *OrderService) Get(ctx context.Context, actor *model.Actor, orderID string) (model.Order, error) {
	if err := policy.Authorize(actor, "", ""); err != nil {
		return model.Order{}, err
	}
	orders, err := store.View[[]model.Order](ctx, s.store, store.Orders)
	if err != nil {
		return model.Order{}, err
	}
	for _, o := range orders {
		if o.ID == orderID {
			if err := policy.Authorize(actor, "", o.UserID); err != nil {
				return model.Order{}, err
			}
			return o, nil
		}
	}
	return model.Order{}, apperr.New(apperr.NotFound, "order %s not found", orderID)
}

// SetStatus overwrites an order's status. Staff only. The status must be one
// of the known values, and "paid" is reserved for payment processing; beyond
// that, staff may move an order between states freely.
func (s *OrderService) SetStatus(ctx context.Context, actor *model.Actor, orderID string, status model.OrderStatus) (model.Order, error) {
	if err := policy.Authorize(actor, model.RoleStaff, ""); err != nil {
		return model.Order{}, err
	}
	switch status {
	case model.StatusPending, model.StatusPreparing, model.StatusCompleted:
	case model.StatusPaid:
		return model.Order{}, apperr.New(apperr.Validation, "status %q is set by payment processing", status)
	default:
		return model.Order{}, apperr.New(apperr.Validation, "unknown order status %q", status)
	}

	var updated model.Order
	_, err := store.Mutate(ctx, s.store, store.Orders, func(orders *[]model.Order) error {
		for i := range *orders {
			if (*orders)[i].ID == orderID {
				(*orders)[i].Status = status
				updated = (*orders)[i]
				return nil
			}
		}
		return apperr.New(apperr.NotFound, "order %s not found", orderID)
	})
	if err != nil {
		return model.Order{}, err
	}
	s.log.Info("order status updated",
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
		zap.String("actor_id", actor.ID))
	return updated, nil
}

// markPaid flips an order to paid on behalf of payment processing.
func (s *OrderService) markPaid(ctx context.Context, orderID string) (model.Order, error) {
	var updated model.Order
	_, err := store.Mutate(ctx, s.store, store.Orders, func(orders *[]model.Order) error {
		for i := range *orders {
			if (*orders)[i].ID == orderID {
				(*orders)[i].Status = model.StatusPaid
				updated = (*orders)[i]
				return nil
			}
		}
		return apperr.New(apperr.NotFound, "order %s not found", orderID)
	})
	return updated, err
}
