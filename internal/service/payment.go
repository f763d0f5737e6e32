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

// PaymentService records payment attempts and advances the paid order to the
// paid status. Confirmation is a trusted internal transition; there is no
// external gateway behind it.
type PaymentService struct {
	store  store.Store
	orders *OrderService
	log    *zap.Logger
}

func NewPaymentService(st store.Store, orders *OrderService, log *zap.Logger) *PaymentService {
	return &PaymentService{store: st, orders: orders, log: log}
}

// Receipt is a confirmed payment plus a human-readable message.
type Receipt struct {
	Payment model.Payment `json:"payment"`
	Message string        `json:"message"`
}

// Process records a payment for an order and marks the order paid. Any
// authenticated actor may pay. The amount must match what is due: the
// invoice total when the order has been invoiced, otherwise the order total.
func (s *PaymentService) Process(ctx context.Context, actor *model.Actor, orderID string, amount model.Cents, method string) (Receipt, error) {
	if err := policy.Authorize(actor, "", ""); err != nil {
		return Receipt{}, err
	}
	if amount <= 0 {
		return Receipt{}, apperr.New(apperr.Validation, "payment amount must be positive")
	}
	if method == "" {
		return Receipt{}, apperr.New(apperr.Validation, "payment method is required")
	}

	orders, err := store.View[[]model.Order](ctx, s.store, store.Orders)
	if err != nil {
		return Receipt{}, err
	}
	var order *model.Order
	for i := range orders {
		if orders[i].ID == orderID {
			order = &orders[i]
			break
		}
	}
	if order == nil {
		return Receipt{}, apperr.New(apperr.NotFound, "order %s not found", orderID)
	}

	due, err := s.amountDue(ctx, order)
	if err != nil {
		return Receipt{}, err
	}
	if amount != due {
		return Receipt{}, apperr.New(apperr.Validation, "payment of %s does not match amount due %s", amount, due)
	}

	payment := model.Payment{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		UserID:    actor.ID,
		Amount:    amount,
		Method:    method,
		Status:    model.PaymentCompleted,
		CreatedAt: time.Now().UTC(),
	}
	_, err = store.Mutate(ctx, s.store, store.Payments, func(payments *[]model.Payment) error {
		*payments = append(*payments, payment)
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}
	if _, err := s.orders.markPaid(ctx, orderID); err != nil {
		return Receipt{}, err
	}

	s.log.Info("payment processed",
		zap.String("payment_id", payment.ID),
		zap.String("order_id", orderID),
		zap.String("amount", amount.String()),
		zap.String("method", method))
	return Receipt{
		Payment: payment,
		Message: fmt.Sprintf("Payment of $%s for order %s confirmed", amount, orderID),
	}, nil
}

// amountDue is the invoice total when the order has been invoiced, and the
// order total otherwise.
func (s *PaymentService) amountDue(ctx context.Context, order *model.Order) (model.Cents, error) {
	invoices, err := store.View[[]model.Invoice](ctx, s.store, store.Invoices)
	if err != nil {
		return 0, err
	}
	for _, inv := range invoices {
		if inv.OrderID == order.ID {
			return inv.Total, nil
		}
	}
	return order.Total, nil
}
