package model

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusPaid      OrderStatus = "paid"
	StatusCompleted OrderStatus = "completed"
)

// OrderLine is a priced snapshot of one requested menu item. Unit price and
// subtotal are frozen at order creation and never recomputed.
type OrderLine struct {
	ItemID    string `json:"id"`
	Name      string `json:"name"`
	UnitPrice Cents  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  Cents  `json:"subtotal"`
}

type Order struct {
	ID           string      `json:"id"`
	UserID       string      `json:"userId"`
	CustomerName string      `json:"customerName"`
	Items        []OrderLine `json:"items"`
	Total        Cents       `json:"total"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
}
