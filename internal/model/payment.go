package model

import "time"

const PaymentCompleted = "completed"

// Payment is an append-only log entry; records are never mutated.
type Payment struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Amount    Cents     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
