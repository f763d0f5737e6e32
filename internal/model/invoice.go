package model

import "time"

// Invoice is an immutable billing record derived from an order. Items are a
// copy of the order lines at generation time.
type Invoice struct {
	ID            string      `json:"id"`
	OrderID       string      `json:"orderId"`
	InvoiceNumber string      `json:"invoiceNumber"`
	CustomerName  string      `json:"customerName"`
	Items         []OrderLine `json:"items"`
	Subtotal      Cents       `json:"subtotal"`
	Tax           Cents       `json:"tax"`
	Total         Cents       `json:"total"`
	CreatedAt     time.Time   `json:"createdAt"`
}
