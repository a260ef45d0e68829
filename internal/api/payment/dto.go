package payment

import (
	"time"

	"payments-app/internal/domain/orders"
)

type createIntentRequest struct {
	Amount        int64             `json:"amount"`
	Currency      string            `json:"currency"`
	Service       string            `json:"service"`
	CustomerEmail string            `json:"customerEmail"`
	CustomerName  string            `json:"customerName"`
	CustomerPhone string            `json:"customerPhone"`
	Metadata      map[string]string `json:"metadata"`
}

type intentRefRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

type refundRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
	Amount          *int64 `json:"amount"`
}

// orderView is the read-only projection returned by the order query.
// Processor-internal identifiers stay out of it.
type orderView struct {
	ID            string        `json:"id"`
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	Service       string        `json:"service"`
	Status        orders.Status `json:"status"`
	CustomerEmail string        `json:"customerEmail"`
	CustomerName  *string       `json:"customerName,omitempty"`
	ReceiptURL    *string       `json:"receiptUrl,omitempty"`
	CreatedAt     string        `json:"createdAt"`
	UpdatedAt     string        `json:"updatedAt"`
}

func newOrderView(o *orders.Order) orderView {
	return orderView{
		ID:            o.ID,
		Amount:        o.Amount,
		Currency:      o.Currency,
		Service:       o.Service,
		Status:        o.Status,
		CustomerEmail: o.CustomerEmail,
		CustomerName:  o.CustomerName,
		ReceiptURL:    o.ReceiptURL,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     o.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
