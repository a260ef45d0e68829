package orders

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is the local record of a payment intent. It is a materialized view
// of the processor's event stream: created synchronously in pending, then
// written only by webhook/reconciler transitions. Never deleted; refund is
// a status, not a deletion.
type Order struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Amount   int64  `json:"amount"`
	Currency string `gorm:"size:8" json:"currency"`
	Service  string `json:"service"`

	CustomerEmail    string  `json:"customerEmail"`
	CustomerName     *string `json:"customerName,omitempty"`
	CustomerPhone    *string `json:"customerPhone,omitempty"`
	StripeCustomerID *string `json:"stripeCustomerId,omitempty"`

	PaymentIntentID string `gorm:"uniqueIndex;size:64" json:"paymentIntentId"`

	Status        Status  `gorm:"size:16;default:pending" json:"status"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	ReceiptURL    *string `json:"receiptUrl,omitempty"`
	ErrorMessage  *string `json:"errorMessage,omitempty"`

	Metadata map[string]string `gorm:"serializer:json" json:"metadata,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
