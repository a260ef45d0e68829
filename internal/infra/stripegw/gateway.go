package stripegw

import "github.com/stripe/stripe-go/v75"

// IntentParams carries everything needed to open a payment intent.
type IntentParams struct {
	Amount     int64
	Currency   string
	CustomerID string
	Metadata   map[string]string
}

// Gateway is the handler-facing view of the payment processor. Handlers and
// the reconciler depend on this interface; Client is the live
// implementation and tests substitute a fake.
type Gateway interface {
	// EnsureCustomer returns the processor customer ID for email, creating
	// the customer remotely only if no customer with that exact email
	// exists yet.
	EnsureCustomer(email, name, phone string, metadata map[string]string) (string, error)

	CreateIntent(p IntentParams) (*stripe.PaymentIntent, error)
	ConfirmIntent(id string) (*stripe.PaymentIntent, error)
	CancelIntent(id string) (*stripe.PaymentIntent, error)
	GetIntent(id string) (*stripe.PaymentIntent, error)

	// Refund issues a full refund when amount is nil, partial otherwise.
	Refund(intentID string, amount *int64) (*stripe.Refund, error)

	GetCharge(id string) (*stripe.Charge, error)

	// VerifyEvent checks the webhook signature against the raw body and
	// returns the parsed event. The body must be the unparsed bytes as
	// received; re-serialized JSON breaks the signature.
	VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error)
}
