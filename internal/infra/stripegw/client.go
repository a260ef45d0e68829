package stripegw

import (
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
	"github.com/stripe/stripe-go/v75/webhook"
)

// Client talks to Stripe. Built once in main from the configured secrets
// and injected; nothing in this package reads the environment.
type Client struct {
	api           *client.API
	webhookSecret string
}

var _ Gateway = (*Client)(nil)

func New(secretKey, webhookSecret string) *Client {
	return &Client{
		api:           client.New(secretKey, nil),
		webhookSecret: webhookSecret,
	}
}

func (c *Client) EnsureCustomer(email, name, phone string, metadata map[string]string) (string, error) {
	listParams := &stripe.CustomerListParams{Email: stripe.String(email)}
	listParams.Limit = stripe.Int64(1)

	iter := c.api.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer().ID, nil
	}
	if err := iter.Err(); err != nil {
		return "", err
	}

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	if name != "" {
		params.Name = stripe.String(name)
	}
	if phone != "" {
		params.Phone = stripe.String(phone)
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	cus, err := c.api.Customers.New(params)
	if err != nil {
		return "", err
	}
	return cus.ID, nil
}

func (c *Client) CreateIntent(p IntentParams) (*stripe.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(p.Amount),
		Currency: stripe.String(p.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	}
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}
	return c.api.PaymentIntents.New(params)
}

func (c *Client) ConfirmIntent(id string) (*stripe.PaymentIntent, error) {
	return c.api.PaymentIntents.Confirm(id, nil)
}

func (c *Client) CancelIntent(id string) (*stripe.PaymentIntent, error) {
	return c.api.PaymentIntents.Cancel(id, nil)
}

func (c *Client) GetIntent(id string) (*stripe.PaymentIntent, error) {
	return c.api.PaymentIntents.Get(id, nil)
}

func (c *Client) Refund(intentID string, amount *int64) (*stripe.Refund, error) {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(intentID)}
	if amount != nil {
		params.Amount = stripe.Int64(*amount)
	}
	return c.api.Refunds.New(params)
}

func (c *Client) GetCharge(id string) (*stripe.Charge, error) {
	return c.api.Charges.Get(id, nil)
}

func (c *Client) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(
		payload,
		sigHeader,
		c.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
}
