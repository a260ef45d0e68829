package payment

import (
	"net/http"
	"strings"

	"payments-app/internal/domain/orders"
	"payments-app/internal/infra/stripegw"
	"payments-app/internal/observability"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// minChargeAmount is the processor's minimum charge in minor units
// ($0.50-equivalent).
const minChargeAmount = 50

// CreateIntent opens a payment intent with the processor and persists the
// pending order. POST /payment/create-intent
func (h *Handler) CreateIntent(c *gin.Context) {
	var req createIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Amount == 0 || req.Service == "" || req.CustomerEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: amount, service, customerEmail"})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than 0"})
		return
	}
	if req.Amount < minChargeAmount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be at least the processor's minimum charge (50)"})
		return
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "usd"
	}

	customerID, err := h.stripe.EnsureCustomer(req.CustomerEmail, req.CustomerName, req.CustomerPhone, req.Metadata)
	if err != nil {
		h.log.Error("Failed to resolve Stripe customer",
			zap.String("customer_email", req.CustomerEmail), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent: " + err.Error()})
		return
	}

	// Caller metadata is merged first so it can never overwrite the
	// reserved keys.
	metadata := make(map[string]string, len(req.Metadata)+3)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["service"] = req.Service
	metadata["customerEmail"] = req.CustomerEmail
	metadata["customerName"] = req.CustomerName

	intent, err := h.stripe.CreateIntent(stripegw.IntentParams{
		Amount:     req.Amount,
		Currency:   currency,
		CustomerID: customerID,
		Metadata:   metadata,
	})
	if err != nil {
		h.log.Error("Failed to create payment intent",
			zap.String("customer_email", req.CustomerEmail), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent: " + err.Error()})
		return
	}

	order := orders.Order{
		Amount:           req.Amount,
		Currency:         currency,
		Service:          req.Service,
		CustomerEmail:    req.CustomerEmail,
		CustomerName:     optional(req.CustomerName),
		CustomerPhone:    optional(req.CustomerPhone),
		StripeCustomerID: optional(customerID),
		PaymentIntentID:  intent.ID,
		Status:           orders.StatusPending,
		Metadata:         req.Metadata,
	}
	if err := h.db.Create(&order).Error; err != nil {
		// The remote intent now exists without a local order. Accepted
		// inconsistency window; logged with the intent ID for manual
		// reconciliation.
		h.log.Error("Order insert failed after intent creation",
			zap.String("payment_intent_id", intent.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record order"})
		return
	}

	observability.IntentsCreated.Inc()
	h.log.Info("Payment intent created",
		zap.String("payment_intent_id", intent.ID),
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount))

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"clientSecret":    intent.ClientSecret,
		"paymentIntentId": intent.ID,
		"orderId":         order.ID,
		"amount":          order.Amount,
		"currency":        order.Currency,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
