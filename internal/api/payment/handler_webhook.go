package payment

import (
	"encoding/json"
	"io"
	"net/http"

	"payments-app/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

// Webhook ingests processor events. POST /payment/webhook
//
// The signature is verified against the raw body before anything is parsed.
// After verification, a failing order update returns 500 so the processor
// redelivers; the transition guard makes redelivery a safe no-op.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := readRawBody(c, 65536)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := h.stripe.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		observability.WebhookRejected.Inc()
		h.log.Warn("Webhook signature verification failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	observability.WebhookEvents.WithLabelValues(string(event.Type)).Inc()

	switch event.Type {
	case "payment_intent.succeeded":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			observability.WebhookRejected.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		if err := h.handleIntentSucceeded(&intent); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "payment_intent.payment_failed":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			observability.WebhookRejected.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		if err := h.handleIntentFailed(&intent); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "payment_intent.canceled":
		var intent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
			observability.WebhookRejected.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse payment intent"})
			return
		}
		if err := h.handleIntentCanceled(&intent); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	case "charge.refunded":
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			observability.WebhookRejected.Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse charge"})
			return
		}
		if err := h.handleChargeRefunded(&charge); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

	default:
		// Acknowledge event types not handled yet so the processor stops
		// redelivering them.
		h.log.Info("Unhandled webhook event type", zap.String("type", string(event.Type)))
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

func readRawBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
