package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Confirm is a pass-through to the processor's confirmation for manual
// confirmation flows. POST /payment/confirm
func (h *Handler) Confirm(c *gin.Context) {
	var req intentRefRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing paymentIntentId"})
		return
	}

	intent, err := h.stripe.ConfirmIntent(req.PaymentIntentID)
	if err != nil {
		h.log.Error("Failed to confirm payment intent",
			zap.String("payment_intent_id", req.PaymentIntentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm payment: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"status":          intent.Status,
		"paymentIntentId": intent.ID,
	})
}

// Cancel asks the processor to cancel an intent. The local order is not
// touched here: the payment_intent.canceled webhook is the sole writer, so
// local state lags the processor until it arrives.
// POST /payment/cancel
func (h *Handler) Cancel(c *gin.Context) {
	var req intentRefRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing paymentIntentId"})
		return
	}

	intent, err := h.stripe.CancelIntent(req.PaymentIntentID)
	if err != nil {
		h.log.Error("Failed to cancel payment intent",
			zap.String("payment_intent_id", req.PaymentIntentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel payment: " + err.Error()})
		return
	}

	h.log.Info("Payment intent canceled", zap.String("payment_intent_id", intent.ID))
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"status":          intent.Status,
		"paymentIntentId": intent.ID,
	})
}

// Refund issues a full refund when amount is omitted, partial otherwise.
// Like Cancel, the order moves to refunded only via the charge.refunded
// webhook. POST /payment/refund
func (h *Handler) Refund(c *gin.Context) {
	var req refundRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PaymentIntentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing paymentIntentId"})
		return
	}
	if req.Amount != nil && *req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refund amount must be greater than 0"})
		return
	}

	refund, err := h.stripe.Refund(req.PaymentIntentID, req.Amount)
	if err != nil {
		h.log.Error("Failed to create refund",
			zap.String("payment_intent_id", req.PaymentIntentID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refund: " + err.Error()})
		return
	}

	h.log.Info("Refund created",
		zap.String("payment_intent_id", req.PaymentIntentID),
		zap.String("refund_id", refund.ID))
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"refundId": refund.ID,
		"status":   refund.Status,
	})
}
