package payment

import (
	"payments-app/internal/domain/orders"
	"payments-app/internal/observability"

	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
)

func (h *Handler) handleIntentSucceeded(intent *stripe.PaymentIntent) error {
	updates := map[string]interface{}{}
	if intent.PaymentMethod != nil && intent.PaymentMethod.ID != "" {
		updates["payment_method"] = intent.PaymentMethod.ID
	}
	if url := h.receiptURL(intent); url != "" {
		updates["receipt_url"] = url
	}

	order, applied, err := h.apply(intent.ID, orders.StatusSucceeded, updates)
	if err != nil || order == nil || !applied {
		return err
	}

	h.mail.SendOrderConfirmation(order)
	return nil
}

func (h *Handler) handleIntentFailed(intent *stripe.PaymentIntent) error {
	message := "Payment failed"
	if intent.LastPaymentError != nil && intent.LastPaymentError.Msg != "" {
		message = intent.LastPaymentError.Msg
	}

	order, applied, err := h.apply(intent.ID, orders.StatusFailed, map[string]interface{}{
		"error_message": message,
	})
	if err != nil || order == nil || !applied {
		return err
	}

	order.ErrorMessage = &message
	h.mail.SendOrderFailed(order)
	return nil
}

func (h *Handler) handleIntentCanceled(intent *stripe.PaymentIntent) error {
	_, _, err := h.apply(intent.ID, orders.StatusCanceled, nil)
	return err
}

func (h *Handler) handleChargeRefunded(charge *stripe.Charge) error {
	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		h.log.Warn("Refunded charge carries no payment intent", zap.String("charge_id", charge.ID))
		return nil
	}
	_, _, err := h.apply(charge.PaymentIntent.ID, orders.StatusRefunded, nil)
	return err
}

// apply runs the guarded transition and logs the outcome with enough
// context to reconcile manually.
func (h *Handler) apply(intentID string, next orders.Status, updates map[string]interface{}) (*orders.Order, bool, error) {
	order, applied, err := orders.ApplyTransition(h.db, intentID, next, updates)
	if err != nil {
		h.log.Error("Order transition failed",
			zap.String("payment_intent_id", intentID),
			zap.String("target_status", string(next)),
			zap.Error(err))
		return nil, false, err
	}
	if order == nil {
		// Intent was never persisted here (created out-of-band, or the
		// webhook raced ahead of the creation path). Accepted no-op.
		h.log.Info("No order for payment intent",
			zap.String("payment_intent_id", intentID),
			zap.String("target_status", string(next)))
		return nil, false, nil
	}
	if !applied {
		h.log.Info("Order transition ignored",
			zap.String("order_id", order.ID),
			zap.String("payment_intent_id", intentID),
			zap.String("current_status", string(order.Status)),
			zap.String("target_status", string(next)))
		return order, false, nil
	}

	observability.OrderTransitions.WithLabelValues(string(next)).Inc()
	h.log.Info("Order transitioned",
		zap.String("order_id", order.ID),
		zap.String("payment_intent_id", intentID),
		zap.String("status", string(next)))
	return order, true, nil
}

// receiptURL digs the receipt out of the intent's latest charge, fetching
// the charge when the event payload carries only its ID.
func (h *Handler) receiptURL(intent *stripe.PaymentIntent) string {
	if intent.LatestCharge == nil || intent.LatestCharge.ID == "" {
		return ""
	}
	if intent.LatestCharge.ReceiptURL != "" {
		return intent.LatestCharge.ReceiptURL
	}
	charge, err := h.stripe.GetCharge(intent.LatestCharge.ID)
	if err != nil {
		h.log.Warn("Failed to fetch charge for receipt",
			zap.String("payment_intent_id", intent.ID),
			zap.String("charge_id", intent.LatestCharge.ID),
			zap.Error(err))
		return ""
	}
	return charge.ReceiptURL
}
