package reconciler

import (
	"time"

	"payments-app/internal/domain/orders"
	"payments-app/internal/infra/stripegw"
	"payments-app/internal/observability"

	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	staleAfter = 15 * time.Minute
	sweepLimit = 50
)

// Reconciler periodically checks stale pending orders against the
// processor. It covers webhooks that were never delivered; all writes go
// through the same transition guard as the webhook path, so a webhook
// landing concurrently is harmless.
type Reconciler struct {
	db     *gorm.DB
	stripe stripegw.Gateway
	log    *zap.Logger
	cron   *cron.Cron
}

func New(db *gorm.DB, gw stripegw.Gateway, log *zap.Logger) *Reconciler {
	return &Reconciler{db: db, stripe: gw, log: log}
}

func (r *Reconciler) Start() {
	r.cron = cron.New()
	if _, err := r.cron.AddFunc("@every 5m", r.Sweep); err != nil {
		r.log.Fatal("Failed to schedule reconciler", zap.Error(err))
	}
	r.cron.Start()
	r.log.Info("Pending-order reconciler started")
}

func (r *Reconciler) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// Sweep reconciles orders that have been pending longer than staleAfter.
func (r *Reconciler) Sweep() {
	cutoff := time.Now().Add(-staleAfter)

	var stale []orders.Order
	err := r.db.
		Where("status = ? AND created_at < ?", orders.StatusPending, cutoff).
		Order("created_at").
		Limit(sweepLimit).
		Find(&stale).Error
	if err != nil {
		r.log.Error("Reconciler sweep query failed", zap.Error(err))
		return
	}

	for i := range stale {
		r.reconcile(&stale[i])
	}
}

func (r *Reconciler) reconcile(o *orders.Order) {
	intent, err := r.stripe.GetIntent(o.PaymentIntentID)
	if err != nil {
		r.log.Warn("Failed to retrieve payment intent",
			zap.String("order_id", o.ID),
			zap.String("payment_intent_id", o.PaymentIntentID),
			zap.Error(err))
		return
	}

	var next orders.Status
	updates := map[string]interface{}{}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		next = orders.StatusSucceeded
		if intent.PaymentMethod != nil && intent.PaymentMethod.ID != "" {
			updates["payment_method"] = intent.PaymentMethod.ID
		}
		if intent.LatestCharge != nil && intent.LatestCharge.ReceiptURL != "" {
			updates["receipt_url"] = intent.LatestCharge.ReceiptURL
		}
	case stripe.PaymentIntentStatusCanceled:
		next = orders.StatusCanceled
	default:
		if intent.LastPaymentError == nil {
			// Still in flight on the processor side; leave it pending.
			return
		}
		next = orders.StatusFailed
		message := intent.LastPaymentError.Msg
		if message == "" {
			message = "Payment failed"
		}
		updates["error_message"] = message
	}

	order, applied, err := orders.ApplyTransition(r.db, o.PaymentIntentID, next, updates)
	if err != nil {
		r.log.Error("Reconciler transition failed",
			zap.String("order_id", o.ID),
			zap.String("payment_intent_id", o.PaymentIntentID),
			zap.Error(err))
		return
	}
	if order == nil || !applied {
		return
	}

	observability.OrderTransitions.WithLabelValues(string(next)).Inc()
	r.log.Info("Reconciled stale order",
		zap.String("order_id", order.ID),
		zap.String("payment_intent_id", order.PaymentIntentID),
		zap.String("status", string(next)))
}
