package orders

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ApplyTransition locates the order for intentID and moves it to next,
// writing the extra column updates in the same statement. It is the single
// write path for webhook handlers and the reconciler.
//
// Returns (nil, false, nil) when no order matches the intent: the processor
// may deliver events for intents this system never persisted, and that is a
// no-op, not an error. Returns (order, false, nil) when the order is already
// in next (idempotent redelivery) or the move is not in the transition
// table. Only a datastore failure produces a non-nil error.
func ApplyTransition(db *gorm.DB, intentID string, next Status, updates map[string]interface{}) (*Order, bool, error) {
	var order Order
	err := db.Where("payment_intent_id = ?", intentID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup order for intent %s: %w", intentID, err)
	}

	if order.Status == next || !order.Status.CanTransitionTo(next) {
		return &order, false, nil
	}

	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["status"] = next

	if err := db.Model(&Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
		return &order, false, fmt.Errorf("update order %s for intent %s: %w", order.ID, intentID, err)
	}

	order.Status = next
	return &order, true, nil
}
