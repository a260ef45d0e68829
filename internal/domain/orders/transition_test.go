package orders

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Order{}))
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, intentID string, status Status) *Order {
	t.Helper()
	order := &Order{
		Amount:          1000,
		Currency:        "usd",
		Service:         "consulting",
		CustomerEmail:   "a@b.com",
		PaymentIntentID: intentID,
		Status:          status,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestApplyTransitionMovesPendingToSucceeded(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "pi_1", StatusPending)

	order, applied, err := ApplyTransition(db, "pi_1", StatusSucceeded, map[string]interface{}{
		"receipt_url": "https://stripe.example/receipt",
	})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, StatusSucceeded, order.Status)

	var stored Order
	require.NoError(t, db.Where("payment_intent_id = ?", "pi_1").First(&stored).Error)
	assert.Equal(t, StatusSucceeded, stored.Status)
	require.NotNil(t, stored.ReceiptURL)
	assert.Equal(t, "https://stripe.example/receipt", *stored.ReceiptURL)
}

func TestApplyTransitionUnknownIntentIsNoop(t *testing.T) {
	db := newTestDB(t)

	order, applied, err := ApplyTransition(db, "pi_missing", StatusSucceeded, nil)
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.False(t, applied)

	var count int64
	require.NoError(t, db.Model(&Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyTransitionSameStatusIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "pi_1", StatusPending)

	_, applied, err := ApplyTransition(db, "pi_1", StatusSucceeded, map[string]interface{}{
		"receipt_url": "https://stripe.example/receipt",
	})
	require.NoError(t, err)
	require.True(t, applied)

	// Redelivery must not rewrite anything.
	order, applied, err := ApplyTransition(db, "pi_1", StatusSucceeded, map[string]interface{}{
		"receipt_url": "https://stripe.example/other",
	})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, StatusSucceeded, order.Status)

	var stored Order
	require.NoError(t, db.Where("payment_intent_id = ?", "pi_1").First(&stored).Error)
	require.NotNil(t, stored.ReceiptURL)
	assert.Equal(t, "https://stripe.example/receipt", *stored.ReceiptURL)
}

func TestApplyTransitionRejectsRegression(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "pi_1", StatusFailed)

	order, applied, err := ApplyTransition(db, "pi_1", StatusSucceeded, nil)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, StatusFailed, order.Status)
}

func TestApplyTransitionRefundRequiresSucceeded(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "pi_1", StatusPending)

	_, applied, err := ApplyTransition(db, "pi_1", StatusRefunded, nil)
	require.NoError(t, err)
	assert.False(t, applied)

	_, applied, err = ApplyTransition(db, "pi_1", StatusSucceeded, nil)
	require.NoError(t, err)
	require.True(t, applied)

	order, applied, err := ApplyTransition(db, "pi_1", StatusRefunded, nil)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, StatusRefunded, order.Status)
}

func TestPaymentIntentIDUnique(t *testing.T) {
	db := newTestDB(t)
	seedOrder(t, db, "pi_1", StatusPending)

	err := db.Create(&Order{
		Amount:          500,
		Currency:        "usd",
		Service:         "consulting",
		CustomerEmail:   "c@d.com",
		PaymentIntentID: "pi_1",
		Status:          StatusPending,
	}).Error
	assert.Error(t, err)
}
