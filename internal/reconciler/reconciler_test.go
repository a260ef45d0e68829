package reconciler

import (
	"fmt"
	"testing"
	"time"

	"payments-app/internal/domain/orders"
	"payments-app/internal/infra/stripegw"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v75"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// staticGateway returns a canned intent per ID; only GetIntent matters for
// the reconciler.
type staticGateway struct {
	intents map[string]*stripe.PaymentIntent
	calls   []string
}

func (g *staticGateway) GetIntent(id string) (*stripe.PaymentIntent, error) {
	g.calls = append(g.calls, id)
	if intent, ok := g.intents[id]; ok {
		return intent, nil
	}
	return nil, fmt.Errorf("no such payment_intent: %s", id)
}

func (g *staticGateway) EnsureCustomer(email, name, phone string, metadata map[string]string) (string, error) {
	return "", nil
}
func (g *staticGateway) CreateIntent(p stripegw.IntentParams) (*stripe.PaymentIntent, error) {
	return nil, nil
}
func (g *staticGateway) ConfirmIntent(id string) (*stripe.PaymentIntent, error) { return nil, nil }
func (g *staticGateway) CancelIntent(id string) (*stripe.PaymentIntent, error)  { return nil, nil }
func (g *staticGateway) Refund(intentID string, amount *int64) (*stripe.Refund, error) {
	return nil, nil
}
func (g *staticGateway) GetCharge(id string) (*stripe.Charge, error) { return nil, nil }
func (g *staticGateway) VerifyEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return stripe.Event{}, nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orders.Order{}))
	return db
}

func seedOrderAt(t *testing.T, db *gorm.DB, intentID string, age time.Duration) *orders.Order {
	t.Helper()
	order := &orders.Order{
		Amount:          1000,
		Currency:        "usd",
		Service:         "consulting",
		CustomerEmail:   "a@b.com",
		PaymentIntentID: intentID,
		Status:          orders.StatusPending,
		CreatedAt:       time.Now().Add(-age),
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestSweepResolvesStaleSucceededIntent(t *testing.T) {
	db := newTestDB(t)
	seedOrderAt(t, db, "pi_1", 30*time.Minute)

	gw := &staticGateway{intents: map[string]*stripe.PaymentIntent{
		"pi_1": {ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded},
	}}
	New(db, gw, zap.NewNop()).Sweep()

	var stored orders.Order
	require.NoError(t, db.Where("payment_intent_id = ?", "pi_1").First(&stored).Error)
	assert.Equal(t, orders.StatusSucceeded, stored.Status)
}

func TestSweepIgnoresFreshPendingOrders(t *testing.T) {
	db := newTestDB(t)
	seedOrderAt(t, db, "pi_1", time.Minute)

	gw := &staticGateway{intents: map[string]*stripe.PaymentIntent{}}
	New(db, gw, zap.NewNop()).Sweep()

	assert.Empty(t, gw.calls)

	var stored orders.Order
	require.NoError(t, db.Where("payment_intent_id = ?", "pi_1").First(&stored).Error)
	assert.Equal(t, orders.StatusPending, stored.Status)
}

func TestSweepLeavesInFlightIntentsPending(t *testing.T) {
	db := newTestDB(t)
	seedOrderAt(t, db, "pi_1", 30*time.Minute)

	gw := &staticGateway{intents: map[string]*stripe.PaymentIntent{
		"pi_1": {ID: "pi_1", Status: stripe.PaymentIntentStatusRequiresPaymentMethod},
	}}
	New(db, gw, zap.NewNop()).Sweep()

	var stored orders.Order
	require.NoError(t, db.Where("payment_intent_id = ?", "pi_1").First(&stored).Error)
	assert.Equal(t, orders.StatusPending, stored.Status)
}

func TestSweepMarksCardFailures(t *testing.T) {
	db := newTestDB(t)
	seedOrderAt(t, db, "pi_1", 30*time.Minute)

	gw := &staticGateway{intents: map[string]*stripe.PaymentIntent{
		"pi_1": {
			ID:               "pi_1",
			Status:           stripe.PaymentIntentStatusRequiresPaymentMethod,
			LastPaymentError: &stripe.Error{Msg: "Your card was declined."},
		},
	}}
	New(db, gw, zap.NewNop()).Sweep()

	var stored orders.Order
	require.NoError(t, db.Where("payment_intent_id = ?", "pi_1").First(&stored).Error)
	assert.Equal(t, orders.StatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Equal(t, "Your card was declined.", *stored.ErrorMessage)
}

func TestSweepSurvivesProcessorErrors(t *testing.T) {
	db := newTestDB(t)
	seedOrderAt(t, db, "pi_1", 30*time.Minute)
	seedOrderAt(t, db, "pi_2", 30*time.Minute)

	// pi_1 lookup fails; pi_2 still gets reconciled.
	gw := &staticGateway{intents: map[string]*stripe.PaymentIntent{
		"pi_2": {ID: "pi_2", Status: stripe.PaymentIntentStatusCanceled},
	}}
	New(db, gw, zap.NewNop()).Sweep()

	var first, second orders.Order
	require.NoError(t, db.Where("payment_intent_id = ?", "pi_1").First(&first).Error)
	require.NoError(t, db.Where("payment_intent_id = ?", "pi_2").First(&second).Error)
	assert.Equal(t, orders.StatusPending, first.Status)
	assert.Equal(t, orders.StatusCanceled, second.Status)
}
