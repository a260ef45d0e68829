package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"payments-app/config"
	"payments-app/internal/domain/orders"
	"payments-app/internal/domain/site"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&orders.Order{}, &site.ContactSubmission{}))

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	config.ADMIN_EMAIL = "ops@example.com"
	config.ADMIN_PASSWORD_HASH = string(hash)
	config.JWT_SECRET = "test-secret"

	h := NewHandler(db, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/admin/login", h.Login)
	r.GET("/admin/stats", h.Stats)
	r.GET("/admin/orders", h.ListOrders)
	return r, db
}

func postLogin(r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(gin.H{"email": email, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/admin/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesToken(t *testing.T) {
	r, _ := newTestRouter(t)

	w := postLogin(r, "ops@example.com", "hunter22")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, postLogin(r, "ops@example.com", "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, postLogin(r, "other@example.com", "hunter22").Code)
	assert.Equal(t, http.StatusBadRequest, postLogin(r, "", "").Code)
}

func TestStatsAggregatesOrders(t *testing.T) {
	r, db := newTestRouter(t)

	seed := []struct {
		status orders.Status
		amount int64
	}{
		{orders.StatusSucceeded, 1000},
		{orders.StatusSucceeded, 2500},
		{orders.StatusPending, 700},
		{orders.StatusFailed, 900},
		{orders.StatusRefunded, 1200},
	}
	for i, s := range seed {
		require.NoError(t, db.Create(&orders.Order{
			Amount:          s.amount,
			Currency:        "usd",
			Service:         "consulting",
			CustomerEmail:   "a@b.com",
			PaymentIntentID: fmt.Sprintf("pi_%d", i),
			Status:          s.status,
		}).Error)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Total        int64 `json:"total"`
		Pending      int64 `json:"pending"`
		Succeeded    int64 `json:"succeeded"`
		Failed       int64 `json:"failed"`
		Refunded     int64 `json:"refunded"`
		TotalRevenue int64 `json:"totalRevenue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(5), stats.Total)
	assert.Equal(t, int64(1), stats.Pending)
	assert.Equal(t, int64(2), stats.Succeeded)
	assert.Equal(t, int64(1), stats.Failed)
	assert.Equal(t, int64(1), stats.Refunded)
	assert.Equal(t, int64(3500), stats.TotalRevenue)
}

func TestListOrdersProjectsFields(t *testing.T) {
	r, db := newTestRouter(t)
	require.NoError(t, db.Create(&orders.Order{
		Amount:          1000,
		Currency:        "usd",
		Service:         "consulting",
		CustomerEmail:   "a@b.com",
		PaymentIntentID: "pi_1",
		Status:          orders.StatusPending,
	}).Error)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out []adminOrder
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "pi_1", out[0].PaymentIntentID)
	assert.Equal(t, "pending", out[0].Status)
}
