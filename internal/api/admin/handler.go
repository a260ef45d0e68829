package admin

import (
	"net/http"
	"time"

	"payments-app/config"
	"payments-app/internal/domain/orders"
	"payments-app/internal/domain/site"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Handler is the operator surface: login, order and contact listings, and
// revenue stats.
type Handler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewHandler(db *gorm.DB, log *zap.Logger) *Handler {
	return &Handler{db: db, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the operator credentials against the configured bcrypt hash
// and issues a 24h bearer token. POST /admin/login
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
		return
	}

	if req.Email != config.ADMIN_EMAIL ||
		bcrypt.CompareHashAndPassword([]byte(config.ADMIN_PASSWORD_HASH), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": req.Email,
		"role":  "admin",
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(config.JWT_SECRET))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	h.log.Info("Admin login", zap.String("email", req.Email))
	c.JSON(http.StatusOK, gin.H{"token": signed})
}

type adminOrder struct {
	ID              string  `json:"id"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          int64   `json:"amount"`
	Currency        string  `json:"currency"`
	Service         string  `json:"service"`
	Status          string  `json:"status"`
	CustomerEmail   string  `json:"customerEmail"`
	ErrorMessage    *string `json:"errorMessage,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

func (h *Handler) ListOrders(c *gin.Context) {
	var all []orders.Order
	if err := h.db.Order("created_at DESC").Limit(200).Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	out := make([]adminOrder, 0, len(all))
	for _, o := range all {
		out = append(out, adminOrder{
			ID:              o.ID,
			PaymentIntentID: o.PaymentIntentID,
			Amount:          o.Amount,
			Currency:        o.Currency,
			Service:         o.Service,
			Status:          string(o.Status),
			CustomerEmail:   o.CustomerEmail,
			ErrorMessage:    o.ErrorMessage,
			CreatedAt:       o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListContactSubmissions(c *gin.Context) {
	var submissions []site.ContactSubmission
	if err := h.db.Order("created_at DESC").Limit(200).Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load submissions"})
		return
	}
	c.JSON(http.StatusOK, submissions)
}

type orderStats struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	Succeeded    int64 `json:"succeeded"`
	Failed       int64 `json:"failed"`
	Canceled     int64 `json:"canceled"`
	Refunded     int64 `json:"refunded"`
	TotalRevenue int64 `json:"totalRevenue"`
}

// Stats aggregates order counts per status plus succeeded revenue in minor
// units. GET /admin/stats
func (h *Handler) Stats(c *gin.Context) {
	var rows []struct {
		Status orders.Status
		Count  int64
	}
	if err := h.db.Model(&orders.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	var stats orderStats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case orders.StatusPending:
			stats.Pending = row.Count
		case orders.StatusSucceeded:
			stats.Succeeded = row.Count
		case orders.StatusFailed:
			stats.Failed = row.Count
		case orders.StatusCanceled:
			stats.Canceled = row.Count
		case orders.StatusRefunded:
			stats.Refunded = row.Count
		}
	}

	if err := h.db.Model(&orders.Order{}).
		Where("status = ?", orders.StatusSucceeded).
		Select("coalesce(sum(amount), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute revenue"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
